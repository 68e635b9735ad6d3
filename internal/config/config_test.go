package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "smartmask.yaml", "max_bytes: 123\nmin_confidence: 0.8\noutput_suffix: .masked\nmodel:\n  disabled: true\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.MaxBytes == nil || *cfg.MaxBytes != 123 {
		t.Fatalf("expected max_bytes=123, got %#v", cfg.MaxBytes)
	}
	if cfg.MinConfidence == nil || *cfg.MinConfidence != 0.8 {
		t.Fatalf("expected min_confidence=0.8, got %#v", cfg.MinConfidence)
	}
	if cfg.OutputSuffix == nil || *cfg.OutputSuffix != ".masked" {
		t.Fatalf("expected output_suffix=.masked, got %#v", cfg.OutputSuffix)
	}
	if !cfg.GetModel().IsDisabled() {
		t.Fatal("expected model.disabled=true")
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "smartmask.yaml", "min_confidence: 0.1\n")
	writeTemp(t, dir, ".smartmask.yaml", "min_confidence: 0.7\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.MinConfidence == nil || *cfg.MinConfidence != 0.7 {
		t.Fatalf("expected min_confidence=0.7 from .smartmask.yaml, got %#v", cfg.MinConfidence)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	if _, err := LoadLocal(t.TempDir()); err == nil {
		t.Fatal("expected error when no local config exists")
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	if err := os.MkdirAll(filepath.Join(base, "smartmask"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeTemp(t, filepath.Join(base, "smartmask"), "config.yml", "no_color: true\n")
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.NoColor == nil || !*cfg.NoColor {
		t.Fatalf("expected no_color=true, got %#v", cfg.NoColor)
	}
}

func TestModelDefaults(t *testing.T) {
	var fc FileConfig
	mc := fc.GetModel()
	if mc.IsDisabled() {
		t.Error("model should be enabled by default")
	}
	if !mc.IsAutoDownloadEnabled() {
		t.Error("auto-download should default to true")
	}
	if mc.GetDir() != "" {
		t.Errorf("default dir should be empty, got %q", mc.GetDir())
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "bad.yaml", "max_bytes: [not a number\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected YAML error")
	}
}
