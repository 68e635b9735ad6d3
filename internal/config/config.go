package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for SmartMask.
// Fields are pointers so the precedence logic (CLI flag > local file >
// global file > built-in default) can distinguish "unset" from zero.
type FileConfig struct {
	Include       *string  `yaml:"include"`
	Exclude       *string  `yaml:"exclude"`
	MaxBytes      *int64   `yaml:"max_bytes"`
	MinConfidence *float64 `yaml:"min_confidence"`
	NoColor       *bool    `yaml:"no_color"`
	OutputSuffix  *string  `yaml:"output_suffix"`
	AutoSelect    *float64 `yaml:"auto_select"`

	// Model holds entity-recognizer settings.
	Model *ModelConfig `yaml:"model"`
}

// ModelConfig configures the entity recognizer.
type ModelConfig struct {
	// Dir is the model artifact directory. Empty means the default cache.
	Dir *string `yaml:"dir"`

	// AutoDownload permits fetching missing artifacts at startup.
	// Defaults to true.
	AutoDownload *bool `yaml:"auto_download"`

	// Disabled turns the entity pass off entirely. Rule detection still
	// runs; this is the only supported way to scan without a model.
	Disabled *bool `yaml:"disabled"`

	// MaxTokens caps the per-window sequence length.
	MaxTokens *int `yaml:"max_tokens"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a directory-local config file in the given root.
// It supports .smartmask.yml/.yaml and smartmask.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".smartmask.yml", ".smartmask.yaml", "smartmask.yml", "smartmask.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "smartmask", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// GetModel returns the model configuration with defaults applied to nil
// fields.
func (fc FileConfig) GetModel() ModelConfig {
	var cfg ModelConfig
	if fc.Model != nil {
		cfg = *fc.Model
	}
	if cfg.AutoDownload == nil {
		autoDownload := true
		cfg.AutoDownload = &autoDownload
	}
	if cfg.Disabled == nil {
		disabled := false
		cfg.Disabled = &disabled
	}
	return cfg
}

// Dir returns the configured model directory or empty string.
func (mc ModelConfig) GetDir() string {
	if mc.Dir == nil {
		return ""
	}
	return *mc.Dir
}

// IsDisabled reports whether the entity pass is turned off.
func (mc ModelConfig) IsDisabled() bool {
	return mc.Disabled != nil && *mc.Disabled
}

// IsAutoDownloadEnabled reports whether missing artifacts may be fetched
// (default: true).
func (mc ModelConfig) IsAutoDownloadEnabled() bool {
	return mc.AutoDownload == nil || *mc.AutoDownload
}

// GetMaxTokens returns the configured window size, or 0 for the engine
// default.
func (mc ModelConfig) GetMaxTokens() int {
	if mc.MaxTokens == nil {
		return 0
	}
	return *mc.MaxTokens
}
