package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smartmask/smartmask/internal/types"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint("some document text")
	b := Fingerprint("some document text")
	c := Fingerprint("other text")
	if a != b {
		t.Error("fingerprint must be stable for identical content")
	}
	if a == c {
		t.Error("different content should not collide in practice")
	}
}

func TestNewRecord(t *testing.T) {
	ds := []types.Detection{
		{Type: types.TypeEmail, Value: "a@b.com"},
		{Type: types.TypeEmail, Value: "c@d.com"},
		{Type: types.TypePhone, Value: "9876543210"},
	}
	rec := NewRecord("doc.txt", "the text", ds, 120*time.Millisecond)
	if rec.Detections != 3 {
		t.Errorf("detections = %d", rec.Detections)
	}
	if rec.TypeCounts["EMAIL"] != 2 || rec.TypeCounts["PHONE"] != 1 {
		t.Errorf("type counts = %v", rec.TypeCounts)
	}
	if rec.Fingerprint != Fingerprint("the text") {
		t.Error("fingerprint mismatch")
	}
}

func TestAppendAndHistory(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)

	first := NewRecord("a.txt", "alpha", nil, time.Millisecond)
	second := NewRecord("b.txt", "beta", []types.Detection{{Type: types.TypePAN, Value: "ABCDE1234F"}}, time.Millisecond)
	if err := l.Append(first); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(second); err != nil {
		t.Fatal(err)
	}

	records, err := l.History()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	// Newest first.
	if records[0].Path != "b.txt" || records[1].Path != "a.txt" {
		t.Errorf("order wrong: %s, %s", records[0].Path, records[1].Path)
	}
	if records[0].ScanID == "" {
		t.Error("scan id should be filled in on append")
	}

	t.Run("no values in log", func(t *testing.T) {
		b, err := os.ReadFile(filepath.Join(dir, logFileName))
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(b), "ABCDE1234F") {
			t.Fatal("detected value leaked into audit log")
		}
	})

	t.Run("owner-only permissions", func(t *testing.T) {
		info, err := os.Stat(filepath.Join(dir, logFileName))
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("log mode = %v, want 0600", info.Mode().Perm())
		}
	})

	t.Run("torn line skipped", func(t *testing.T) {
		f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = f.WriteString("{\"timestamp\": truncated\n")
		f.Close()

		// A record appended after the torn line must still be readable.
		if err := l.Append(NewRecord("c.txt", "gamma", nil, time.Millisecond)); err != nil {
			t.Fatal(err)
		}

		records, err := l.History()
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 3 {
			t.Fatalf("got %d records, want 3 with the torn line skipped", len(records))
		}
		if records[0].Path != "c.txt" {
			t.Errorf("newest record = %s, want c.txt", records[0].Path)
		}
	})
}

func TestClear(t *testing.T) {
	l := New(t.TempDir())
	if err := l.Append(NewRecord("a.txt", "alpha", nil, time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	if err := l.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := l.History(); err == nil {
		t.Fatal("history should be gone after clear")
	}
	// Clearing an already-empty trail is fine.
	if err := l.Clear(); err != nil {
		t.Fatal(err)
	}
}

func TestHistoryMissingLog(t *testing.T) {
	l := New(t.TempDir())
	if _, err := l.History(); err == nil {
		t.Fatal("expected error for missing log file")
	}
}
