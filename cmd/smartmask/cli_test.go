package smartmask

import (
	"testing"

	"github.com/smartmask/smartmask/internal/tui"
	"github.com/smartmask/smartmask/internal/types"
)

func TestMaskedPath(t *testing.T) {
	cases := []struct {
		src, suffix, want string
	}{
		{"doc.txt", "", "doc.masked.txt"},
		{"doc.txt", ".safe", "doc.safe.txt"},
		{"report.pdf", "", "report.masked.pdf"},
		{"noext", "", "noext.masked"},
	}
	for _, tc := range cases {
		if got := maskedPath(tc.src, tc.suffix); got != tc.want {
			t.Errorf("maskedPath(%q, %q) = %q, want %q", tc.src, tc.suffix, got, tc.want)
		}
	}
}

func TestSelectForMasking(t *testing.T) {
	ds := []types.Detection{
		{Type: types.TypeAadhaar, Value: "1234 5678 9012", Confidence: 0.98},
		{Type: types.TypeName, Value: "Ravi Kumar", Confidence: 0.75},
		{Type: types.TypeEmail, Value: "a@b.com", Confidence: 0.95},
	}

	reset := func() {
		flagMaskAll = false
		flagMaskAuto = false
		flagMaskTypes = ""
	}

	t.Run("all", func(t *testing.T) {
		reset()
		flagMaskAll = true
		if got := selectForMasking(ds, tui.AutoSelectThreshold); len(got) != 3 {
			t.Fatalf("got %d, want all 3", len(got))
		}
	})

	t.Run("auto threshold", func(t *testing.T) {
		reset()
		flagMaskAuto = true
		got := selectForMasking(ds, tui.AutoSelectThreshold)
		if len(got) != 2 {
			t.Fatalf("got %+v", got)
		}
		if got[0].Type != types.TypeAadhaar || got[1].Type != types.TypeEmail {
			t.Errorf("order or content wrong: %+v", got)
		}
	})

	t.Run("types filter", func(t *testing.T) {
		reset()
		flagMaskTypes = "name, email"
		got := selectForMasking(ds, tui.AutoSelectThreshold)
		if len(got) != 2 || got[0].Type != types.TypeName || got[1].Type != types.TypeEmail {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("auto and types union", func(t *testing.T) {
		reset()
		flagMaskAuto = true
		flagMaskTypes = "NAME"
		if got := selectForMasking(ds, tui.AutoSelectThreshold); len(got) != 3 {
			t.Fatalf("union should keep all 3, got %+v", got)
		}
	})

	t.Run("nothing chosen", func(t *testing.T) {
		reset()
		if got := selectForMasking(ds, tui.AutoSelectThreshold); len(got) != 0 {
			t.Fatalf("got %+v, want empty", got)
		}
	})
}

func TestFilterByConfidence(t *testing.T) {
	ds := []types.Detection{
		{Type: types.TypeEmail, Confidence: 0.95},
		{Type: types.TypeName, Confidence: 0.75},
	}
	if got := filterByConfidence(ds, 0); len(got) != 2 {
		t.Errorf("zero min should keep everything")
	}
	if got := filterByConfidence(ds, 0.9); len(got) != 1 || got[0].Type != types.TypeEmail {
		t.Errorf("got %+v", got)
	}
	if got := filterByConfidence(ds, 0.99); len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}
}

func TestSplitGlobs(t *testing.T) {
	got := splitGlobs(" *.txt, docs/**,, ")
	if len(got) != 2 || got[0] != "*.txt" || got[1] != "docs/**" {
		t.Fatalf("got %v", got)
	}
	if splitGlobs("") != nil {
		t.Fatal("empty input should yield nil")
	}
}

func TestPickHelpers(t *testing.T) {
	s := "local"
	if pickString("cli", &s, nil) != "cli" {
		t.Error("CLI value must win")
	}
	if pickString("", &s, nil) != "local" {
		t.Error("local file value should beat default")
	}
	g := 0.5
	if pickFloat(0, nil, &g) != 0.5 {
		t.Error("global float should apply when others unset")
	}
	b := true
	if !pickBool(false, &b, nil) {
		t.Error("local bool should apply when CLI flag unset")
	}
}
