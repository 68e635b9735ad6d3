package catalog

import (
	"testing"

	"github.com/smartmask/smartmask/internal/types"
)

func TestCatalogOrderAndConfidence(t *testing.T) {
	rs := Rules()
	if len(rs) != 4 {
		t.Fatalf("expected 4 rules, got %d", len(rs))
	}
	want := []struct {
		typ  types.PIIType
		conf float64
	}{
		{types.TypeAadhaar, 0.98},
		{types.TypePAN, 0.97},
		{types.TypePhone, 0.95},
		{types.TypeEmail, 0.95},
	}
	for i, w := range want {
		if rs[i].Type != w.typ {
			t.Errorf("rule %d: type %q, want %q", i, rs[i].Type, w.typ)
		}
		if rs[i].Confidence != w.conf {
			t.Errorf("rule %d: confidence %v, want %v", i, rs[i].Confidence, w.conf)
		}
	}
}

func TestPatterns(t *testing.T) {
	match := func(typ types.PIIType, s string) bool {
		r, ok := Lookup(typ)
		if !ok {
			t.Fatalf("no rule for %s", typ)
		}
		return r.Pattern.MatchString(s)
	}

	t.Run("aadhaar", func(t *testing.T) {
		if !match(types.TypeAadhaar, "Aadhaar: 1234 5678 9012") {
			t.Error("spaced 12-digit Aadhaar should match")
		}
		if match(types.TypeAadhaar, "123456789012") {
			t.Error("unspaced digits must not match")
		}
		if match(types.TypeAadhaar, "1234 5678 901") {
			t.Error("11 digits must not match")
		}
	})

	t.Run("pan", func(t *testing.T) {
		if !match(types.TypePAN, "PAN: ABCDE1234F") {
			t.Error("well-formed PAN should match")
		}
		if match(types.TypePAN, "abcde1234f") {
			t.Error("lowercase PAN must not match")
		}
		if match(types.TypePAN, "ABCD1234F") {
			t.Error("4-letter prefix must not match")
		}
	})

	t.Run("phone", func(t *testing.T) {
		if !match(types.TypePhone, "call 9876543210 now") {
			t.Error("10 digits starting with 9 should match")
		}
		if match(types.TypePhone, "5876543210") {
			t.Error("leading 5 must not match")
		}
		if match(types.TypePhone, "98765432101") {
			t.Error("11 digits must not match (word bounded)")
		}
	})

	t.Run("email", func(t *testing.T) {
		if !match(types.TypeEmail, "mail akanksh@example.com please") {
			t.Error("plain address should match")
		}
		if !match(types.TypeEmail, "UPPER@EXAMPLE.COM") {
			t.Error("uppercase TLD should match")
		}
		if match(types.TypeEmail, "not-an-email@nodot") {
			t.Error("missing TLD must not match")
		}
	})
}

func TestLookupMissing(t *testing.T) {
	if _, ok := Lookup(types.TypeName); ok {
		t.Error("NAME has no pattern rule")
	}
}
