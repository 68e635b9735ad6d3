package mask

import (
	"testing"

	"github.com/smartmask/smartmask/internal/types"
)

func TestValue(t *testing.T) {
	cases := []struct {
		name string
		in   string
		typ  types.PIIType
		want string
	}{
		{"aadhaar keeps last 4", "1234 5678 9012", types.TypeAadhaar, "XXXX XXXX 9012"},
		{"pan keeps last 3", "ABCDE1234F", types.TypePAN, "XXXXX34F"},
		{"phone keeps last 4", "9876543210", types.TypePhone, "XXXXXX3210"},
		{"email keeps domain", "akanksh@example.com", types.TypeEmail, "xxxxx@example.com"},
		{"email without at", "not-an-email", types.TypeEmail, "[REDACTED EMAIL]"},
		{"email with two ats", "a@b@c.com", types.TypeEmail, "[REDACTED EMAIL]"},
		{"name", "Ravi Kumar", types.TypeName, "[REDACTED NAME]"},
		{"address", "MG Road, Bengaluru", types.TypeAddress, "[REDACTED ADDRESS]"},
		{"unknown type", "whatever", types.PIIType("SSN"), "[REDACTED]"},
		{"short value survives", "12", types.TypePhone, "XXXXXX12"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Value(tc.in, tc.typ); got != tc.want {
				t.Errorf("Value(%q, %s) = %q, want %q", tc.in, tc.typ, got, tc.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	t.Run("empty selection is exact no-op", func(t *testing.T) {
		text := "call 9876543210 or mail a@b.com"
		if got := Apply(text, nil); got != text {
			t.Fatalf("no-op changed text: %q", got)
		}
	})

	t.Run("masks every occurrence", func(t *testing.T) {
		text := "phone 9876543210, backup 9876543210"
		got := Apply(text, []types.Detection{{Type: types.TypePhone, Value: "9876543210"}})
		want := "phone XXXXXX3210, backup XXXXXX3210"
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("duplicate detections are safe", func(t *testing.T) {
		text := "pan ABCDE1234F"
		sel := []types.Detection{
			{Type: types.TypePAN, Value: "ABCDE1234F"},
			{Type: types.TypePAN, Value: "ABCDE1234F"},
		}
		if got := Apply(text, sel); got != "pan XXXXX34F" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("sequential over mixed types", func(t *testing.T) {
		text := "Ravi Kumar (akanksh@example.com) aadhaar 1234 5678 9012"
		sel := []types.Detection{
			{Type: types.TypeAadhaar, Value: "1234 5678 9012"},
			{Type: types.TypeEmail, Value: "akanksh@example.com"},
			{Type: types.TypeName, Value: "Ravi Kumar"},
		}
		got := Apply(text, sel)
		want := "[REDACTED NAME] (xxxxx@example.com) aadhaar XXXX XXXX 9012"
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("selection order decides substring overlap", func(t *testing.T) {
		// "Ravi" is contained in "Ravi Kumar"; masking the shorter value
		// first destroys the longer literal.
		text := "Ravi Kumar"
		shortFirst := Apply(text, []types.Detection{
			{Type: types.TypeName, Value: "Ravi"},
			{Type: types.TypeName, Value: "Ravi Kumar"},
		})
		if shortFirst != "[REDACTED NAME] Kumar" {
			t.Errorf("short-first: got %q", shortFirst)
		}
		longFirst := Apply(text, []types.Detection{
			{Type: types.TypeName, Value: "Ravi Kumar"},
			{Type: types.TypeName, Value: "Ravi"},
		})
		if longFirst != "[REDACTED NAME]" {
			t.Errorf("long-first: got %q", longFirst)
		}
	})

	t.Run("empty value skipped", func(t *testing.T) {
		text := "untouched"
		if got := Apply(text, []types.Detection{{Type: types.TypeEmail, Value: ""}}); got != text {
			t.Fatalf("empty value must not alter text, got %q", got)
		}
	})
}
