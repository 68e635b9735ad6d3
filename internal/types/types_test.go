package types

import "testing"

func TestParseType(t *testing.T) {
	cases := map[string]PIIType{
		"AADHAAR":    TypeAadhaar,
		"PAN":        TypePAN,
		"PHONE":      TypePhone,
		"EMAIL":      TypeEmail,
		"NAME":       TypeName,
		"ADDRESS":    TypeAddress,
		"":           TypeUnknown,
		"SSN":        TypeUnknown,
		"aadhaar":    TypeUnknown, // case-sensitive by design
		"CREDITCARD": TypeUnknown,
	}
	for in, want := range cases {
		if got := ParseType(in); got != want {
			t.Errorf("ParseType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKnown(t *testing.T) {
	for _, typ := range AllTypes() {
		if !typ.Known() {
			t.Errorf("%q should be known", typ)
		}
	}
	if TypeUnknown.Known() {
		t.Error("UNKNOWN must not report as known")
	}
	if PIIType("SSN").Known() {
		t.Error("SSN is outside the closed set")
	}
}

func TestValidate(t *testing.T) {
	good := Detection{Type: TypeEmail, Value: "a@b.com", Confidence: 0.95, Source: SourceRule}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid detection rejected: %v", err)
	}

	cases := []Detection{
		{Type: TypeEmail, Value: "", Confidence: 0.5, Source: SourceRule},
		{Type: TypeEmail, Value: "a@b.com", Confidence: 1.5, Source: SourceRule},
		{Type: TypeEmail, Value: "a@b.com", Confidence: -0.1, Source: SourceML},
		{Type: TypeEmail, Value: "a@b.com", Confidence: 0.5, Source: Source("HUMAN")},
	}
	for i, d := range cases {
		if err := d.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestCountByType(t *testing.T) {
	ds := []Detection{
		{Type: TypeEmail, Value: "a@b.com"},
		{Type: TypeEmail, Value: "c@d.com"},
		{Type: TypePhone, Value: "9876543210"},
		{Type: PIIType("SSN"), Value: "123"},
	}
	counts := CountByType(ds)
	if counts[TypeEmail] != 2 || counts[TypePhone] != 1 || counts[TypeUnknown] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
