package schema

import (
	"math"
	"testing"

	"github.com/aretw0/turbo-editor/pkg/domain"
)

func TestKindTypes(t *testing.T) {
	tests := []struct {
		typ     Type
		name    string
		value   domain.PropertyValue
		wantErr bool
	}{
		{String(), "string", domain.Text("hero.png"), false},
		{String(), "string", domain.Text(""), false},
		{String(), "string", domain.Number(1), true},
		{Number(), "number", domain.Number(-3.5), false},
		{Number(), "number", domain.Bool(true), true},
		{Bool(), "bool", domain.Bool(false), false},
		{Bool(), "bool", domain.Color(1), true},
		{Color(), "color", domain.Color(0xFF00FFFF), false},
		{Color(), "color", domain.Number(0xFF00FFFF), true},
		{Color(), "color", domain.PropertyValue{}, true},
	}

	for _, tt := range tests {
		if tt.typ.Name() != tt.name {
			t.Errorf("Name() = %q, want %q", tt.typ.Name(), tt.name)
		}
		err := tt.typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s.Validate(%v) error = %v, wantErr %v", tt.name, tt.value, err, tt.wantErr)
		}
	}
}

func TestRangeType(t *testing.T) {
	unit := Range(0, 1)
	if unit.Name() != "number[0,1]" {
		t.Errorf("Name() = %q", unit.Name())
	}
	nonNeg := NonNegative()
	if nonNeg.Name() != "number>=0" {
		t.Errorf("Name() = %q", nonNeg.Name())
	}

	tests := []struct {
		typ     Type
		value   domain.PropertyValue
		wantErr bool
	}{
		{unit, domain.Number(0), false},
		{unit, domain.Number(1), false},
		{unit, domain.Number(0.5), false},
		{unit, domain.Number(1.01), true},
		{unit, domain.Number(math.NaN()), true},
		{unit, domain.Text("0.5"), true},
		{nonNeg, domain.Number(1e9), false},
		{nonNeg, domain.Number(math.Inf(1)), false},
		{nonNeg, domain.Number(-0.1), true},
	}
	for _, tt := range tests {
		err := tt.typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s.Validate(%v) error = %v, wantErr %v", tt.typ.Name(), tt.value, err, tt.wantErr)
		}
	}
}

func TestCustomType(t *testing.T) {
	even := Custom("even", func(v domain.PropertyValue) error {
		f, ok := v.AsNumber()
		if !ok || math.Mod(f, 2) != 0 {
			return errOdd
		}
		return nil
	})
	if even.Name() != "even" {
		t.Errorf("Name() = %q", even.Name())
	}
	if err := even.Validate(domain.Number(4)); err != nil {
		t.Errorf("Validate(4) = %v", err)
	}
	if err := even.Validate(domain.Number(3)); err != errOdd {
		t.Errorf("Validate(3) = %v, want errOdd", err)
	}
}

type constErr string

func (e constErr) Error() string { return string(e) }

const errOdd = constErr("odd")

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"string", "string", false},
		{"text", "string", false},
		{"number", "number", false},
		{"float", "number", false},
		{"bool", "bool", false},
		{"boolean", "bool", false},
		{"color", "color", false},
		{"number>=0", "number>=0", false},
		{"number>=2.5", "number>=2.5", false},
		{"number[0,1]", "number[0,1]", false},
		{" number[-1,1] ", "number[-1,1]", false},
		{"number[1,0]", "", true},
		{"number>=x", "", true},
		{"int", "", true},
		{"[string]", "", true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got.Name() != tt.want {
			t.Errorf("ParseType(%q).Name() = %q, want %q", tt.in, got.Name(), tt.want)
		}
	}
}

func TestParseTypeMap(t *testing.T) {
	s, err := ParseTypeMap(map[string]string{"path": "string", "opacity": "number[0,1]"})
	if err != nil {
		t.Fatalf("ParseTypeMap() error = %v", err)
	}
	if len(s) != 2 || s["opacity"].Name() != "number[0,1]" {
		t.Errorf("ParseTypeMap() = %v", s)
	}

	if _, err := ParseTypeMap(map[string]string{"bad": "vector"}); err == nil {
		t.Error("ParseTypeMap() should fail on unknown type")
	}
}
