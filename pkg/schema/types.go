package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/turbo-editor/pkg/domain"
)

// Type defines the contract for property validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "number").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value domain.PropertyValue) error
}

// --- Built-in Type Implementations ---

// KindType accepts values of one property kind.
type KindType struct {
	kind domain.Kind
	name string
}

func (t *KindType) Name() string { return t.name }

func (t *KindType) Validate(value domain.PropertyValue) error {
	if value.Kind() != t.kind {
		return fmt.Errorf("expected %s, got %s", t.name, kindName(value.Kind()))
	}
	return nil
}

// RangeType accepts finite numbers within [Min, Max].
type RangeType struct {
	Min, Max float64
}

func (t *RangeType) Name() string {
	switch {
	case math.IsInf(t.Max, 1):
		return fmt.Sprintf("number>=%s", fmtBound(t.Min))
	default:
		return fmt.Sprintf("number[%s,%s]", fmtBound(t.Min), fmtBound(t.Max))
	}
}

func (t *RangeType) Validate(value domain.PropertyValue) error {
	f, ok := value.AsNumber()
	if !ok {
		return fmt.Errorf("expected number, got %s", kindName(value.Kind()))
	}
	if math.IsNaN(f) || f < t.Min || f > t.Max {
		return fmt.Errorf("%v is outside %s", f, t.Name())
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(domain.PropertyValue) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value domain.PropertyValue) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a text type validator.
func String() Type { return &KindType{kind: domain.KindText, name: "string"} }

// Number creates a number type validator.
func Number() Type { return &KindType{kind: domain.KindNumber, name: "number"} }

// Bool creates a boolean type validator.
func Bool() Type { return &KindType{kind: domain.KindBool, name: "bool"} }

// Color creates a packed color type validator.
func Color() Type { return &KindType{kind: domain.KindColor, name: "color"} }

// Range creates a validator for numbers within [lo, hi].
func Range(lo, hi float64) Type { return &RangeType{Min: lo, Max: hi} }

// NonNegative accepts numbers >= 0.
func NonNegative() Type { return &RangeType{Min: 0, Max: math.Inf(1)} }

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(domain.PropertyValue) error) Type {
	return &CustomType{name: name, validate: validate}
}

// ParseType converts a string type name to a Type.
// Supports "string", "number", "bool", "color", "number>=N" and "number[A,B]".
func ParseType(typeStr string) (Type, error) {
	typeStr = strings.TrimSpace(typeStr)
	switch typeStr {
	case "string", "text":
		return String(), nil
	case "number", "float":
		return Number(), nil
	case "bool", "boolean":
		return Bool(), nil
	case "color":
		return Color(), nil
	}

	if rest, ok := strings.CutPrefix(typeStr, "number>="); ok {
		var lo float64
		if _, err := fmt.Sscanf(rest, "%g", &lo); err != nil {
			return nil, fmt.Errorf("bad lower bound in %q: %w", typeStr, err)
		}
		return &RangeType{Min: lo, Max: math.Inf(1)}, nil
	}
	if rest, ok := strings.CutPrefix(typeStr, "number["); ok && strings.HasSuffix(rest, "]") {
		var lo, hi float64
		if _, err := fmt.Sscanf(strings.TrimSuffix(rest, "]"), "%g,%g", &lo, &hi); err != nil {
			return nil, fmt.Errorf("bad range in %q: %w", typeStr, err)
		}
		if lo > hi {
			return nil, fmt.Errorf("empty range in %q", typeStr)
		}
		return Range(lo, hi), nil
	}
	return nil, fmt.Errorf("unsupported type: %s", typeStr)
}

// ParseTypeMap converts a map of property keys to type strings into a Schema.
// Example: {"path": "string", "opacity": "number[0,1]"}
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema)
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}

func kindName(k domain.Kind) string {
	switch k {
	case domain.KindText:
		return "string"
	case domain.KindNumber:
		return "number"
	case domain.KindBool:
		return "bool"
	case domain.KindColor:
		return "color"
	default:
		return "invalid"
	}
}

func fmtBound(f float64) string {
	return fmt.Sprintf("%g", f)
}
