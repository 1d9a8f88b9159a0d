package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Kind identifies the variant held by a PropertyValue.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindText
	KindNumber
	KindBool
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "String"
	case KindNumber:
		return "Number"
	case KindBool:
		return "Boolean"
	case KindColor:
		return "Color"
	default:
		return "Invalid"
	}
}

// PropertyValue is a tagged union over text, number, boolean and packed color.
// The zero value is invalid and is never stored on a node.
type PropertyValue struct {
	kind  Kind
	text  string
	num   float64
	flag  bool
	color uint32
}

// Text wraps a string property.
func Text(s string) PropertyValue { return PropertyValue{kind: KindText, text: s} }

// Number wraps a double-precision property.
func Number(f float64) PropertyValue { return PropertyValue{kind: KindNumber, num: f} }

// Bool wraps a boolean property.
func Bool(b bool) PropertyValue { return PropertyValue{kind: KindBool, flag: b} }

// Color wraps a packed 32-bit color.
func Color(c uint32) PropertyValue { return PropertyValue{kind: KindColor, color: c} }

// Kind reports the held variant.
func (v PropertyValue) Kind() Kind { return v.kind }

// IsValid reports whether v holds one of the known variants.
func (v PropertyValue) IsValid() bool { return v.kind != KindInvalid }

func (v PropertyValue) AsText() (string, bool)   { return v.text, v.kind == KindText }
func (v PropertyValue) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }
func (v PropertyValue) AsBool() (bool, bool)      { return v.flag, v.kind == KindBool }
func (v PropertyValue) AsColor() (uint32, bool)   { return v.color, v.kind == KindColor }

// Interface returns the held value as a plain Go value.
func (v PropertyValue) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.num
	case KindBool:
		return v.flag
	case KindColor:
		return v.color
	default:
		return nil
	}
}

func (v PropertyValue) String() string {
	switch v.kind {
	case KindText:
		return strconv.Quote(v.text)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindColor:
		return fmt.Sprintf("0x%08X", v.color)
	default:
		return "<invalid>"
	}
}

// variantFields mirrors the externally tagged wire form of a PropertyValue.
type variantFields struct {
	String  *string  `mapstructure:"String"`
	Number  *float64 `mapstructure:"Number"`
	Boolean *bool    `mapstructure:"Boolean"`
	Color   *float64 `mapstructure:"Color"`
}

// MarshalJSON encodes the value as a single-key object, e.g. {"Number":12}.
func (v PropertyValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(map[string]string{"String": v.text})
	case KindNumber:
		return json.Marshal(map[string]float64{"Number": v.num})
	case KindBool:
		return json.Marshal(map[string]bool{"Boolean": v.flag})
	case KindColor:
		return json.Marshal(map[string]uint32{"Color": v.color})
	default:
		return nil, fmt.Errorf("marshal property: %w", ErrTypeMismatch)
	}
}

// UnmarshalJSON accepts the single-key object form produced by MarshalJSON.
func (v *PropertyValue) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	decoded, err := DecodePropertyValue(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// MarshalYAML uses the same single-key form as JSON.
func (v PropertyValue) MarshalYAML() (any, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("marshal property: %w", ErrTypeMismatch)
	}
	return map[string]any{v.kind.String(): v.Interface()}, nil
}

// DecodePropertyValue converts loosely typed input (a decoded JSON/YAML document,
// a tool argument, a PropertyValue) into a PropertyValue. Exactly one variant key
// must be present; anything else fails with ErrTypeMismatch.
func DecodePropertyValue(raw any) (PropertyValue, error) {
	switch v := raw.(type) {
	case PropertyValue:
		if !v.IsValid() {
			return PropertyValue{}, fmt.Errorf("zero property value: %w", ErrTypeMismatch)
		}
		return v, nil
	case *PropertyValue:
		if v == nil {
			return PropertyValue{}, fmt.Errorf("nil property value: %w", ErrTypeMismatch)
		}
		return DecodePropertyValue(*v)
	case map[string]any:
		if len(v) != 1 {
			return PropertyValue{}, fmt.Errorf("property value needs exactly one variant, got %d keys: %w", len(v), ErrTypeMismatch)
		}
	case map[any]any:
		if len(v) != 1 {
			return PropertyValue{}, fmt.Errorf("property value needs exactly one variant, got %d keys: %w", len(v), ErrTypeMismatch)
		}
	default:
		return PropertyValue{}, fmt.Errorf("cannot decode %T as property value: %w", raw, ErrTypeMismatch)
	}

	var fields variantFields
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &fields,
	})
	if err != nil {
		return PropertyValue{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return PropertyValue{}, fmt.Errorf("%v: %w", err, ErrTypeMismatch)
	}

	switch {
	case fields.String != nil:
		return Text(*fields.String), nil
	case fields.Number != nil:
		return Number(*fields.Number), nil
	case fields.Boolean != nil:
		return Bool(*fields.Boolean), nil
	case fields.Color != nil:
		c := *fields.Color
		if c < 0 || c > math.MaxUint32 || c != math.Trunc(c) {
			return PropertyValue{}, fmt.Errorf("color %v is not a 32-bit value: %w", c, ErrTypeMismatch)
		}
		return Color(uint32(c)), nil
	default:
		return PropertyValue{}, fmt.Errorf("property variant is null: %w", ErrTypeMismatch)
	}
}

// ParseColor reads "#RRGGBBAA", "#RRGGBB", "0xAARRGGBB" or bare hex digits.
// The '#' forms are CSS ordered and are repacked as alpha+RGB; a six digit value
// is fully opaque.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		switch len(hex) {
		case 6:
			return 0xFF000000 | uint32(n), nil
		case 8:
			rgb := uint32(n) >> 8
			alpha := uint32(n) & 0xFF
			return alpha<<24 | rgb, nil
		}
		return 0, fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", s)
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s = s[2:]
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(s) == 6 {
		return 0xFF000000 | uint32(n), nil
	}
	return uint32(n), nil
}
