package editor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/turbo-editor/pkg/domain"
)

// ParseValue reads a property value typed on a command line:
//
//	true, false             Boolean
//	#RRGGBB, #RRGGBBAA      Color (CSS order)
//	0xAARRGGBB              Color (packed); other 0x words are String
//	12, -3.5, 1e3           Number (finite only; inf and nan are String)
//	"quoted text"           String, quotes removed
//	anything else           String
//
// A JSON variant object such as {"Number":12} is also accepted.
func ParseValue(s string) (domain.PropertyValue, error) {
	t := strings.TrimSpace(s)
	switch {
	case t == "true" || t == "false":
		return domain.Bool(t == "true"), nil
	case strings.HasPrefix(t, "#"):
		c, err := domain.ParseColor(t)
		if err != nil {
			return domain.PropertyValue{}, fmt.Errorf("%w: %v", domain.ErrTypeMismatch, err)
		}
		return domain.Color(c), nil
	case strings.HasPrefix(t, "0x"), strings.HasPrefix(t, "0X"):
		if c, err := domain.ParseColor(t); err == nil {
			return domain.Color(c), nil
		}
		return domain.Text(s), nil
	case strings.HasPrefix(t, "{"):
		var v domain.PropertyValue
		if err := v.UnmarshalJSON([]byte(t)); err != nil {
			return domain.PropertyValue{}, err
		}
		return v, nil
	case len(t) >= 2 && t[0] == '"' && t[len(t)-1] == '"':
		unq, err := strconv.Unquote(t)
		if err != nil {
			return domain.PropertyValue{}, fmt.Errorf("%w: %v", domain.ErrTypeMismatch, err)
		}
		return domain.Text(unq), nil
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return domain.Number(f), nil
	}
	return domain.Text(s), nil
}
