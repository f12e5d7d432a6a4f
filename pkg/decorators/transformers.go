package decorators

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/propdeco/pkg/decorate"
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// Bounds is an inclusive numeric range.
type Bounds struct {
	Min float64
	Max float64
}

// Multiply scales numeric values by a factor.
var Multiply = decorate.ValueTransformer(func(factor float64) decorate.Mapping {
	return func(_ types.Owner, v any) (any, error) {
		return scale(v, factor)
	}
})

// Add offsets numeric values by delta.
var Add = decorate.ValueTransformer(func(delta float64) decorate.Mapping {
	return func(_ types.Owner, v any) (any, error) {
		return offset(v, delta)
	}
})

// Clamp limits numeric values to b. Values inside the bounds pass through
// unchanged; values outside are replaced by the nearer bound in v's type.
var Clamp = decorate.ValueTransformer(func(b Bounds) decorate.Mapping {
	return func(_ types.Owner, v any) (any, error) {
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrNotNumeric, v)
		}
		switch {
		case f < b.Min:
			return like(v, b.Min), nil
		case f > b.Max:
			return like(v, b.Max), nil
		default:
			return v, nil
		}
	}
})

var stringMapping = decorate.ValueTransformer(func(fn func(string) string) decorate.Mapping {
	return func(_ types.Owner, v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrNotString, v)
		}
		return fn(s), nil
	}
})

// TrimSpace strips leading and trailing white space from string values.
func TrimSpace() decorate.Decorator {
	return stringMapping(strings.TrimSpace)
}

// Lower lower-cases string values.
func Lower() decorate.Decorator {
	return stringMapping(strings.ToLower)
}

// Title title-cases string values using English casing rules.
func Title() decorate.Decorator {
	return stringMapping(func(s string) string {
		// A Caser keeps state between calls, so each call gets its own.
		return cases.Title(language.English).String(s)
	})
}
