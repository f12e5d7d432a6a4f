package decorators

import (
	"math"
	"strings"

	"github.com/mesh-intelligence/propdeco/pkg/decorate"
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// MultipleOf accepts whole numbers divisible by m. With m zero only zero is
// accepted. Non-numeric and fractional values are rejected.
var MultipleOf = decorate.ValueValidator(func(m int64) decorate.Predicate {
	return func(_ types.Owner, v any, _ string) (bool, error) {
		f, ok := toFloat(v)
		if !ok || !isWhole(f) {
			return false, nil
		}
		if m == 0 {
			return f == 0, nil
		}
		return math.Mod(f, float64(m)) == 0, nil
	}
})

// InRange accepts numbers within b, both ends inclusive.
var InRange = decorate.ValueValidator(func(b Bounds) decorate.Predicate {
	return func(_ types.Owner, v any, _ string) (bool, error) {
		f, ok := toFloat(v)
		if !ok {
			return false, nil
		}
		return isInRange(b.Min, f, b.Max), nil
	}
})

// NonEmpty rejects nil and strings that are empty or only white space. Other
// values are accepted.
var NonEmpty = decorate.ValueValidator(func(struct{}) decorate.Predicate {
	return func(_ types.Owner, v any, _ string) (bool, error) {
		switch s := v.(type) {
		case nil:
			return false, nil
		case string:
			return strings.TrimSpace(s) != "", nil
		default:
			return true, nil
		}
	}
})

// OneOf accepts values equal, in the sense of Equal, to one of allowed.
var OneOf = decorate.ValueValidator(func(allowed []any) decorate.Predicate {
	return func(_ types.Owner, v any, _ string) (bool, error) {
		for _, a := range allowed {
			if Equal(a, v) {
				return true, nil
			}
		}
		return false, nil
	}
})
