package decorators

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/shopspring/decimal"
)

// Value errors returned by mappings and predicates.
var (
	ErrNotNumeric = errors.New("value is not numeric")
	ErrNotString  = errors.New("value is not a string")
)

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// isInRange checks if a value is within the specified range, both inclusive.
func isInRange[T number](min T, value T, max T) bool {
	return min <= value && value <= max
}

func isWhole(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0)
}

// toFloat converts any supported numeric value to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case decimal.Decimal:
		return n.InexactFloat64(), true
	default:
		return 0, false
	}
}

// like converts f back to the numeric type of v. Integer types keep their
// type when f is whole and fall back to float64 otherwise.
func like(v any, f float64) any {
	switch v.(type) {
	case int:
		if isWhole(f) {
			return int(f)
		}
	case int64:
		if isWhole(f) {
			return int64(f)
		}
	case int32:
		if isWhole(f) {
			return int32(f)
		}
	case float32:
		return float32(f)
	case decimal.Decimal:
		return decimal.NewFromFloat(f)
	}
	return f
}

// scale multiplies v by factor, keeping v's type where the result allows.
func scale(v any, factor float64) (any, error) {
	switch n := v.(type) {
	case int:
		if isWhole(factor) {
			return n * int(factor), nil
		}
	case int64:
		if isWhole(factor) {
			return n * int64(factor), nil
		}
	case decimal.Decimal:
		return n.Mul(decimal.NewFromFloat(factor)), nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
	return like(v, f*factor), nil
}

// offset adds delta to v, keeping v's type where the result allows.
func offset(v any, delta float64) (any, error) {
	switch n := v.(type) {
	case int:
		if isWhole(delta) {
			return n + int(delta), nil
		}
	case int64:
		if isWhole(delta) {
			return n + int64(delta), nil
		}
	case decimal.Decimal:
		return n.Add(decimal.NewFromFloat(delta)), nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
	return like(v, f+delta), nil
}

// Equal reports whether a and b are equal, comparing numbers by value across
// numeric types, so 8, int64(8), and 8.0 are all equal.
func Equal(a, b any) bool {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		return fa == fb
	}
	if okA != okB {
		return false
	}
	return reflect.DeepEqual(a, b)
}
