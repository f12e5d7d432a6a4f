package decorators

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/propdeco/pkg/decorate"
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// Unit conversion errors.
var (
	ErrUnknownUnit       = errors.New("unknown unit")
	ErrIncompatibleUnits = errors.New("units measure different dimensions")
)

// Units names a conversion from one unit to another of the same dimension.
type Units struct {
	From string
	To   string
}

type unit struct {
	dimension string
	factor    decimal.Decimal // Size of one unit in the dimension's base unit.
}

var units = map[string]unit{
	"mm": {"length", decimal.RequireFromString("0.001")},
	"cm": {"length", decimal.RequireFromString("0.01")},
	"m":  {"length", decimal.NewFromInt(1)},
	"km": {"length", decimal.NewFromInt(1000)},
	"in": {"length", decimal.RequireFromString("0.0254")},
	"ft": {"length", decimal.RequireFromString("0.3048")},
	"yd": {"length", decimal.RequireFromString("0.9144")},
	"mi": {"length", decimal.RequireFromString("1609.344")},

	"mg": {"mass", decimal.RequireFromString("0.001")},
	"g":  {"mass", decimal.NewFromInt(1)},
	"kg": {"mass", decimal.NewFromInt(1000)},
	"oz": {"mass", decimal.RequireFromString("28.349523125")},
	"lb": {"mass", decimal.RequireFromString("453.59237")},

	"ms":  {"time", decimal.RequireFromString("0.001")},
	"s":   {"time", decimal.NewFromInt(1)},
	"min": {"time", decimal.NewFromInt(60)},
	"h":   {"time", decimal.NewFromInt(3600)},

	"cent":   {"money", decimal.NewFromInt(1)},
	"dollar": {"money", decimal.NewFromInt(100)},
}

// UnitNames returns the supported unit names, sorted.
func UnitNames() []string {
	names := make([]string, 0, len(units))
	for name := range units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckUnits reports whether u names two known units of one dimension.
func CheckUnits(u Units) error {
	from, ok := units[u.From]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, u.From)
	}
	to, ok := units[u.To]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, u.To)
	}
	if from.dimension != to.dimension {
		return fmt.Errorf("%w: %s is %s, %s is %s", ErrIncompatibleUnits, u.From, from.dimension, u.To, to.dimension)
	}
	return nil
}

// Convert rescales numeric values from one unit to another in decimal
// arithmetic. A value is multiplied up to the base unit before it is divided
// down, so conversions with a terminating result are exact; others are
// rounded to decimal.DivisionPrecision digits. Integer inputs stay integers when the converted value
// is whole; decimal.Decimal inputs stay decimals; numeric strings are parsed
// and returned as strings. Unknown or mismatched units make every mapped
// access fail; use CheckUnits to catch them up front.
var Convert = decorate.ValueTransformer(func(u Units) decorate.Mapping {
	if err := CheckUnits(u); err != nil {
		return func(types.Owner, any) (any, error) { return nil, err }
	}
	from, to := units[u.From].factor, units[u.To].factor
	rescale := func(d decimal.Decimal) decimal.Decimal {
		return d.Mul(from).Div(to)
	}

	return func(_ types.Owner, v any) (any, error) {
		return convert(v, rescale)
	}
})

func convert(v any, rescale func(decimal.Decimal) decimal.Decimal) (any, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return rescale(n), nil
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNotNumeric, n)
		}
		return rescale(d).String(), nil
	case int:
		r := rescale(decimal.NewFromInt(int64(n)))
		if r.IsInteger() {
			return int(r.IntPart()), nil
		}
		return r.InexactFloat64(), nil
	case int64:
		r := rescale(decimal.NewFromInt(n))
		if r.IsInteger() {
			return r.IntPart(), nil
		}
		return r.InexactFloat64(), nil
	}

	f, ok := toFloat(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
	return rescale(decimal.NewFromFloat(f)).InexactFloat64(), nil
}
