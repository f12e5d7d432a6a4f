package decorate

import (
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// testOwner is a minimal types.Owner for exercising descriptors directly.
type testOwner struct {
	label string
	slots types.Slots
}

func newOwner(label string) *testOwner {
	return &testOwner{label: label}
}

func (o *testOwner) Slots() *types.Slots { return &o.slots }
func (o *testOwner) String() string      { return o.label }

func mustGet(d types.Descriptor, o types.Owner) any {
	v, err := d.Get(o)
	if err != nil {
		panic(err)
	}
	return v
}

// multiplier mirrors the reference multiplier decorator: ints are scaled by m.
var multiplier = ValueTransformer(func(m int) Mapping {
	return func(_ types.Owner, v any) (any, error) {
		return v.(int) * m, nil
	}
})

// multipleOf accepts ints divisible by m.
var multipleOf = ValueValidator(func(m int) Predicate {
	return func(_ types.Owner, v any, _ string) (bool, error) {
		n, ok := v.(int)
		return ok && n%m == 0, nil
	}
})
