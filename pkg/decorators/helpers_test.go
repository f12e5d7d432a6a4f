package decorators

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/propdeco/pkg/decorate"
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

type testOwner struct {
	label string
	slots types.Slots
}

func newOwner(label string) *testOwner { return &testOwner{label: label} }

func (o *testOwner) Slots() *types.Slots { return &o.slots }
func (o *testOwner) String() string      { return o.label }

// member applies decs to a writable literal and returns the result.
func member(t *testing.T, name string, value any, decs ...decorate.Decorator) types.Descriptor {
	t.Helper()
	d, err := decorate.Apply(types.Literal(name, value), decs...)
	require.NoError(t, err)
	if d.Kind() == types.KindData {
		d, err = decorate.Normalize(d)
		require.NoError(t, err)
	}
	return d
}

func get(t *testing.T, d types.Descriptor, o types.Owner) any {
	t.Helper()
	v, err := d.Get(o)
	require.NoError(t, err)
	return v
}
