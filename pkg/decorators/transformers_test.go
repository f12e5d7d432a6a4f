package decorators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/propdeco/pkg/types"
)

func TestMultiply(t *testing.T) {
	d := member(t, "answer", 21, Multiply(2))
	o := newOwner("obj")

	assert.Equal(t, 42, get(t, d, o))

	// On a field only the initial value is mapped; writes are stored as is.
	require.NoError(t, d.Set(o, 5))
	assert.Equal(t, 5, get(t, d, o))
}

func TestMultiplyStacked(t *testing.T) {
	d := member(t, "n", 1, Multiply(2), Multiply(3))
	assert.Equal(t, 6, get(t, d, newOwner("obj")))
}

func TestAdd(t *testing.T) {
	d := member(t, "n", 1, Add(10))
	assert.Equal(t, 11, get(t, d, newOwner("obj")))

	d = member(t, "f", 1.25, Add(0.5))
	assert.Equal(t, 1.75, get(t, d, newOwner("obj")))
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"inside", 5, 5},
		{"below", -3, 0},
		{"above", 12, 10},
		{"float above", 10.5, 10.0},
		{"at bound", 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := member(t, "n", tt.in, Clamp(Bounds{Min: 0, Max: 10}))
			assert.Equal(t, tt.want, get(t, d, newOwner("obj")))
		})
	}
}

func TestClampRejectsNonNumeric(t *testing.T) {
	d := member(t, "n", "ten", Clamp(Bounds{Min: 0, Max: 10}))
	_, err := d.Get(newOwner("obj"))
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestStringTransformers(t *testing.T) {
	d := member(t, "name", "  Ada LOVELACE ", Title(), Lower(), TrimSpace())
	assert.Equal(t, "Ada Lovelace", get(t, d, newOwner("obj")))

	d = member(t, "tag", " MiXeD ", TrimSpace())
	o := newOwner("obj")
	assert.Equal(t, "MiXeD", get(t, d, o))
	require.NoError(t, d.Set(o, "\tnext\n"))
	assert.Equal(t, "\tnext\n", get(t, d, o))
}

func TestStringTransformerRejectsNonString(t *testing.T) {
	d := member(t, "n", 3, Lower())
	_, err := d.Get(newOwner("obj"))
	assert.ErrorIs(t, err, ErrNotString)
}

func TestTransformerOnAccessor(t *testing.T) {
	var stored any = 2
	d := types.Accessor("n",
		func(types.Owner) (any, error) { return stored, nil },
		func(_ types.Owner, v any) error { stored = v; return nil },
	)
	d, err := Multiply(10)(d)
	require.NoError(t, err)

	o := newOwner("obj")
	assert.Equal(t, 20, get(t, d, o))
	require.NoError(t, d.Set(o, 3))
	assert.Equal(t, 30, stored)
}
