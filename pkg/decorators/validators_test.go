package decorators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/propdeco/pkg/types"
)

func TestMultipleOf(t *testing.T) {
	o := newOwner("obj")
	d := member(t, "n", 4, MultipleOf.Loose(2))
	assert.Equal(t, 4, get(t, d, o))

	require.NoError(t, d.Set(o, 7))
	assert.Equal(t, 4, get(t, d, o), "loose validator drops the write")

	require.NoError(t, d.Set(o, 8.0))
	assert.Equal(t, 8.0, get(t, d, o))

	strict := member(t, "n", 4, MultipleOf.Strict(2))
	err := strict.Set(o, 3)
	require.ErrorIs(t, err, types.ErrInvalidValue)
	assert.Contains(t, err.Error(), `"n"`)
}

func TestMultipleOfZero(t *testing.T) {
	d := member(t, "n", 0, MultipleOf.Strict(0))
	o := newOwner("obj")
	assert.Equal(t, 0, get(t, d, o))
	assert.ErrorIs(t, d.Set(o, 1), types.ErrInvalidValue)
}

func TestInRange(t *testing.T) {
	d := member(t, "pct", 50, InRange.Strict(Bounds{Min: 0, Max: 100}))
	o := newOwner("obj")

	require.NoError(t, d.Set(o, 100))
	assert.ErrorIs(t, d.Set(o, 101), types.ErrInvalidValue)
	assert.ErrorIs(t, d.Set(o, "50"), types.ErrInvalidValue)
	assert.Equal(t, 100, get(t, d, o))
}

func TestInRangeGatesInitialValue(t *testing.T) {
	loose := member(t, "pct", 150, InRange.Loose(Bounds{Min: 0, Max: 100}))
	assert.Nil(t, get(t, loose, newOwner("obj")))

	strict := member(t, "pct", 150, InRange.Strict(Bounds{Min: 0, Max: 100}))
	_, err := strict.Get(newOwner("obj"))
	assert.ErrorIs(t, err, types.ErrInvalidValue)
}

func TestNonEmpty(t *testing.T) {
	d := member(t, "name", "ada", NonEmpty.Strict(struct{}{}))
	o := newOwner("obj")

	assert.ErrorIs(t, d.Set(o, ""), types.ErrInvalidValue)
	assert.ErrorIs(t, d.Set(o, "   "), types.ErrInvalidValue)
	assert.ErrorIs(t, d.Set(o, nil), types.ErrInvalidValue)
	require.NoError(t, d.Set(o, 0))
	assert.Equal(t, 0, get(t, d, o))
}

func TestOneOf(t *testing.T) {
	d := member(t, "color", "red", OneOf.Decorator(types.ModeStrict, []any{"red", "green", 3}))
	o := newOwner("obj")

	require.NoError(t, d.Set(o, "green"))
	require.NoError(t, d.Set(o, int64(3)))
	assert.ErrorIs(t, d.Set(o, "blue"), types.ErrInvalidValue)
	assert.Equal(t, int64(3), get(t, d, o))
}

func TestValidatorAfterTransformer(t *testing.T) {
	// The validator gates the mapped initial value and raw writes.
	d := member(t, "n", 2, MultipleOf.Strict(2), Multiply(3))
	o := newOwner("obj")

	assert.Equal(t, 6, get(t, d, o))
	assert.ErrorIs(t, d.Set(o, 3), types.ErrInvalidValue)
	require.NoError(t, d.Set(o, 4))
	assert.Equal(t, 4, get(t, d, o))
}
