package decorators

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same int", 8, 8, true},
		{"int and int64", 8, int64(8), true},
		{"int and float", 8, 8.0, true},
		{"decimal and int", decimal.NewFromInt(3), 3, true},
		{"different numbers", 8, 9, false},
		{"strings", "a", "a", true},
		{"different strings", "a", "b", false},
		{"number and string", 8, "8", false},
		{"nils", nil, nil, true},
		{"slices", []any{1, "x"}, []any{1, "x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestScaleKeepsType(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		factor float64
		want   any
	}{
		{"int by whole", 21, 2, 42},
		{"int64 by whole", int64(5), 3, int64(15)},
		{"int by fraction", 3, 0.5, 1.5},
		{"int by fraction whole result", 4, 0.5, 2},
		{"float", 1.5, 2, 3.0},
		{"float32", float32(1.5), 2, float32(3)},
		{"decimal", decimal.RequireFromString("1.10"), 3, decimal.RequireFromString("3.3")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scale(tt.in, tt.factor)
			assert.NoError(t, err)
			if d, ok := tt.want.(decimal.Decimal); ok {
				assert.True(t, d.Equal(got.(decimal.Decimal)), "got %v", got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScaleRejectsNonNumeric(t *testing.T) {
	_, err := scale("x", 2)
	assert.ErrorIs(t, err, ErrNotNumeric)
	_, err = offset(nil, 1)
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestIsInRange(t *testing.T) {
	assert.True(t, isInRange(1, 1, 3))
	assert.True(t, isInRange(1, 3, 3))
	assert.False(t, isInRange(1, 4, 3))
	assert.True(t, isInRange(-1.5, 0.0, 1.5))
}
