package decorate

import (
	"fmt"

	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// Apply folds decs over d. decs is in declaration order, farthest from the
// member first, so the last decorator is applied first and becomes the
// innermost wrapper. Each decorator runs exactly once.
func Apply(d types.Descriptor, decs ...Decorator) (types.Descriptor, error) {
	for i := len(decs) - 1; i >= 0; i-- {
		if decs[i] == nil {
			continue
		}
		next, err := decs[i](d)
		if err != nil {
			return types.Descriptor{}, fmt.Errorf("decorate %q (decorator %d): %w", d.Name, i, err)
		}
		d = next
	}
	return d, nil
}

// Chain composes decs, in declaration order, into a single decorator.
func Chain(decs ...Decorator) Decorator {
	return func(d types.Descriptor) (types.Descriptor, error) {
		return Apply(d, decs...)
	}
}
