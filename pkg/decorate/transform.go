package decorate

import (
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// Mapping is a pure value mapping applied to a member's reads, writes, and
// initial value alike.
type Mapping func(owner types.Owner, value any) (any, error)

// ValueTransformer returns a decorator factory built from mappingFactory.
// The decorator wraps every path the descriptor carries with the mapping:
//
//   - an initializer is followed by the mapping, so the lazily computed
//     initial value is mapped;
//   - a getter is followed by the mapping, so reads are mapped on the way out;
//   - a setter is preceded by the mapping, so writes are mapped on the way in.
//
// A literal Value is first turned into an initializer, so it is mapped lazily
// on first read rather than at declaration time. Errors from the mapping or
// the wrapped callbacks are returned unmodified.
func ValueTransformer[A any](mappingFactory func(A) Mapping) func(A) Decorator {
	return func(args A) Decorator {
		m := mappingFactory(args)
		return func(d types.Descriptor) (types.Descriptor, error) {
			return transform(d, m)
		}
	}
}

func transform(d types.Descriptor, m Mapping) (types.Descriptor, error) {
	if err := d.Validate(); err != nil {
		return types.Descriptor{}, err
	}

	if d.HasValue {
		d.Initializer = initializerOf(d)
		d.Value, d.HasValue = nil, false
	}

	if init := d.Initializer; init != nil {
		d.Initializer = func(owner types.Owner) (any, error) {
			v, err := init(owner)
			if err != nil {
				return nil, err
			}
			return m(owner, v)
		}
	}

	if get := d.Get; get != nil {
		d.Get = func(owner types.Owner) (any, error) {
			v, err := get(owner)
			if err != nil {
				return nil, err
			}
			return m(owner, v)
		}
	}

	if set := d.Set; set != nil {
		d.Set = func(owner types.Owner, value any) error {
			v, err := m(owner, value)
			if err != nil {
				return err
			}
			return set(owner, v)
		}
	}

	return d, nil
}
