package decorate

import (
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// Predicate reports whether value is acceptable for the member called name.
type Predicate func(owner types.Owner, value any, name string) (bool, error)

// Validator builds write-gating decorators from a predicate factory. Loose
// and Strict decorators built from the same arguments accept and reject
// exactly the same values; they differ only in what a rejection does.
type Validator[A any] struct {
	factory func(A) Predicate
}

// ValueValidator returns a Validator whose decorators evaluate the predicate
// produced by predicateFactory on every write.
func ValueValidator[A any](predicateFactory func(A) Predicate) Validator[A] {
	return Validator[A]{factory: predicateFactory}
}

// Loose returns a decorator that silently drops rejected writes.
func (v Validator[A]) Loose(args A) Decorator {
	return v.Decorator(types.ModeLoose, args)
}

// Strict returns a decorator that fails rejected writes with
// types.InvalidValueError.
func (v Validator[A]) Strict(args A) Decorator {
	return v.Decorator(types.ModeStrict, args)
}

// Decorator returns the decorator for mode. Any mode other than
// types.ModeStrict, including the empty mode, is loose.
//
// The descriptor is normalized first, since only a setter can intercept a
// write. When the descriptor was data kind its initial value is gated too: a
// loose rejection leaves the member reading nil, a strict one fails the read.
// A normalized descriptor without a setter passes through unchanged.
func (v Validator[A]) Decorator(mode types.Mode, args A) Decorator {
	p := v.factory(args)
	strict := mode == types.ModeStrict

	return func(d types.Descriptor) (types.Descriptor, error) {
		if err := d.Validate(); err != nil {
			return types.Descriptor{}, err
		}
		if d.Kind() == types.KindData {
			d = gateInitial(d, p, strict)
		}

		n, err := Normalize(d)
		if err != nil {
			return types.Descriptor{}, err
		}

		set := n.Set
		if set == nil {
			return n, nil
		}

		name := n.Name
		n.Set = func(owner types.Owner, value any) error {
			ok, err := p(owner, value, name)
			if err != nil {
				return err
			}
			if !ok {
				if strict {
					return &types.InvalidValueError{Value: value, Name: name, Owner: owner}
				}
				return nil
			}
			return set(owner, value)
		}
		return n, nil
	}
}

func gateInitial(d types.Descriptor, p Predicate, strict bool) types.Descriptor {
	init := initializerOf(d)
	if init == nil {
		return d
	}

	name := d.Name
	d.Value, d.HasValue = nil, false
	d.Initializer = func(owner types.Owner) (any, error) {
		v, err := init(owner)
		if err != nil {
			return nil, err
		}
		ok, err := p(owner, v, name)
		if err != nil {
			return nil, err
		}
		if ok {
			return v, nil
		}
		if strict {
			return nil, &types.InvalidValueError{Value: v, Name: name, Owner: owner}
		}
		return nil, nil
	}
	return d
}
