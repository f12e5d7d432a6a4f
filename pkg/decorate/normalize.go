package decorate

import (
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// Decorator consumes a member's descriptor and returns its replacement.
// It is called once per declaration, never once per owner.
type Decorator func(d types.Descriptor) (types.Descriptor, error)

// Normalize converts d to accessor kind.
//
// Accessor descriptors are returned unchanged. For a data descriptor, a
// literal Value becomes a trivial initializer, and the result gets a
// synthetic getter that runs the initializer at most once per owner and
// memoizes the value in the owner's slot for d.Token, plus a synthetic setter
// that overwrites the slot when d.Writable is true and fails with
// types.ImmutableAssignmentError otherwise. A zero Token is replaced with a
// fresh one.
func Normalize(d types.Descriptor) (types.Descriptor, error) {
	if err := d.Validate(); err != nil {
		return types.Descriptor{}, err
	}
	if d.Kind() == types.KindAccessor {
		return d, nil
	}
	if d.Token.IsZero() {
		d.Token = types.NewToken()
	}

	var (
		init     = initializerOf(d)
		token    = d.Token
		name     = d.Name
		writable = d.Writable
	)

	out := d
	out.Value, out.HasValue, out.Initializer, out.Writable = nil, false, nil, false

	out.Get = func(owner types.Owner) (any, error) {
		slots, err := slotsOf(owner)
		if err != nil {
			return nil, err
		}
		if init == nil {
			v, _ := slots.Load(token)
			return v, nil
		}
		return slots.LoadOrFill(token, func() (any, error) {
			return init(owner)
		})
	}

	out.Set = func(owner types.Owner, value any) error {
		slots, err := slotsOf(owner)
		if err != nil {
			return err
		}
		if !writable {
			return &types.ImmutableAssignmentError{Name: name, Owner: owner}
		}
		slots.Store(token, value)
		return nil
	}

	return out, nil
}

// EnsureAccessors wraps a decorator factory so that the descriptor its
// decorator receives is always normalized to accessor kind first.
func EnsureAccessors[A any](factory func(A) Decorator) func(A) Decorator {
	return func(args A) Decorator {
		dec := factory(args)
		return func(d types.Descriptor) (types.Descriptor, error) {
			n, err := Normalize(d)
			if err != nil {
				return types.Descriptor{}, err
			}
			return dec(n)
		}
	}
}

// initializerOf returns the lazy initializer a data descriptor stands for:
// its Initializer, a constant function for a literal Value, or nil.
func initializerOf(d types.Descriptor) types.Initializer {
	if d.HasValue {
		v := d.Value
		return func(types.Owner) (any, error) { return v, nil }
	}
	return d.Initializer
}

func slotsOf(owner types.Owner) (*types.Slots, error) {
	if owner == nil {
		return nil, types.ErrNilOwner
	}
	slots := owner.Slots()
	if slots == nil {
		return nil, types.ErrNilOwner
	}
	return slots, nil
}
