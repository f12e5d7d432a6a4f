package types

import "fmt"

// Kind tags which field group of a Descriptor is populated.
type Kind int

// Descriptor kinds.
const (
	KindData Kind = iota
	KindAccessor
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindAccessor:
		return "accessor"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Initializer lazily produces a member's initial value for owner.
type Initializer func(owner Owner) (any, error)

// Getter returns the current value of a member of owner.
type Getter func(owner Owner) (any, error)

// Setter consumes a new value for a member of owner.
type Setter func(owner Owner, value any) error

// Descriptor is the canonical metadata for one declared member.
//
// Exactly one group is populated: the data group (Value with HasValue, or
// Initializer) or the accessor group (Get and/or Set). A data descriptor
// with neither a value nor an initializer describes a member that reads nil
// until it is first written.
type Descriptor struct {
	Name  string // Member name, used for diagnostics only.
	Token Token  // Declaration identity; keys the member's memo slot.

	Value       any
	HasValue    bool
	Initializer Initializer

	Get Getter
	Set Setter

	Enumerable   bool
	Configurable bool
	Writable     bool // Only meaningful for members normalized from data kind.
}

// Literal returns a writable, enumerable data descriptor holding value.
func Literal(name string, value any) Descriptor {
	return Descriptor{
		Name:         name,
		Value:        value,
		HasValue:     true,
		Enumerable:   true,
		Configurable: true,
		Writable:     true,
	}
}

// Lazy returns a writable, enumerable data descriptor whose initial value is
// produced by init on first read.
func Lazy(name string, init Initializer) Descriptor {
	return Descriptor{
		Name:         name,
		Initializer:  init,
		Enumerable:   true,
		Configurable: true,
		Writable:     true,
	}
}

// Accessor returns an enumerable accessor descriptor. Either get or set may
// be nil, but not both.
func Accessor(name string, get Getter, set Setter) Descriptor {
	return Descriptor{
		Name:         name,
		Get:          get,
		Set:          set,
		Enumerable:   true,
		Configurable: true,
	}
}

// Kind reports KindAccessor when a getter or setter is present and KindData
// otherwise.
func (d Descriptor) Kind() Kind {
	if d.Get != nil || d.Set != nil {
		return KindAccessor
	}
	return KindData
}

// Validate checks the field-group invariant. It returns an error matching
// ErrMixedDescriptor when data and accessor fields are both populated, and
// one matching ErrAmbiguousData when both a value and an initializer are set.
func (d Descriptor) Validate() error {
	hasData := d.HasValue || d.Initializer != nil
	if hasData && d.Kind() == KindAccessor {
		return fmt.Errorf("member %q: %w", d.Name, ErrMixedDescriptor)
	}
	if d.HasValue && d.Initializer != nil {
		return fmt.Errorf("member %q: %w", d.Name, ErrAmbiguousData)
	}
	return nil
}
