package host

import (
	"github.com/mesh-intelligence/propdeco/pkg/decorate"
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// Declaration is one member as written, before decoration.
type Declaration struct {
	Descriptor types.Descriptor
	Decorators []decorate.Decorator // Declaration order: farthest first, nearest last.
	Static     bool
}

// Field declares a writable member initialized with value.
func Field(name string, value any, decs ...decorate.Decorator) Declaration {
	return Declaration{Descriptor: types.Literal(name, value), Decorators: decs}
}

// Lazy declares a writable member whose initial value is computed by init
// on first read.
func Lazy(name string, init types.Initializer, decs ...decorate.Decorator) Declaration {
	return Declaration{Descriptor: types.Lazy(name, init), Decorators: decs}
}

// Empty declares a writable member with no initial value; it reads nil
// until written.
func Empty(name string, decs ...decorate.Decorator) Declaration {
	return Declaration{
		Descriptor: types.Descriptor{
			Name:         name,
			Enumerable:   true,
			Configurable: true,
			Writable:     true,
		},
		Decorators: decs,
	}
}

// Accessor declares a member backed by get and set. Either may be nil.
func Accessor(name string, get types.Getter, set types.Setter, decs ...decorate.Decorator) Declaration {
	return Declaration{Descriptor: types.Accessor(name, get, set), Decorators: decs}
}

// ReadOnly returns d with Writable cleared.
func (d Declaration) ReadOnly() Declaration {
	d.Descriptor.Writable = false
	return d
}

// Hidden returns d with Enumerable cleared, so it is left out of Keys.
func (d Declaration) Hidden() Declaration {
	d.Descriptor.Enumerable = false
	return d
}

// AsStatic returns d marked as a class-level member.
func (d Declaration) AsStatic() Declaration {
	d.Static = true
	return d
}

// Name returns the declared member name.
func (d Declaration) Name() string {
	return d.Descriptor.Name
}
