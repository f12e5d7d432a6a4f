package host

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// Object is an owner: a class instance, a class's static holder, or an
// object literal. It implements types.Owner; its memo slots are private and
// never listed by Keys.
type Object struct {
	label   string
	members *table
	slots   types.Slots
	log     *zap.Logger
}

// NewObject decorates decls and returns an object literal that owns them.
// Static declarations are rejected.
func NewObject(decls []Declaration, opts ...Option) (*Object, error) {
	o := newOptions(opts)

	for _, decl := range decls {
		if decl.Static {
			return nil, fmt.Errorf("%q: %w", decl.Name(), ErrStaticInObject)
		}
	}
	if err := checkNames(make(map[string]bool), decls); err != nil {
		return nil, err
	}

	members, err := install(decls, o.logger)
	if err != nil {
		return nil, err
	}
	return newObject(o.label, members, o.logger), nil
}

func newObject(label string, members *table, log *zap.Logger) *Object {
	return &Object{label: label, members: members, log: log}
}

// Slots implements types.Owner.
func (o *Object) Slots() *types.Slots {
	return &o.slots
}

// String returns the owner label used in diagnostics.
func (o *Object) String() string {
	return o.label
}

// Get reads member name. A member with no getter reads nil. Errors from the
// member's getter are returned unmodified.
func (o *Object) Get(name string) (any, error) {
	d, ok := o.members.lookup(name)
	if !ok {
		return nil, fmt.Errorf("get %q on %s: %w", name, o.label, ErrMemberNotFound)
	}
	if d.Get == nil {
		return nil, nil
	}

	v, err := d.Get(o)
	if err != nil {
		o.log.Debug("member read failed",
			zap.String("owner", o.label), zap.String("member", name), zap.Error(err))
		return nil, err
	}
	o.log.Debug("member read",
		zap.String("owner", o.label), zap.String("member", name), zap.Any("value", v))
	return v, nil
}

// Set writes value to member name. Writing a member without a setter fails
// with ErrNotWritable. Errors from the member's setter, including
// types.ImmutableAssignmentError and types.InvalidValueError, are returned
// unmodified.
func (o *Object) Set(name string, value any) error {
	d, ok := o.members.lookup(name)
	if !ok {
		return fmt.Errorf("set %q on %s: %w", name, o.label, ErrMemberNotFound)
	}
	if d.Set == nil {
		return fmt.Errorf("set %q on %s: %w", name, o.label, ErrNotWritable)
	}

	if err := d.Set(o, value); err != nil {
		o.log.Debug("member write failed",
			zap.String("owner", o.label), zap.String("member", name), zap.Any("value", value), zap.Error(err))
		return err
	}
	o.log.Debug("member written",
		zap.String("owner", o.label), zap.String("member", name), zap.Any("value", value))
	return nil
}

// Has reports whether name is a member, enumerable or not.
func (o *Object) Has(name string) bool {
	_, ok := o.members.lookup(name)
	return ok
}

// Keys returns the enumerable member names in declaration order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.members.order))
	for _, name := range o.members.order {
		if o.members.byName[name].Enumerable {
			keys = append(keys, name)
		}
	}
	return keys
}

// Members returns every member name, hidden ones included, in declaration
// order.
func (o *Object) Members() []string {
	return append([]string(nil), o.members.order...)
}

// Descriptor returns the installed descriptor for name.
func (o *Object) Descriptor(name string) (types.Descriptor, bool) {
	return o.members.lookup(name)
}
