package types

import (
	"errors"
	"fmt"
)

// Member errors raised at read or write time.
var (
	ErrImmutableAssignment = errors.New("assignment to immutable member")
	ErrInvalidValue        = errors.New("invalid value")
	ErrNilOwner            = errors.New("member accessed without an owner")
	ErrReentrantRead       = errors.New("member read while its initializer is running")
)

// Descriptor shape errors raised at decoration time.
var (
	ErrMixedDescriptor = errors.New("descriptor has both data and accessor fields")
	ErrAmbiguousData   = errors.New("descriptor has both a value and an initializer")
)

// ImmutableAssignmentError reports a write to a member normalized with
// Writable false. It matches ErrImmutableAssignment under errors.Is.
type ImmutableAssignmentError struct {
	Name  string
	Owner Owner
}

func (e *ImmutableAssignmentError) Error() string {
	return fmt.Sprintf("cannot assign to immutable member %q of %s", e.Name, DescribeOwner(e.Owner))
}

// Is reports whether target is ErrImmutableAssignment.
func (e *ImmutableAssignmentError) Is(target error) bool {
	return target == ErrImmutableAssignment
}

// InvalidValueError reports a value rejected by a strict validator. It
// matches ErrInvalidValue under errors.Is.
type InvalidValueError struct {
	Value any
	Name  string
	Owner Owner
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %v for member %q of %s", e.Value, e.Name, DescribeOwner(e.Owner))
}

// Is reports whether target is ErrInvalidValue.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// DescribeOwner renders owner for diagnostics: its String method when it has
// one, its dynamic type otherwise.
func DescribeOwner(owner Owner) string {
	if owner == nil {
		return "<nil owner>"
	}
	if s, ok := owner.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", owner)
}
