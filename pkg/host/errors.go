package host

import "errors"

// Host errors.
var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrNotWritable     = errors.New("member has no setter")
	ErrDuplicateMember = errors.New("member already declared")
	ErrInvalidName     = errors.New("member name must not be empty")
	ErrSealed          = errors.New("class is already built")
	ErrStaticInObject  = errors.New("static members are only valid in classes")
)
