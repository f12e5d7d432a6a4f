package decorators

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/propdeco/pkg/decorate"
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// Registry errors.
var (
	ErrUnknownDecorator   = errors.New("unknown decorator")
	ErrDuplicateDecorator = errors.New("decorator already registered")
	ErrBadArguments       = errors.New("bad decorator arguments")
	ErrModeNotSupported   = errors.New("mode only applies to validators")
)

// Builder makes a decorator from a validation mode and positional arguments
// as they come out of a configuration file.
type Builder func(mode types.Mode, args []any) (decorate.Decorator, error)

// Entry describes a registered decorator.
type Entry struct {
	Name      string
	Usage     string
	Validator bool
	build     Builder
}

// Registry maps decorator names to builders. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds a transformer-style decorator; a non-empty mode passed to
// Build for it fails with ErrModeNotSupported.
func (r *Registry) Register(name, usage string, b Builder) error {
	return r.add(Entry{Name: name, Usage: usage, build: b})
}

// RegisterValidator adds a decorator whose builder honors the mode.
func (r *Registry) RegisterValidator(name, usage string, b Builder) error {
	return r.add(Entry{Name: name, Usage: usage, Validator: true, build: b})
}

func (r *Registry) add(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[e.Name]; ok {
		return fmt.Errorf("%q: %w", e.Name, ErrDuplicateDecorator)
	}
	r.entries[e.Name] = e
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// Build makes the decorator registered under name.
func (r *Registry) Build(name string, mode types.Mode, args []any) (decorate.Decorator, error) {
	e, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownDecorator)
	}
	if !types.ValidMode(mode) {
		return nil, fmt.Errorf("%q: %w: %q", name, types.ErrModeUnknown, mode)
	}
	if mode != "" && !e.Validator {
		return nil, fmt.Errorf("%q: %w", name, ErrModeNotSupported)
	}
	dec, err := e.build(mode, args)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, err)
	}
	return dec, nil
}

// Entries returns all entries sorted by name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	entries := r.Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// DefaultRegistry returns a registry holding every decorator in this
// package. The logged decorator writes to log.
func DefaultRegistry(log *zap.Logger) *Registry {
	r := NewRegistry()

	mustRegister(r.Register("multiply", "multiply <factor>", func(_ types.Mode, args []any) (decorate.Decorator, error) {
		f, err := floatArgs(args, 1)
		if err != nil {
			return nil, err
		}
		return Multiply(f[0]), nil
	}))
	mustRegister(r.Register("add", "add <delta>", func(_ types.Mode, args []any) (decorate.Decorator, error) {
		f, err := floatArgs(args, 1)
		if err != nil {
			return nil, err
		}
		return Add(f[0]), nil
	}))
	mustRegister(r.Register("clamp", "clamp <min> <max>", func(_ types.Mode, args []any) (decorate.Decorator, error) {
		b, err := boundsArgs(args)
		if err != nil {
			return nil, err
		}
		return Clamp(b), nil
	}))
	mustRegister(r.Register("convert", "convert <from-unit> <to-unit>", func(_ types.Mode, args []any) (decorate.Decorator, error) {
		s, err := stringArgs(args, 2)
		if err != nil {
			return nil, err
		}
		u := Units{From: s[0], To: s[1]}
		if err := CheckUnits(u); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadArguments, err)
		}
		return Convert(u), nil
	}))
	mustRegister(r.Register("trim", "trim", noArgs(TrimSpace)))
	mustRegister(r.Register("lower", "lower", noArgs(Lower)))
	mustRegister(r.Register("title", "title", noArgs(Title)))
	mustRegister(r.Register("logged", "logged", func(_ types.Mode, args []any) (decorate.Decorator, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: want no arguments, got %d", ErrBadArguments, len(args))
		}
		return Logged(log), nil
	}))

	mustRegister(r.RegisterValidator("multipleOf", "multipleOf <m>", func(mode types.Mode, args []any) (decorate.Decorator, error) {
		f, err := floatArgs(args, 1)
		if err != nil {
			return nil, err
		}
		if !isWhole(f[0]) {
			return nil, fmt.Errorf("%w: multipleOf needs a whole number, got %v", ErrBadArguments, f[0])
		}
		return MultipleOf.Decorator(mode, int64(f[0])), nil
	}))
	mustRegister(r.RegisterValidator("inRange", "inRange <min> <max>", func(mode types.Mode, args []any) (decorate.Decorator, error) {
		b, err := boundsArgs(args)
		if err != nil {
			return nil, err
		}
		return InRange.Decorator(mode, b), nil
	}))
	mustRegister(r.RegisterValidator("nonEmpty", "nonEmpty", func(mode types.Mode, args []any) (decorate.Decorator, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: want no arguments, got %d", ErrBadArguments, len(args))
		}
		return NonEmpty.Decorator(mode, struct{}{}), nil
	}))
	mustRegister(r.RegisterValidator("oneOf", "oneOf <value>...", func(mode types.Mode, args []any) (decorate.Decorator, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: oneOf needs at least one value", ErrBadArguments)
		}
		return OneOf.Decorator(mode, append([]any(nil), args...)), nil
	}))

	return r
}

func mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}

func noArgs(fn func() decorate.Decorator) Builder {
	return func(_ types.Mode, args []any) (decorate.Decorator, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: want no arguments, got %d", ErrBadArguments, len(args))
		}
		return fn(), nil
	}
}

func floatArgs(args []any, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: want %d arguments, got %d", ErrBadArguments, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, ok := toFloat(a)
		if !ok {
			return nil, fmt.Errorf("%w: argument %d is %T, want a number", ErrBadArguments, i, a)
		}
		out[i] = f
	}
	return out, nil
}

func stringArgs(args []any, n int) ([]string, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: want %d arguments, got %d", ErrBadArguments, n, len(args))
	}
	out := make([]string, n)
	for i, a := range args {
		s, ok := a.(string)
		if !ok {
			return nil, fmt.Errorf("%w: argument %d is %T, want a string", ErrBadArguments, i, a)
		}
		out[i] = s
	}
	return out, nil
}

func boundsArgs(args []any) (Bounds, error) {
	f, err := floatArgs(args, 2)
	if err != nil {
		return Bounds{}, err
	}
	if f[0] > f[1] {
		return Bounds{}, fmt.Errorf("%w: min %v is above max %v", ErrBadArguments, f[0], f[1])
	}
	return Bounds{Min: f[0], Max: f[1]}, nil
}
