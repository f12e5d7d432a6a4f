package scenario

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/propdeco/pkg/decorate"
	"github.com/mesh-intelligence/propdeco/pkg/decorators"
	"github.com/mesh-intelligence/propdeco/pkg/host"
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// DefaultOwner is the class instance steps address when they name none.
const DefaultOwner = "default"

// ErrBuild wraps failures to turn a scenario's members into host
// declarations, such as unknown decorators or bad decorator arguments.
var ErrBuild = errors.New("build scenario")

// errorKinds maps expect_error keywords to the errors they match.
var errorKinds = map[string]error{
	"immutable":    types.ErrImmutableAssignment,
	"invalid":      types.ErrInvalidValue,
	"not_found":    host.ErrMemberNotFound,
	"not_writable": host.ErrNotWritable,
	"not_numeric":  decorators.ErrNotNumeric,
	"not_string":   decorators.ErrNotString,
}

// Runner turns scenarios into host objects and classes and runs their steps.
type Runner struct {
	reg  *decorators.Registry
	mode types.Mode
	log  *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithMode sets the validator mode used when neither the decorator reference
// nor the scenario names one.
func WithMode(m types.Mode) Option {
	return func(r *Runner) { r.mode = m }
}

// WithLogger sets the logger handed to the host.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRunner returns a runner that resolves decorator names in reg.
func NewRunner(reg *decorators.Registry, opts ...Option) *Runner {
	r := &Runner{reg: reg, mode: types.DefaultMode, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Declarations converts the scenario's members to host declarations in
// order.
func (r *Runner) Declarations(s *Scenario) ([]host.Declaration, error) {
	decls := make([]host.Declaration, 0, len(s.Members))
	for _, m := range s.Members {
		d, err := r.declaration(s, m)
		if err != nil {
			return nil, fmt.Errorf("%w: member %q: %w", ErrBuild, m.Name, err)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func (r *Runner) declaration(s *Scenario, m Member) (host.Declaration, error) {
	decs, err := r.chain(s, m.Decorators)
	if err != nil {
		return host.Declaration{}, err
	}
	value, err := m.InitialValue()
	if err != nil {
		return host.Declaration{}, err
	}

	var d host.Declaration
	switch m.Kind {
	case KindLazy:
		d = host.Lazy(m.Name, func(types.Owner) (any, error) { return value, nil }, decs...)
	case KindAccessor:
		get, set := backing(value)
		d = host.Accessor(m.Name, get, set, decs...)
	case KindGetter:
		get, _ := backing(value)
		d = host.Accessor(m.Name, get, nil, decs...)
	default:
		if m.HasValue() {
			d = host.Field(m.Name, value, decs...)
		} else {
			d = host.Empty(m.Name, decs...)
		}
	}

	if m.ReadOnly {
		d = d.ReadOnly()
	}
	if m.Hidden {
		d = d.Hidden()
	}
	if m.Static {
		d = d.AsStatic()
	}
	return d, nil
}

func (r *Runner) chain(s *Scenario, refs []Ref) ([]decorate.Decorator, error) {
	decs := make([]decorate.Decorator, 0, len(refs))
	for _, ref := range refs {
		dec, err := r.reg.Build(ref.Name, r.modeFor(s, ref), ref.Args)
		if err != nil {
			return nil, err
		}
		decs = append(decs, dec)
	}
	return decs, nil
}

// modeFor picks the validator mode for ref: its own, the scenario's, then
// the runner's. Transformers always get the empty mode.
func (r *Runner) modeFor(s *Scenario, ref Ref) types.Mode {
	if ref.Mode != "" {
		return ref.Mode
	}
	e, ok := r.reg.Lookup(ref.Name)
	if !ok || !e.Validator {
		return ""
	}
	if s.Mode != "" {
		return s.Mode
	}
	return r.mode
}

// backing returns accessor callbacks over a per-owner slot seeded with
// initial, standing in for a hand-written getter and setter pair.
func backing(initial any) (types.Getter, types.Setter) {
	token := types.NewToken()
	get := func(owner types.Owner) (any, error) {
		return owner.Slots().LoadOrFill(token, func() (any, error) { return initial, nil })
	}
	set := func(owner types.Owner, v any) error {
		owner.Slots().Store(token, v)
		return nil
	}
	return get, set
}

// fixture holds the owners a running scenario addresses.
type fixture struct {
	object    *host.Object
	class     *host.Class
	instances map[string]*host.Object
}

func (r *Runner) build(s *Scenario) (*fixture, error) {
	decls, err := r.Declarations(s)
	if err != nil {
		return nil, err
	}
	name := s.Name
	if name == "" {
		name = s.Target
	}

	if s.Target == TargetObject {
		obj, err := host.NewObject(decls, host.WithLogger(r.log), host.WithLabel(name))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuild, err)
		}
		return &fixture{object: obj}, nil
	}

	class := host.NewClass(name, host.WithLogger(r.log))
	if err := class.Declare(decls...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	if err := class.Build(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	return &fixture{class: class, instances: make(map[string]*host.Object)}, nil
}

// owner returns the object a step addresses, creating class instances on
// first use.
func (f *fixture) owner(on string) (*host.Object, error) {
	if f.object != nil {
		return f.object, nil
	}
	if on == OwnerStatic {
		return f.class.Static()
	}
	if on == "" {
		on = DefaultOwner
	}
	if obj, ok := f.instances[on]; ok {
		return obj, nil
	}
	obj, err := f.class.New()
	if err != nil {
		return nil, err
	}
	f.instances[on] = obj
	return obj, nil
}

// Run builds the scenario's owners and runs every step. A failing step does
// not stop the run. The returned error is non-nil only when the scenario
// cannot be built.
func (r *Runner) Run(s *Scenario) (*Result, error) {
	fx, err := r.build(s)
	if err != nil {
		return nil, err
	}

	res := &Result{Scenario: s.Name, Target: s.Target}
	for i, st := range s.Steps {
		e := r.step(fx, i+1, st)
		if !e.OK() {
			res.Failures++
		}
		res.Entries = append(res.Entries, e)
	}
	r.log.Debug("scenario finished",
		zap.String("scenario", s.Name),
		zap.Int("steps", len(res.Entries)),
		zap.Int("failures", res.Failures))
	return res, nil
}

func (r *Runner) step(fx *fixture, n int, st Step) Entry {
	e := Entry{Step: n, Op: st.Op(), Member: st.Member()}

	obj, err := fx.owner(st.On)
	if err != nil {
		e.Err = err.Error()
		e.Failure = "owner unavailable"
		return e
	}
	e.Owner = obj.String()

	var opErr error
	switch e.Op {
	case "get":
		e.Value, opErr = obj.Get(st.Get)
	case "set":
		var v any
		if v, opErr = decodeNode(st.Value); opErr == nil {
			e.Input = v
			opErr = obj.Set(st.Set, v)
		}
		if opErr == nil && present(st.Expect) {
			e.Value, opErr = obj.Get(st.Set)
		}
	case "keys":
		e.Keys = obj.Keys()
	}
	if opErr != nil {
		e.Err = opErr.Error()
	}

	e.Failure = check(st, e, opErr)
	return e
}

// check returns why the step's outcome does not match its expectations, or
// the empty string when it does.
func check(st Step, e Entry, err error) string {
	if st.ExpectError != "" {
		if err == nil {
			return fmt.Sprintf("expected error %q, got none", st.ExpectError)
		}
		if !matchError(st.ExpectError, err) {
			return fmt.Sprintf("expected error %q, got %q", st.ExpectError, err.Error())
		}
		return ""
	}
	if err != nil {
		return "unexpected error"
	}
	if !present(st.Expect) {
		return ""
	}

	want, derr := decodeNode(st.Expect)
	if derr != nil {
		return fmt.Sprintf("bad expect: %s", derr)
	}
	if e.Op == "keys" {
		return checkKeys(want, e.Keys)
	}
	if !decorators.Equal(want, e.Value) {
		return fmt.Sprintf("expected %v, got %v", want, e.Value)
	}
	return ""
}

func checkKeys(want any, got []string) string {
	list, ok := want.([]any)
	if !ok {
		return fmt.Sprintf("expected keys must be a list, got %T", want)
	}
	if len(list) != len(got) {
		return fmt.Sprintf("expected keys %v, got %v", list, got)
	}
	for i := range list {
		if fmt.Sprint(list[i]) != got[i] {
			return fmt.Sprintf("expected keys %v, got %v", list, got)
		}
	}
	return ""
}

func matchError(want string, err error) bool {
	if want == "any" {
		return true
	}
	if target, ok := errorKinds[want]; ok {
		return errors.Is(err, target)
	}
	return strings.Contains(err.Error(), want)
}
