package scenario

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/mesh-intelligence/propdeco/pkg/host"
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// Inspection describes the members a scenario installs.
type Inspection struct {
	Scenario string
	Target   string
	Members  []MemberInfo
}

// MemberInfo describes one installed member and the chain that built it.
type MemberInfo struct {
	Name         string
	Static       bool
	Declared     string // Member kind as written.
	Installed    string // Descriptor kind after decoration.
	Enumerable   bool
	Configurable bool
	HasGetter    bool
	HasSetter    bool
	Token        string
	Decorators   []Ref // Farthest first.
}

// Inspect builds the scenario's owners without running any step and reports
// the installed descriptor of every member.
func (r *Runner) Inspect(s *Scenario) (*Inspection, error) {
	fx, err := r.build(s)
	if err != nil {
		return nil, err
	}

	in := &Inspection{Scenario: s.Name, Target: s.Target}
	for _, m := range s.Members {
		obj, err := inspectOwner(fx, m.Static)
		if err != nil {
			return nil, err
		}
		d, ok := obj.Descriptor(m.Name)
		if !ok {
			return nil, fmt.Errorf("member %q: %w", m.Name, host.ErrMemberNotFound)
		}
		in.Members = append(in.Members, describe(m, d))
	}
	return in, nil
}

// inspectOwner returns an owner holding the member table: the object, the
// class's static owner, or a class prototype instance. Descriptors are
// shared, so the instance is never read from.
func inspectOwner(fx *fixture, static bool) (*host.Object, error) {
	if fx.object != nil {
		return fx.object, nil
	}
	if static {
		return fx.class.Static()
	}
	return fx.owner(DefaultOwner)
}

func describe(m Member, d types.Descriptor) MemberInfo {
	info := MemberInfo{
		Name:         m.Name,
		Static:       m.Static,
		Declared:     m.Kind,
		Installed:    d.Kind().String(),
		Enumerable:   d.Enumerable,
		Configurable: d.Configurable,
		HasGetter:    d.Get != nil,
		HasSetter:    d.Set != nil,
		Decorators:   m.Decorators,
	}
	if !d.Token.IsZero() {
		info.Token = d.Token.String()
	}
	return info
}

// Dump writes in with go-spew. Tokens are random per run, so callers that
// compare dumps should clear them first.
func Dump(w io.Writer, in *Inspection) {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	cfg.Fdump(w, in)
}
