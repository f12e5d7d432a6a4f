// Package scenario loads YAML scenario files that declare decorated members
// and a sequence of reads and writes, and runs them against the host.
package scenario

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// Targets a scenario can declare its members on.
const (
	TargetObject = "object"
	TargetClass  = "class"
)

// Member kinds.
const (
	KindField    = "field"
	KindLazy     = "lazy"
	KindAccessor = "accessor"
	KindGetter   = "getter"
)

// OwnerStatic names the static owner of a class in a step's "on" field.
const OwnerStatic = "static"

// ErrInvalidScenario is returned for scenario files that parse but do not
// describe a runnable scenario.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is one parsed scenario file.
type Scenario struct {
	Name    string     `yaml:"name"`
	Target  string     `yaml:"target"`
	Mode    types.Mode `yaml:"mode"`
	Members []Member   `yaml:"members"`
	Steps   []Step     `yaml:"steps"`
}

// Member declares one member. Value is left zero when the key is absent.
type Member struct {
	Name       string    `yaml:"name"`
	Kind       string    `yaml:"kind"`
	Value      yaml.Node `yaml:"value"`
	Static     bool      `yaml:"static"`
	ReadOnly   bool      `yaml:"readonly"`
	Hidden     bool      `yaml:"hidden"`
	Decorators []Ref     `yaml:"decorators"`
}

// Ref names a registered decorator. Refs are listed farthest first.
type Ref struct {
	Name string     `yaml:"name"`
	Mode types.Mode `yaml:"mode,omitempty"`
	Args []any      `yaml:"args,omitempty"`
}

// Step is one operation. Exactly one of Get, Set, and Keys is given.
type Step struct {
	Get         string    `yaml:"get"`
	Set         string    `yaml:"set"`
	Keys        bool      `yaml:"keys"`
	On          string    `yaml:"on"`
	Value       yaml.Node `yaml:"value"`
	Expect      yaml.Node `yaml:"expect"`
	ExpectError string    `yaml:"expect_error"`
}

// Op returns the step's operation name.
func (s Step) Op() string {
	switch {
	case s.Get != "":
		return "get"
	case s.Set != "":
		return "set"
	case s.Keys:
		return "keys"
	default:
		return ""
	}
}

// Member returns the member the step addresses, empty for keys.
func (s Step) Member() string {
	if s.Get != "" {
		return s.Get
	}
	return s.Set
}

// HasValue reports whether the member declares an initial value.
func (m Member) HasValue() bool { return present(m.Value) }

// InitialValue decodes the member's value.
func (m Member) InitialValue() (any, error) { return decodeNode(m.Value) }

// Validate checks the scenario for structural errors. Problems are reported
// together, each wrapped in ErrInvalidScenario.
func (s *Scenario) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if s.Target != TargetObject && s.Target != TargetClass {
		add("target %q is not %q or %q", s.Target, TargetObject, TargetClass)
	}
	if !types.ValidMode(s.Mode) {
		add("mode %q is not loose or strict", s.Mode)
	}

	declared := map[bool]map[string]bool{false: {}, true: {}}
	for i, m := range s.Members {
		switch {
		case m.Name == "":
			add("member %d has no name", i)
			continue
		case declared[m.Static][m.Name]:
			add("member %q declared twice", m.Name)
		}
		declared[m.Static][m.Name] = true

		if m.Static && s.Target != TargetClass {
			add("member %q is static but target is %q", m.Name, s.Target)
		}
		switch m.Kind {
		case KindField, KindLazy:
		case KindAccessor, KindGetter:
			if m.ReadOnly {
				add("member %q: readonly applies to fields only", m.Name)
			}
		default:
			add("member %q has unknown kind %q", m.Name, m.Kind)
		}
		for j, r := range m.Decorators {
			if r.Name == "" {
				add("member %q decorator %d has no name", m.Name, j)
			}
			if !types.ValidMode(r.Mode) {
				add("member %q decorator %q has mode %q", m.Name, r.Name, r.Mode)
			}
		}
	}

	for i, st := range s.Steps {
		n := 0
		for _, set := range []bool{st.Get != "", st.Set != "", st.Keys} {
			if set {
				n++
			}
		}
		if n != 1 {
			add("step %d needs exactly one of get, set, keys", i+1)
			continue
		}
		if st.On != "" && s.Target != TargetClass {
			add("step %d: %q names an owner but an object has only itself", i+1, st.On)
		}
		if st.Set != "" && !present(st.Value) {
			add("step %d: set %q needs a value", i+1, st.Set)
		}
		if st.Keys && st.ExpectError != "" {
			add("step %d: keys never fails", i+1)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidScenario, strings.Join(problems, "; "))
	}
	return nil
}

func present(n yaml.Node) bool {
	return n.Kind != 0
}

func decodeNode(n yaml.Node) (any, error) {
	if !present(n) {
		return nil, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
