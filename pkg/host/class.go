package host

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Class is a named set of member declarations. Decorators run once per
// declaration when the class is built; every instance shares the decorated
// members and keeps its own memo slots. Static members live on a single
// class-level owner returned by Static.
type Class struct {
	name string
	log  *zap.Logger

	mu          sync.Mutex
	decls       []Declaration
	names       map[string]bool
	staticNames map[string]bool
	built       bool
	buildErr    error
	proto       *table
	static      *Object
	instances   int
}

// NewClass returns an empty class called name.
func NewClass(name string, opts ...Option) *Class {
	o := newOptions(opts)
	return &Class{
		name:        name,
		log:         o.logger.With(zap.String("class", name)),
		names:       make(map[string]bool),
		staticNames: make(map[string]bool),
	}
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Declare adds member declarations. Names must be unique among instance
// members and, separately, among static members. Declaring after the class
// is built fails with ErrSealed.
func (c *Class) Declare(decls ...Declaration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.built {
		return ErrSealed
	}

	var inst, stat []Declaration
	for _, d := range decls {
		if d.Static {
			stat = append(stat, d)
		} else {
			inst = append(inst, d)
		}
	}

	// Validate against copies so a failed Declare leaves the class unchanged.
	names := copySet(c.names)
	staticNames := copySet(c.staticNames)
	if err := checkNames(names, inst); err != nil {
		return fmt.Errorf("class %s: %w", c.name, err)
	}
	if err := checkNames(staticNames, stat); err != nil {
		return fmt.Errorf("class %s: static %w", c.name, err)
	}

	c.names, c.staticNames = names, staticNames
	c.decls = append(c.decls, decls...)
	return nil
}

// Declarations returns a copy of the declarations in declaration order.
func (c *Class) Declarations() []Declaration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Declaration(nil), c.decls...)
}

// Build decorates every declaration and installs static members. It runs
// once, successful or not; later calls return the first result.
func (c *Class) Build() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buildLocked()
}

func (c *Class) buildLocked() error {
	if c.built {
		return c.buildErr
	}
	c.built = true
	c.buildErr = c.build()
	return c.buildErr
}

func (c *Class) build() error {
	var inst, stat []Declaration
	for _, d := range c.decls {
		if d.Static {
			stat = append(stat, d)
		} else {
			inst = append(inst, d)
		}
	}

	proto, err := install(inst, c.log)
	if err != nil {
		return fmt.Errorf("class %s: %w", c.name, err)
	}
	statics, err := install(stat, c.log)
	if err != nil {
		return fmt.Errorf("class %s: %w", c.name, err)
	}

	c.proto = proto
	c.static = newObject(c.name, statics, c.log)
	c.log.Debug("class built", zap.Int("members", len(inst)), zap.Int("static_members", len(stat)))
	return nil
}

// New builds the class if needed and returns a fresh instance.
func (c *Class) New() (*Object, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.buildLocked(); err != nil {
		return nil, err
	}
	c.instances++
	return newObject(fmt.Sprintf("%s#%d", c.name, c.instances), c.proto, c.log), nil
}

// Static builds the class if needed and returns the owner of its static
// members.
func (c *Class) Static() (*Object, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.buildLocked(); err != nil {
		return nil, err
	}
	return c.static, nil
}

func copySet(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
