package host

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/propdeco/pkg/decorate"
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// table is an installed member set. It is immutable once built, so owners
// sharing it may read and write concurrently.
type table struct {
	byName map[string]types.Descriptor
	order  []string
}

// checkNames rejects empty and duplicate names among decls.
func checkNames(seen map[string]bool, decls []Declaration) error {
	for _, decl := range decls {
		name := decl.Name()
		if name == "" {
			return ErrInvalidName
		}
		if seen[name] {
			return fmt.Errorf("%q: %w", name, ErrDuplicateMember)
		}
		seen[name] = true
	}
	return nil
}

// install decorates every declaration once and normalizes whatever is still
// data kind afterwards.
func install(decls []Declaration, log *zap.Logger) (*table, error) {
	t := &table{byName: make(map[string]types.Descriptor, len(decls))}

	for _, decl := range decls {
		d := decl.Descriptor
		if d.Token.IsZero() {
			d.Token = types.NewToken()
		}

		final, err := decorate.Apply(d, decl.Decorators...)
		if err != nil {
			return nil, err
		}
		if final.Kind() == types.KindData {
			if final, err = decorate.Normalize(final); err != nil {
				return nil, fmt.Errorf("install %q: %w", d.Name, err)
			}
		}

		t.byName[d.Name] = final
		t.order = append(t.order, d.Name)

		log.Debug("member installed",
			zap.String("member", d.Name),
			zap.Stringer("token", d.Token),
			zap.Int("decorators", len(decl.Decorators)),
			zap.Bool("readable", final.Get != nil),
			zap.Bool("writable", final.Set != nil),
		)
	}
	return t, nil
}

func (t *table) lookup(name string) (types.Descriptor, bool) {
	d, ok := t.byName[name]
	return d, ok
}
