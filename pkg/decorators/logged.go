package decorators

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/propdeco/pkg/decorate"
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// Logged records every read and write of a member at info level. Members
// are normalized first, so literal and lazy members are logged too. A write
// to a member without a setter is logged and otherwise ignored; a read of a
// member without a getter is logged as nil.
var Logged = decorate.EnsureAccessors(func(log *zap.Logger) decorate.Decorator {
	if log == nil {
		log = zap.NewNop()
	}

	return func(d types.Descriptor) (types.Descriptor, error) {
		get, set, name := d.Get, d.Set, d.Name

		d.Get = func(owner types.Owner) (any, error) {
			var v any
			if get != nil {
				var err error
				if v, err = get(owner); err != nil {
					return nil, err
				}
			}
			log.Info("get",
				zap.String("member", name),
				zap.String("owner", types.DescribeOwner(owner)),
				zap.Any("value", v))
			return v, nil
		}

		d.Set = func(owner types.Owner, v any) error {
			log.Info("set",
				zap.String("member", name),
				zap.String("owner", types.DescribeOwner(owner)),
				zap.Any("value", v))
			if set == nil {
				return nil
			}
			return set(owner, v)
		}

		return d, nil
	}
})
