package host

import "go.uber.org/zap"

// Option configures a Class or an object literal.
type Option func(*options)

type options struct {
	logger *zap.Logger
	label  string
}

// WithLogger sets the logger used for install, read, and write events.
// Events are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLabel sets the owner label used in diagnostics for an object literal.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), label: "object"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
