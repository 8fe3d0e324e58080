package cdi

import (
	"go.uber.org/zap"
)

// Option configures a BeanManager, Adapter or CDI.
type Option interface {
	apply(*options)
}

// options holds bridge configuration.
type options struct {
	logger *zap.Logger
}

// optionFunc adapts a function to Option.
type optionFunc func(*options)

func (f optionFunc) apply(opts *options) {
	f(opts)
}

// WithLogger sets the logger used for lookup and adapter diagnostics.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(opts *options) {
		if logger != nil {
			opts.logger = logger
		}
	})
}

func newOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(o)
		}
	}

	return o
}
