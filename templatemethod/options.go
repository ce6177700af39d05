package templatemethod

import "github.com/go-logr/logr"

type options struct {
	Logger logr.Logger
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) correct() *options {
	if o.Logger.GetSink() == nil {
		o.Logger = logr.Discard()
	}
	return o
}

func newOptions(opts ...Option) *options {
	return new(options).apply(opts...).correct()
}

type Option func(o *options)

// Logger sets the logger used to trace binding and execution. Tracing happens at V(1).
func Logger(logger logr.Logger) Option {
	return func(o *options) {
		o.Logger = logger
	}
}
