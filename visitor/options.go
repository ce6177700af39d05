package visitor

import (
	"github.com/go-leo/gox/syncx/gopher"
	"github.com/go-leo/gox/syncx/gopher/sample"
	"github.com/go-logr/logr"
)

type options struct {
	Logger logr.Logger
	Pool   gopher.Gopher
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
	if o.Pool == nil {
		o.Pool = sample.Gopher{}
	}
	return o
}

func newOptions(opts ...Option) *options {
	return new(options).apply(opts...).correct()
}

type Option func(o *options)

// Logger sets the logger. Rejected operations and missing handlers are logged as errors,
// dispatches at V(1).
func Logger(logger logr.Logger) Option {
	return func(o *options) {
		o.Logger = logger
	}
}

// Pool sets the goroutine pool AsyncDispatchAll runs dispatches on.
func Pool(pool gopher.Gopher) Option {
	return func(o *options) {
		o.Pool = pool
	}
}
