package visitor

import (
	"context"
	"sync"

	"github.com/go-leo/gox/syncx"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/go-leo/behavior/variant"
)

// Dispatch routes e to op's handler for e's tag and returns the handler's result.
// It fails with a MissingHandlerError when op does not cover the tag.
func Dispatch[R any](ctx context.Context, e Element, op *Operation[R]) (R, error) {
	var r R
	if IsNil(e) {
		return r, ErrNilElement
	}
	if op == nil {
		return r, ErrNilOperation
	}
	handler, ok := op.handlers[e.Tag()]
	if !ok {
		return r, &MissingHandlerError{Operation: op.name, Tag: e.Tag()}
	}
	return handler(ctx, e)
}

// Dispatcher dispatches over a closed set of element tags.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher[R any] struct {
	tags        *variant.Set[Tag]
	options     *options
	middlewares []HandlerMiddleware[R]
}

// NewDispatcher returns a dispatcher for the closed set tags. A nil set contains no tag:
// every element is rejected with ErrUnknownTag and every handler reported as foreign.
func NewDispatcher[R any](tags *variant.Set[Tag], opts ...Option) *Dispatcher[R] {
	return &Dispatcher[R]{tags: tags, options: newOptions(opts...)}
}

// Use returns a copy of the dispatcher whose handlers are wrapped by middlewares,
// after any middleware already in use.
func (d *Dispatcher[R]) Use(middlewares ...HandlerMiddleware[R]) *Dispatcher[R] {
	chained := make([]HandlerMiddleware[R], 0, len(d.middlewares)+len(middlewares))
	chained = append(chained, d.middlewares...)
	chained = append(chained, middlewares...)
	return &Dispatcher[R]{tags: d.tags, options: d.options, middlewares: chained}
}

// Tags returns the closed set the dispatcher serves.
func (d *Dispatcher[R]) Tags() *variant.Set[Tag] {
	return d.tags
}

// Validate checks op against the closed set before anything is dispatched. Every uncovered tag
// yields a MissingHandlerError, every handler for a foreign tag an ErrUnknownTag; all of them
// are combined into the returned error.
func (d *Dispatcher[R]) Validate(op *Operation[R]) error {
	if op == nil {
		return ErrNilOperation
	}
	var err error
	for _, tag := range d.tags.Missing(func(tag Tag) bool { _, ok := op.handlers[tag]; return ok }) {
		err = multierr.Append(err, &MissingHandlerError{Operation: op.name, Tag: tag})
	}
	for _, tag := range d.tags.Unknown(op.Tags()) {
		err = multierr.Append(err, errors.Wrapf(ErrUnknownTag, "operation %q handles %q", op.name, tag))
	}
	if err != nil {
		d.options.Logger.Error(err, "operation rejected", "operation", op.name)
	}
	return err
}

// Dispatch routes e to op. Elements outside the closed set fail with ErrUnknownTag, a tag op does
// not cover with a MissingHandlerError. Handler errors are returned wrapped with the operation and tag.
func (d *Dispatcher[R]) Dispatch(ctx context.Context, e Element, op *Operation[R]) (R, error) {
	var r R
	if IsNil(e) {
		return r, ErrNilElement
	}
	if op == nil {
		return r, ErrNilOperation
	}
	tag := e.Tag()
	if !d.tags.Contains(tag) {
		return r, errors.Wrapf(ErrUnknownTag, "element %T tagged %q", e, tag)
	}
	handler, ok := op.handlers[tag]
	if !ok {
		err := &MissingHandlerError{Operation: op.name, Tag: tag}
		d.options.Logger.Error(err, "dispatch failed")
		return r, err
	}
	logger := d.options.Logger
	if logger.V(1).Enabled() {
		logger = logger.WithValues("operation", op.name, "tag", tag, "run", uuid.NewString())
	}
	logger.V(1).Info("dispatch")
	r, err := ChainHandler(op.name, tag, handler, d.middlewares...)(ctx, e)
	if err != nil {
		return r, errors.Wrapf(err, "visitor: operation %q, tag %q", op.name, tag)
	}
	return r, nil
}

// DispatchAll dispatches every element in order. The first failure aborts and no result is returned.
func (d *Dispatcher[R]) DispatchAll(ctx context.Context, elements []Element, op *Operation[R]) ([]R, error) {
	results := make([]R, 0, len(elements))
	for i, e := range elements {
		r, err := d.Dispatch(ctx, e, op)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		results = append(results, r)
	}
	return results, nil
}

// AsyncDispatchAll dispatches every element on the configured pool and waits for all of them.
// Results keep the element order. If any dispatch fails, every failure is returned combined and
// no result is returned. Handlers must be safe for concurrent use.
func (d *Dispatcher[R]) AsyncDispatchAll(ctx context.Context, elements []Element, op *Operation[R]) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([]R, len(elements))
	errs := make([]error, len(elements))
	var wg sync.WaitGroup
	for i, e := range elements {
		i, e := i, e
		wg.Add(1)
		if err := d.options.Pool.Go(func() {
			defer wg.Done()
			results[i], errs[i] = d.Dispatch(ctx, e, op)
		}); err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-syncx.WaitNotify(&wg):
	}
	var err error
	for i, e := range errs {
		if e != nil {
			err = multierr.Append(err, errors.Wrapf(e, "element %d", i))
		}
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}
