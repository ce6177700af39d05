package visitor

import (
	"context"
	"reflect"

	"github.com/pkg/errors"
)

// Tag identifies one variant of a closed element set.
type Tag string

func (t Tag) String() string {
	return string(t)
}

// Element is one value of a closed set of variants. It carries no behaviour beyond naming its variant.
type Element interface {
	Tag() Tag
}

// Handler turns one element into the result of an operation.
type Handler[R any] func(ctx context.Context, e Element) (R, error)

// HandlerOf adapts a function over a concrete element type to a Handler.
// The Handler fails with ErrElementType if it receives any other type.
func HandlerOf[E Element, R any](f func(ctx context.Context, e E) (R, error)) Handler[R] {
	return func(ctx context.Context, e Element) (R, error) {
		concrete, ok := e.(E)
		if !ok {
			var zero R
			return zero, errors.Wrapf(ErrElementType, "want %T, got %T", *new(E), e)
		}
		return f(ctx, concrete)
	}
}

// HandlerMiddleware allows us to write something like decorators to Handler.
// It can execute something before handling or after.
type HandlerMiddleware[R any] interface {
	// Decorate wraps the handler of tag, adding some functionality.
	Decorate(op string, tag Tag, handler Handler[R]) Handler[R]
}

// The HandlerMiddlewareFunc type is an adapter to allow the use of ordinary functions as HandlerMiddleware.
type HandlerMiddlewareFunc[R any] func(op string, tag Tag, handler Handler[R]) Handler[R]

// Decorate calls f(op, tag, handler).
func (f HandlerMiddlewareFunc[R]) Decorate(op string, tag Tag, handler Handler[R]) Handler[R] {
	return f(op, tag, handler)
}

// ChainHandler decorates the given Handler with all middlewares, the first middleware being the outermost.
func ChainHandler[R any](op string, tag Tag, handler Handler[R], middlewares ...HandlerMiddleware[R]) Handler[R] {
	chain := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i].Decorate(op, tag, chain)
	}
	return chain
}

// IsNil reports whether e is nil or a nil pointer, map, slice, func, interface or channel.
func IsNil(e Element) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
