package templatemethod

import "context"

// Binding renders one variable step for a variant value.
type Binding[V any] func(ctx context.Context, v V, arg Arg) (string, error)

// Bindings maps variable steps to the behaviour a variant supplies for them.
type Bindings[V any] map[StepID]Binding[V]

// Text is a Binding that always renders s.
func Text[V any](s string) Binding[V] {
	return func(context.Context, V, Arg) (string, error) {
		return s, nil
	}
}

// Render adapts a function that cannot fail to a Binding.
func Render[V any](f func(v V, arg Arg) string) Binding[V] {
	return func(_ context.Context, v V, arg Arg) (string, error) {
		return f(v, arg), nil
	}
}

// Decorate returns a copy of bindings with every binding wrapped by middlewares.
func (b Bindings[V]) Decorate(middlewares ...BindingMiddleware[V]) Bindings[V] {
	decorated := make(Bindings[V], len(b))
	for step, binding := range b {
		if binding == nil {
			decorated[step] = nil
			continue
		}
		decorated[step] = ChainBinding(step, binding, middlewares...)
	}
	return decorated
}

// BindingMiddleware allows us to write something like decorators to Binding.
// It can execute something before rendering or after.
type BindingMiddleware[V any] interface {
	// Decorate wraps the binding of step, adding some functionality.
	Decorate(step StepID, binding Binding[V]) Binding[V]
}

// The BindingMiddlewareFunc type is an adapter to allow the use of ordinary functions as BindingMiddleware.
type BindingMiddlewareFunc[V any] func(step StepID, binding Binding[V]) Binding[V]

// Decorate calls f(step, binding).
func (f BindingMiddlewareFunc[V]) Decorate(step StepID, binding Binding[V]) Binding[V] {
	return f(step, binding)
}

// ChainBinding decorates the given Binding with all middlewares, the first middleware being the outermost.
func ChainBinding[V any](step StepID, binding Binding[V], middlewares ...BindingMiddleware[V]) Binding[V] {
	chain := binding
	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i].Decorate(step, chain)
	}
	return chain
}
