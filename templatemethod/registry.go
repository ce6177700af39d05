package templatemethod

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Registry keeps the executors of every variant registered against one skeleton.
type Registry[V any] struct {
	skeleton  *Skeleton[V]
	executors sync.Map
}

// NewRegistry returns an empty registry for skeleton.
func NewRegistry[V any](skeleton *Skeleton[V]) *Registry[V] {
	return &Registry[V]{skeleton: skeleton}
}

// Register binds a variant and stores its executor under name.
// A variant with unbound steps is rejected with an UnboundStepError and is not stored.
func (r *Registry[V]) Register(name string, bindings Bindings[V]) error {
	executor, err := r.skeleton.Bind(name, bindings)
	if err != nil {
		return err
	}
	if _, loaded := r.executors.LoadOrStore(name, executor); loaded {
		return errors.Wrapf(ErrRegistered, "variant %q", name)
	}
	return nil
}

// Executor returns the executor registered under name.
func (r *Registry[V]) Executor(name string) (*Executor[V], error) {
	value, ok := r.executors.Load(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnregistered, "variant %q", name)
	}
	return value.(*Executor[V]), nil
}

// Execute runs the variant registered under name.
func (r *Registry[V]) Execute(ctx context.Context, name string, v V) ([]Fragment, error) {
	executor, err := r.Executor(name)
	if err != nil {
		return nil, err
	}
	return executor.Execute(ctx, v)
}

// Names returns the registered variant names, sorted.
func (r *Registry[V]) Names() []string {
	var names []string
	r.executors.Range(func(key, _ any) bool {
		names = append(names, key.(string))
		return true
	})
	sort.Strings(names)
	return names
}
