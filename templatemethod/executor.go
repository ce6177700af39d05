package templatemethod

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Executor runs a skeleton with the bindings of one variant.
// It keeps no state between runs and is safe for concurrent use if the bindings are.
type Executor[V any] struct {
	skeleton *Skeleton[V]
	variant  string
	bindings Bindings[V]
	logger   logr.Logger
}

// Variant returns the name the executor was bound with.
func (e *Executor[V]) Variant() string {
	return e.variant
}

// Skeleton returns the skeleton the executor runs.
func (e *Executor[V]) Skeleton() *Skeleton[V] {
	return e.skeleton
}

// Execute runs every step in skeleton order and returns the rendered fragments.
// When a binding or fixed action fails, no fragment is returned.
func (e *Executor[V]) Execute(ctx context.Context, v V) ([]Fragment, error) {
	logger := e.logger
	if logger.V(1).Enabled() {
		logger = logger.WithValues("skeleton", e.skeleton.name, "variant", e.variant, "run", uuid.NewString())
	}
	frame := &Frame[V]{executor: e, variant: v, logger: logger}
	for _, step := range e.skeleton.steps {
		frame.step = step.ID
		switch step.Kind {
		case VariableStep:
			if err := frame.call(ctx, step.ID, Arg{}); err != nil {
				return nil, err
			}
		case FixedStep:
			logger.V(2).Info("fixed step", "step", step.ID)
			if err := step.Action(ctx, frame); err != nil {
				return nil, errors.Wrapf(err, "templatemethod: variant %q, fixed step %q", e.variant, step.ID)
			}
		}
	}
	logger.V(1).Info("executed", "fragments", len(frame.fragments))
	return frame.fragments, nil
}

// Frame is what a fixed action sees of the running execution.
type Frame[V any] struct {
	executor  *Executor[V]
	variant   V
	step      StepID
	fragments []Fragment
	logger    logr.Logger
}

// Variant returns the value being rendered.
func (f *Frame[V]) Variant() V {
	return f.variant
}

// Step returns the fixed step currently running.
func (f *Frame[V]) Step() StepID {
	return f.step
}

// Emit appends a fragment produced by the fixed step itself.
func (f *Frame[V]) Emit(text string) {
	f.fragments = append(f.fragments, Fragment{Step: f.step, Text: text})
}

// Invoke renders hook with the variant's binding and appends the result.
func (f *Frame[V]) Invoke(ctx context.Context, hook StepID, arg Arg) error {
	kind, ok := f.executor.skeleton.Kind(hook)
	if !ok || kind != HookStep {
		return errors.Wrapf(ErrUnknownStep, "fixed step %q invokes %q, which is not a hook", f.step, hook)
	}
	return f.call(ctx, hook, arg)
}

func (f *Frame[V]) call(ctx context.Context, id StepID, arg Arg) error {
	text, err := f.executor.bindings[id](ctx, f.variant, arg)
	if err != nil {
		return errors.Wrapf(err, "templatemethod: variant %q, step %q", f.executor.variant, id)
	}
	f.logger.V(2).Info("step rendered", "step", id, "index", arg.Index)
	f.fragments = append(f.fragments, Fragment{Step: id, Text: text})
	return nil
}
