package templatemethod

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Skeleton fixes the order of an algorithm's steps and which of them variants must supply.
// A Skeleton is immutable and safe for concurrent use.
type Skeleton[V any] struct {
	name    string
	steps   []Step[V]
	index   map[StepID]Step[V]
	options *options
}

// NewSkeleton defines a skeleton. Fixed and Variable steps run in the order given;
// Hook steps may appear anywhere and only declare a binding variants must supply.
// All definition defects are reported together.
func NewSkeleton[V any](name string, steps []Step[V], opts ...Option) (*Skeleton[V], error) {
	if len(steps) == 0 {
		return nil, errors.Wrapf(ErrNoSteps, "skeleton %q", name)
	}
	s := &Skeleton[V]{
		name:    name,
		index:   make(map[StepID]Step[V], len(steps)),
		options: newOptions(opts...),
	}
	var err error
	for _, step := range steps {
		if step.ID == "" {
			err = multierr.Append(err, errors.Wrapf(ErrEmptyStep, "skeleton %q", name))
			continue
		}
		if _, ok := s.index[step.ID]; ok {
			err = multierr.Append(err, errors.Wrapf(ErrDuplicateStep, "skeleton %q, step %q", name, step.ID))
			continue
		}
		if step.Kind == FixedStep && step.Action == nil {
			err = multierr.Append(err, errors.Wrapf(ErrNilAction, "skeleton %q, step %q", name, step.ID))
			continue
		}
		if step.Kind != FixedStep && step.Kind != VariableStep && step.Kind != HookStep {
			err = multierr.Append(err, errors.Errorf("templatemethod: skeleton %q, step %q has kind %s", name, step.ID, step.Kind))
			continue
		}
		s.index[step.ID] = step
		s.steps = append(s.steps, step)
	}
	if err != nil {
		return nil, err
	}
	if len(s.Order()) == 0 {
		return nil, errors.Wrapf(ErrNoSteps, "skeleton %q defines hooks only", name)
	}
	return s, nil
}

// Name returns the skeleton name.
func (s *Skeleton[V]) Name() string {
	return s.name
}

// Order returns the ids of the fixed and variable steps in execution order.
func (s *Skeleton[V]) Order() []StepID {
	order := make([]StepID, 0, len(s.steps))
	for _, step := range s.steps {
		if step.Kind == HookStep {
			continue
		}
		order = append(order, step.ID)
	}
	return order
}

// VariableSteps returns every step a variant has to bind: variable steps in execution order,
// then hooks in definition order.
func (s *Skeleton[V]) VariableSteps() []StepID {
	var variables, hooks []StepID
	for _, step := range s.steps {
		switch step.Kind {
		case VariableStep:
			variables = append(variables, step.ID)
		case HookStep:
			hooks = append(hooks, step.ID)
		}
	}
	return append(variables, hooks...)
}

// Kind returns the kind of step id.
func (s *Skeleton[V]) Kind(id StepID) (StepKind, bool) {
	step, ok := s.index[id]
	return step.Kind, ok
}

// Bind checks that bindings cover every variable step of the skeleton and returns an Executor
// for the variant. The check is eager: a defective variant never gets an Executor, so it can
// never emit partial output.
func (s *Skeleton[V]) Bind(variant string, bindings Bindings[V]) (*Executor[V], error) {
	ids := maps.Keys(bindings)
	slices.Sort(ids)
	for _, id := range ids {
		step, ok := s.index[id]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownStep, "variant %q binds %q", variant, id)
		}
		if step.Kind == FixedStep {
			return nil, errors.Wrapf(ErrFixedStep, "variant %q binds %q", variant, id)
		}
	}
	var unbound []StepID
	for _, id := range s.VariableSteps() {
		if bindings[id] == nil {
			unbound = append(unbound, id)
		}
	}
	if len(unbound) > 0 {
		return nil, &UnboundStepError{Skeleton: s.name, Variant: variant, Steps: unbound}
	}
	bound := make(Bindings[V], len(bindings))
	for id, binding := range bindings {
		bound[id] = binding
	}
	s.options.Logger.V(1).Info("variant bound", "skeleton", s.name, "variant", variant, "steps", len(s.steps))
	return &Executor[V]{skeleton: s, variant: variant, bindings: bound, logger: s.options.Logger}, nil
}
