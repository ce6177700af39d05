package templatemethod

import "context"

// StepID names one stage of an algorithm skeleton.
type StepID string

func (id StepID) String() string {
	return string(id)
}

// StepKind tells who supplies the behaviour of a step.
type StepKind int

const (
	// FixedStep runs an action owned by the skeleton. Variants cannot override it.
	FixedStep StepKind = iota + 1
	// VariableStep runs the binding supplied by the variant, in skeleton order.
	VariableStep
	// HookStep is a variable step outside the skeleton order, invoked by fixed steps only.
	HookStep
)

func (k StepKind) String() string {
	switch k {
	case FixedStep:
		return "fixed"
	case VariableStep:
		return "variable"
	case HookStep:
		return "hook"
	default:
		return "unknown"
	}
}

// Step is one entry of a skeleton definition.
type Step[V any] struct {
	ID     StepID
	Kind   StepKind
	Action FixedAction[V]
}

// Fixed defines a non-overridable step.
func Fixed[V any](id StepID, action FixedAction[V]) Step[V] {
	return Step[V]{ID: id, Kind: FixedStep, Action: action}
}

// Variable defines a step every variant must bind.
func Variable[V any](id StepID) Step[V] {
	return Step[V]{ID: id, Kind: VariableStep}
}

// Hook defines a binding every variant must supply that fixed steps invoke through Frame.Invoke.
func Hook[V any](id StepID) Step[V] {
	return Step[V]{ID: id, Kind: HookStep}
}

// FixedAction is the built-in behaviour of a fixed step.
type FixedAction[V any] func(ctx context.Context, frame *Frame[V]) error

// Arg is the input handed to a binding. Variable steps get the zero Arg,
// hooks get whatever the invoking fixed step passes.
type Arg struct {
	// Index is the position of Value among the items a fixed step iterates.
	Index int
	// Total is the number of items the fixed step iterates.
	Total int
	// Value is the item itself, e.g. one body line.
	Value string
}

// Last reports whether the arg is the final item of its iteration.
func (a Arg) Last() bool {
	return a.Index == a.Total-1
}

// Fragment is one piece of rendered output together with the step that produced it.
type Fragment struct {
	Step StepID
	Text string
}

// Texts strips the step ids off fragments.
func Texts(fragments []Fragment) []string {
	texts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		texts = append(texts, fragment.Text)
	}
	return texts
}

// Each returns a fixed action that invokes hook once per item, preserving order.
// No hook is invoked when items returns an empty slice.
func Each[V any](hook StepID, items func(v V) []string) FixedAction[V] {
	return func(ctx context.Context, frame *Frame[V]) error {
		values := items(frame.Variant())
		for i, value := range values {
			if err := frame.Invoke(ctx, hook, Arg{Index: i, Total: len(values), Value: value}); err != nil {
				return err
			}
		}
		return nil
	}
}
