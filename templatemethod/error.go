package templatemethod

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNoSteps skeleton defined without any step
	ErrNoSteps = errors.New("templatemethod: skeleton has no steps")

	// ErrEmptyStep step defined with an empty id
	ErrEmptyStep = errors.New("templatemethod: empty step id")

	// ErrDuplicateStep step id used twice in one skeleton
	ErrDuplicateStep = errors.New("templatemethod: duplicate step")

	// ErrNilAction fixed step defined without an action
	ErrNilAction = errors.New("templatemethod: fixed step has no action")

	// ErrFixedStep a variant tried to bind a fixed step
	ErrFixedStep = errors.New("templatemethod: fixed step cannot be bound")

	// ErrUnknownStep step id is not part of the skeleton
	ErrUnknownStep = errors.New("templatemethod: unknown step")

	// ErrRegistered variant name already registered
	ErrRegistered = errors.New("templatemethod: variant registered")

	// ErrUnregistered variant name not registered
	ErrUnregistered = errors.New("templatemethod: variant unregistered")
)

// UnboundStepError reports the variable steps a variant left without a binding.
// It is returned when the variant is bound, never while executing.
type UnboundStepError struct {
	Skeleton string
	Variant  string
	Steps    []StepID
}

func (e *UnboundStepError) Error() string {
	steps := make([]string, 0, len(e.Steps))
	for _, step := range e.Steps {
		steps = append(steps, string(step))
	}
	return fmt.Sprintf("templatemethod: variant %q of skeleton %q leaves steps unbound: %s",
		e.Variant, e.Skeleton, strings.Join(steps, ", "))
}
