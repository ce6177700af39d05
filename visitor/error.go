package visitor

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNilElement element arg is nil
	ErrNilElement = errors.New("visitor: element is nil")

	// ErrNilOperation operation arg is nil
	ErrNilOperation = errors.New("visitor: operation is nil")

	// ErrUnknownTag tag is not part of the closed element set
	ErrUnknownTag = errors.New("visitor: unknown element tag")

	// ErrElementType handler received an element of a type it does not handle
	ErrElementType = errors.New("visitor: unexpected element type")

	// ErrUnimplemented visit method does not match func(context.Context, E) (R, error)
	ErrUnimplemented = errors.New("visitor: visit method is not func(context.Context, Element) (Result, error)")
)

// MissingHandlerError reports that an operation cannot handle an element variant.
type MissingHandlerError struct {
	Operation string
	Tag       Tag
}

func (e *MissingHandlerError) Error() string {
	return fmt.Sprintf("visitor: operation %q has no handler for %q", e.Operation, e.Tag)
}
