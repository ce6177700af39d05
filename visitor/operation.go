package visitor

import (
	"context"
	"reflect"
	"sort"
	"strings"

	"github.com/go-leo/gox/contextx"
	"github.com/go-leo/gox/errorx"
	"github.com/pkg/errors"
)

// Operation is a named mapping from element tag to handler. Adding an Operation never
// touches the element types; adding an element variant means adding a handler to every Operation.
type Operation[R any] struct {
	name     string
	handlers map[Tag]Handler[R]
}

// NewOperation returns an operation without handlers. Use On to add them.
func NewOperation[R any](name string) *Operation[R] {
	return &Operation[R]{name: name, handlers: make(map[Tag]Handler[R])}
}

// On sets the handler for tag and returns the operation. A nil handler removes the tag.
// On is meant for building an operation before it is shared.
func (op *Operation[R]) On(tag Tag, handler Handler[R]) *Operation[R] {
	if handler == nil {
		delete(op.handlers, tag)
		return op
	}
	op.handlers[tag] = handler
	return op
}

// Name returns the operation name.
func (op *Operation[R]) Name() string {
	return op.name
}

// Handler returns the handler registered for tag.
func (op *Operation[R]) Handler(tag Tag) (Handler[R], bool) {
	handler, ok := op.handlers[tag]
	return handler, ok
}

// Tags returns the tags the operation handles, sorted.
func (op *Operation[R]) Tags() []Tag {
	tags := make([]Tag, 0, len(op.handlers))
	for tag := range op.handlers {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

const visitPrefix = "Visit"

// Reflect builds an operation from the Visit methods of impl. A method VisitHayes is the handler
// for tag "Hayes" and must have the signature func(context.Context, E) (R, error) where E
// implements Element.
func Reflect[R any](name string, impl any) (*Operation[R], error) {
	if impl == nil {
		return nil, ErrNilOperation
	}
	implVal := reflect.ValueOf(impl)
	implType := implVal.Type()
	resultType := reflect.TypeOf((*R)(nil)).Elem()
	elementType := reflect.TypeOf((*Element)(nil)).Elem()
	op := NewOperation[R](name)
	for i := 0; i < implType.NumMethod(); i++ {
		method := implType.Method(i)
		if !strings.HasPrefix(method.Name, visitPrefix) || method.Name == visitPrefix {
			continue
		}
		// receiver, ctx, element
		if method.Type.NumIn() != 3 {
			return nil, errors.Wrapf(ErrUnimplemented, "%s.%s", implType, method.Name)
		}
		if method.Type.In(1) != contextx.ContextType {
			return nil, errors.Wrapf(ErrUnimplemented, "%s.%s", implType, method.Name)
		}
		inType := method.Type.In(2)
		if !inType.Implements(elementType) {
			return nil, errors.Wrapf(ErrUnimplemented, "%s.%s", implType, method.Name)
		}
		if method.Type.NumOut() != 2 {
			return nil, errors.Wrapf(ErrUnimplemented, "%s.%s", implType, method.Name)
		}
		if !method.Type.Out(0).AssignableTo(resultType) {
			return nil, errors.Wrapf(ErrUnimplemented, "%s.%s", implType, method.Name)
		}
		if method.Type.Out(1) != errorx.ErrorType {
			return nil, errors.Wrapf(ErrUnimplemented, "%s.%s", implType, method.Name)
		}
		tag := Tag(strings.TrimPrefix(method.Name, visitPrefix))
		op.On(tag, reflectHandler[R](implVal, method, inType))
	}
	return op, nil
}

func reflectHandler[R any](implVal reflect.Value, method reflect.Method, inType reflect.Type) Handler[R] {
	return func(ctx context.Context, e Element) (R, error) {
		var r R
		elemVal := reflect.ValueOf(e)
		if !elemVal.IsValid() || !elemVal.Type().AssignableTo(inType) {
			return r, errors.Wrapf(ErrElementType, "want %s, got %T", inType, e)
		}
		ctxVal := reflect.ValueOf(ctx)
		if !ctxVal.IsValid() {
			ctxVal = reflect.Zero(contextx.ContextType)
		}
		resultValues := method.Func.Call(
			[]reflect.Value{
				implVal,
				ctxVal,
				elemVal,
			})
		if err := resultValues[1].Interface(); err != nil {
			return r, err.(error)
		}
		if res := resultValues[0].Interface(); res != nil {
			r = res.(R)
		}
		return r, nil
	}
}
