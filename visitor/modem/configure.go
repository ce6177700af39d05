package modem

import (
	"context"
	"fmt"

	"github.com/go-leo/behavior/visitor"
)

var _ ModemVisitor[string] = ConfigureForDos{}

// ConfigureForDos configures every modem for the Dos manufacturer.
type ConfigureForDos struct{}

func (ConfigureForDos) VisitHayes(_ context.Context, e Hayes) (string, error) {
	return configured(e, "Dos"), nil
}

func (ConfigureForDos) VisitZoom(_ context.Context, e Zoom) (string, error) {
	return configured(e, "Dos"), nil
}

func (ConfigureForDos) VisitErnie(_ context.Context, e Ernie) (string, error) {
	return configured(e, "Dos"), nil
}

var _ ModemVisitor[string] = ConfigureForUnix{}

// ConfigureForUnix configures every modem for Unix.
type ConfigureForUnix struct{}

func (ConfigureForUnix) VisitHayes(_ context.Context, e Hayes) (string, error) {
	return configured(e, "Unix"), nil
}

func (ConfigureForUnix) VisitZoom(_ context.Context, e Zoom) (string, error) {
	return configured(e, "Unix"), nil
}

func (ConfigureForUnix) VisitErnie(_ context.Context, e Ernie) (string, error) {
	return configured(e, "Unix"), nil
}

func configured(e visitor.Element, configurator string) string {
	return fmt.Sprintf("%s modem used with %s configurator.", e.Tag(), configurator)
}

const (
	OperationDos  = "dos"
	OperationUnix = "unix"
)

// Operations returns the configurators by name. Dos goes through the generated adapter,
// Unix is discovered from its Visit methods.
func Operations() (map[string]*visitor.Operation[string], error) {
	unix, err := visitor.Reflect[string](OperationUnix, ConfigureForUnix{})
	if err != nil {
		return nil, err
	}
	return map[string]*visitor.Operation[string]{
		OperationDos:  NewModemOperation[string](OperationDos, ConfigureForDos{}),
		OperationUnix: unix,
	}, nil
}

// NewDispatcher returns a dispatcher over the closed Modem set.
func NewDispatcher(opts ...visitor.Option) *visitor.Dispatcher[string] {
	return visitor.NewDispatcher[string](ModemTags, opts...)
}
