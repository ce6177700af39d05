// Package modem is a closed family of modems configured by visitor operations.
// Adding a configurator never touches the modems; adding a modem breaks every
// configurator until it handles the new type.
package modem

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/go-leo/behavior/visitor"
)

//go:generate go run github.com/go-leo/behavior/cmd/visitorgen -family Modem

// Hayes modem.
// @Element(Modem)
type Hayes struct{}

// Zoom modem.
// @Element(Modem)
type Zoom struct{}

// Ernie modem.
// @Element(Modem)
type Ernie struct{}

// Parse returns the modem named name, case-insensitively.
func Parse(name string) (visitor.Element, error) {
	switch strings.ToLower(name) {
	case "hayes":
		return Hayes{}, nil
	case "zoom":
		return Zoom{}, nil
	case "ernie":
		return Ernie{}, nil
	default:
		return nil, errors.Wrapf(visitor.ErrUnknownTag, "%q", name)
	}
}

// All returns one modem of every type, in tag order.
func All() []visitor.Element {
	return []visitor.Element{Hayes{}, Zoom{}, Ernie{}}
}
