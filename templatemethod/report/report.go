// Package report renders a titled list of lines through the templatemethod skeleton
// start, head, bodyStart, body, bodyEnd, end. The body step is fixed: it invokes the
// line hook once per line.
package report

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/go-leo/behavior/templatemethod"
)

const (
	Start     templatemethod.StepID = "start"
	Head      templatemethod.StepID = "head"
	BodyStart templatemethod.StepID = "bodyStart"
	Body      templatemethod.StepID = "body"
	BodyEnd   templatemethod.StepID = "bodyEnd"
	End       templatemethod.StepID = "end"
	Line      templatemethod.StepID = "line"
)

// Report is the value every format renders. It is not modified by rendering.
type Report struct {
	Title string   `yaml:"title" json:"title"`
	Lines []string `yaml:"lines" json:"lines"`
}

// New returns a report owning a copy of lines.
func New(title string, lines ...string) Report {
	return Report{Title: title, Lines: append([]string(nil), lines...)}
}

// Load decodes a report from YAML.
func Load(r io.Reader) (Report, error) {
	var rep Report
	if err := yaml.NewDecoder(r).Decode(&rep); err != nil {
		if err == io.EOF {
			return rep, nil
		}
		return rep, errors.Wrap(err, "report: decode")
	}
	return rep, nil
}

var (
	skeletonOnce sync.Once
	skeleton     *templatemethod.Skeleton[Report]
)

// Steps returns the step definition shared by every report format.
func Steps() []templatemethod.Step[Report] {
	return []templatemethod.Step[Report]{
		templatemethod.Variable[Report](Start),
		templatemethod.Variable[Report](Head),
		templatemethod.Variable[Report](BodyStart),
		templatemethod.Fixed[Report](Body, templatemethod.Each[Report](Line, lines)),
		templatemethod.Variable[Report](BodyEnd),
		templatemethod.Variable[Report](End),
		templatemethod.Hook[Report](Line),
	}
}

// Skeleton returns the report skeleton without logging.
func Skeleton() *templatemethod.Skeleton[Report] {
	skeletonOnce.Do(func() {
		var err error
		skeleton, err = NewSkeleton()
		if err != nil {
			panic(err)
		}
	})
	return skeleton
}

// NewSkeleton builds a report skeleton with opts.
func NewSkeleton(opts ...templatemethod.Option) (*templatemethod.Skeleton[Report], error) {
	return templatemethod.NewSkeleton("report", Steps(), opts...)
}

func lines(r Report) []string {
	return r.Lines
}
