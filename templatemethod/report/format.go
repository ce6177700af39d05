package report

import (
	"context"
	"regexp"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/go-leo/behavior/templatemethod"
)

const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// ErrUnknownFormat is returned when a format name is not built in.
var ErrUnknownFormat = errors.New("report: unknown format")

// Text renders a plain text report.
func Text() templatemethod.Bindings[Report] {
	return templatemethod.Bindings[Report]{
		Start: templatemethod.Text[Report]("==== REPORT ===="),
		Head: templatemethod.Render(func(r Report, _ templatemethod.Arg) string {
			return "Title: " + r.Title
		}),
		BodyStart: templatemethod.Text[Report]("----"),
		Line: templatemethod.Render(func(_ Report, arg templatemethod.Arg) string {
			return "- " + arg.Value
		}),
		BodyEnd: templatemethod.Text[Report]("----"),
		End:     templatemethod.Text[Report]("==== END ===="),
	}
}

// Markdown renders the title as a heading and lines as a bullet list.
func Markdown() templatemethod.Bindings[Report] {
	return templatemethod.Bindings[Report]{
		Start: templatemethod.Text[Report](""),
		Head: templatemethod.Render(func(r Report, _ templatemethod.Arg) string {
			return "# " + escapeMarkdown(r.Title)
		}),
		BodyStart: templatemethod.Text[Report](""),
		Line: templatemethod.Render(func(_ Report, arg templatemethod.Arg) string {
			return "- " + escapeMarkdown(arg.Value)
		}),
		BodyEnd: templatemethod.Text[Report](""),
		End:     templatemethod.Text[Report](""),
	}
}

var (
	markdownEscaper = strings.NewReplacer(
		`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`, "#", `\#`,
		"<", `\<`, ">", `\>`,
	)
	// ordered list marker at the start of a line, e.g. "1." or "2)"
	markdownOrdered = regexp.MustCompile(`^(\d+)([.)])`)
)

// escapeMarkdown escapes inline markup and raw HTML anywhere in s, and list markers at its start.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return `\` + s
	}
	return markdownOrdered.ReplaceAllString(s, `$1\$2`)
}

// HTML renders an HTML document. Title and lines are reduced to text by a strict
// bluemonday policy, so markup inside the report never reaches the output.
func HTML() templatemethod.Bindings[Report] {
	return templatemethod.Bindings[Report]{
		Start: templatemethod.Text[Report]("<html>"),
		Head: templatemethod.Render(func(r Report, _ templatemethod.Arg) string {
			return "<head><title>" + sanitize(r.Title) + "</title></head>"
		}),
		BodyStart: templatemethod.Text[Report]("<body>"),
		Line: templatemethod.Render(func(_ Report, arg templatemethod.Arg) string {
			return "<p>" + sanitize(arg.Value) + "</p>"
		}),
		BodyEnd: templatemethod.Text[Report]("</body>"),
		End:     templatemethod.Text[Report]("</html>"),
	}
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func sanitize(raw string) string {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy.Sanitize(raw)
}

// JSON renders {"title":...,"lines":[...]} one token group per fragment.
// Joining the fragments yields a valid JSON document.
func JSON() templatemethod.Bindings[Report] {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	return templatemethod.Bindings[Report]{
		Start: templatemethod.Text[Report]("{"),
		Head: func(_ context.Context, r Report, _ templatemethod.Arg) (string, error) {
			title, err := json.MarshalToString(r.Title)
			if err != nil {
				return "", err
			}
			return `"title":` + title + ",", nil
		},
		BodyStart: templatemethod.Text[Report](`"lines":[`),
		Line: func(_ context.Context, _ Report, arg templatemethod.Arg) (string, error) {
			line, err := json.MarshalToString(arg.Value)
			if err != nil {
				return "", err
			}
			if !arg.Last() {
				line += ","
			}
			return line, nil
		},
		BodyEnd: templatemethod.Text[Report]("]"),
		End:     templatemethod.Text[Report]("}"),
	}
}

// Bindings returns the bindings of the built-in format named format.
func Bindings(format string) (templatemethod.Bindings[Report], error) {
	switch format {
	case FormatText:
		return Text(), nil
	case FormatMarkdown:
		return Markdown(), nil
	case FormatHTML:
		return HTML(), nil
	case FormatJSON:
		return JSON(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// Formats registers every built-in format against skeleton. Each format's bindings are
// decorated with middlewares before registration.
func Formats(skeleton *templatemethod.Skeleton[Report], middlewares ...templatemethod.BindingMiddleware[Report]) (*templatemethod.Registry[Report], error) {
	registry := templatemethod.NewRegistry(skeleton)
	var err error
	for _, name := range FormatNames() {
		bindings, bErr := Bindings(name)
		if bErr != nil {
			err = multierr.Append(err, bErr)
			continue
		}
		err = multierr.Append(err, registry.Register(name, bindings.Decorate(middlewares...)))
	}
	if err != nil {
		return nil, err
	}
	return registry, nil
}

// FormatNames returns the built-in formats in declaration order.
func FormatNames() []string {
	return []string{FormatText, FormatMarkdown, FormatHTML, FormatJSON}
}
