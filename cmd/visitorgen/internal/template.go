package internal

import (
	"bytes"
	_ "embed"
	"errors"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed visitor.go.template
var visitorContent string

var visitorTemplate = template.Must(template.New("visitor").Parse(visitorContent))

type File struct {
	AbsFilename string
	Package     string
	Family      string
	Elements    []string
	Version     string
}

// NewFile describes the generated file for family in dir.
func NewFile(dir string, pkg string, family string, elements []string) *File {
	return &File{
		AbsFilename: filepath.Join(dir, strings.ToLower(addUnderscore(family))+"_visitor.go"),
		Package:     pkg,
		Family:      family,
		Elements:    elements,
		Version:     Version,
	}
}

// Render returns the gofmt-ed source of the file.
func (f *File) Render() ([]byte, error) {
	if len(f.Elements) == 0 {
		return nil, errors.New("no elements annotated with " + Element.String() + "(" + f.Family + ")")
	}
	var buf bytes.Buffer
	if err := visitorTemplate.Execute(&buf, f); err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

// Gen writes the file, replacing a previous generation.
func (f *File) Gen() error {
	content, err := f.Render()
	if err != nil {
		return err
	}
	return os.WriteFile(f.AbsFilename, content, 0o644)
}

func addUnderscore(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && isUpper(r) && !isUpper(rune(s[i-1])) {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return result.String()
}

func isUpper(r rune) bool {
	return 'A' <= r && r <= 'Z'
}
