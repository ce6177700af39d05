package internal

import (
	"regexp"
	"strings"
)

type annotation string

const (
	// Element marks a type as one variant of a closed family: @Element(Modem)
	Element annotation = "@Element"
)

func (a annotation) String() string {
	return string(a)
}

func (a annotation) PrefixOf(str string) bool {
	return strings.HasPrefix(strings.ToUpper(str), strings.ToUpper(a.String()))
}

// FamilyOf returns the family named by an @Element annotation in comments.
func FamilyOf(comments []string) (string, bool) {
	for _, comment := range comments {
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
		for _, seg := range strings.Fields(text) {
			if !Element.PrefixOf(seg) {
				continue
			}
			if family, ok := ExtractValue(seg, Element.String()); ok && family != "" {
				return family, true
			}
		}
	}
	return "", false
}

// ExtractValue returns the text between the parentheses of annotation(...) in s.
func ExtractValue(s string, annotation string) (string, bool) {
	reg := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(annotation) + `\((.*)\)$`)
	matchArr := reg.FindStringSubmatch(s)
	if matchArr == nil {
		return "", false
	}
	return strings.TrimSpace(matchArr[len(matchArr)-1]), true
}
