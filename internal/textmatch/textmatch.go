// Package textmatch implements the case-insensitive substring filter used by
// listings and statistics.
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matcher tests labels against a folded filter. The zero value matches everything.
type Matcher struct {
	folded string
}

// New prepares a matcher for filter. A blank filter matches every label.
func New(filter string) Matcher {
	trimmed := strings.TrimSpace(filter)
	if trimmed == "" {
		return Matcher{}
	}
	return Matcher{folded: fold(trimmed)}
}

// Empty reports whether the matcher accepts every label.
func (m Matcher) Empty() bool {
	return m.folded == ""
}

func (m Matcher) Match(label string) bool {
	if m.folded == "" {
		return true
	}
	return strings.Contains(fold(label), m.folded)
}

// Contains is a one-shot form of New(filter).Match(label).
func Contains(label string, filter string) bool {
	return New(filter).Match(label)
}

var folder = cases.Fold()

func fold(s string) string {
	return folder.String(s)
}
