package jsobj

import (
	"regexp"
	"strings"

	"github.com/fwojciec/notegrab"
)

// DefaultVariable is the global the note pages assign their state to.
const DefaultVariable = "window.__INITIAL_STATE__"

const scriptClose = "</script>"

// Extractor recovers the object literal assigned to one global variable.
// An Extractor holds no mutable state and is safe for concurrent use.
type Extractor struct {
	variable string
	fast     *regexp.Regexp
	assign   *regexp.Regexp
}

// NewExtractor returns an Extractor for the given variable name.
// An empty name selects DefaultVariable.
func NewExtractor(variable string) *Extractor {
	if variable == "" {
		variable = DefaultVariable
	}
	return &Extractor{
		variable: variable,
		fast:     regexp.MustCompile(`(?s)` + regexp.QuoteMeta(variable) + `\s*=\s*(\{.*?\})\s*;?\s*` + regexp.QuoteMeta(scriptClose)),
		assign:   regexp.MustCompile(regexp.QuoteMeta(variable) + `\s*=[^=]`),
	}
}

// Variable returns the variable name the Extractor looks for.
func (e *Extractor) Variable() string {
	return e.variable
}

// Locate is the fast path: it matches "<variable> = {...}" up to the nearest
// script close tag that follows a closing brace and an optional semicolon.
// The candidate is not guaranteed to be balanced.
func (e *Extractor) Locate(html string) (string, bool) {
	m := e.fast.FindStringSubmatch(html)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Scan is the robust path: it brace-matches from the first "{" after the
// first assignment to the variable, skipping braces inside single- or double-quoted strings
// and honoring backslash escapes. The scan stops at the first script close
// tag after the assignment, or at the end of the document. Mentions of the
// variable that are not assignments, such as comparisons, are ignored.
//
// Returns ESTATENOTFOUND if the variable or an opening brace is missing and
// EUNBALANCED if the braces never close within the bound.
func (e *Extractor) Scan(html string) (string, error) {
	loc := e.assign.FindStringIndex(html)
	if loc == nil {
		return "", notegrab.Errorf(notegrab.ESTATENOTFOUND, "%s assignment not found", e.variable)
	}
	// The match ends one byte past "=".
	marker := loc[1] - 1

	open := strings.IndexByte(html[marker:], '{')
	if open == -1 {
		return "", notegrab.Errorf(notegrab.ESTATENOTFOUND, "%s has no object literal", e.variable)
	}
	open += marker

	bound := len(html)
	if end := strings.Index(html[marker:], scriptClose); end != -1 {
		bound = marker + end
	}

	end, ok := matchBrace(html, open, bound)
	if !ok {
		return "", notegrab.Errorf(notegrab.EUNBALANCED, "%s object literal is not closed before the end of its script", e.variable)
	}
	return html[open : end+1], nil
}

// matchBrace returns the index of the brace closing the one at open,
// scanning no further than bound.
func matchBrace(s string, open, bound int) (int, bool) {
	var (
		depth    int
		inDouble bool
		inSingle bool
		escaped  bool
	)
	for i := open; i < bound; i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			escaped = true
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '{':
			if !inDouble && !inSingle {
				depth++
			}
		case '}':
			if !inDouble && !inSingle {
				depth--
				if depth == 0 {
					return i, true
				}
			}
		}
	}
	return 0, false
}

// Decode locates, sanitizes and parses the object literal.
//
// The fast path is tried first. If it does not match, or its candidate does
// not parse once sanitized, the robust scan is used and its result must
// parse; a failure there is returned as *notegrab.MalformedError.
func (e *Extractor) Decode(html string) (*Value, error) {
	if candidate, ok := e.Locate(html); ok {
		if v, err := Parse(Sanitize(candidate)); err == nil {
			return v, nil
		}
	}

	text, err := e.Scan(html)
	if err != nil {
		return nil, err
	}

	return Parse(Sanitize(text))
}
