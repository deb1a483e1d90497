// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"strings"

	"github.com/pdiddy/scix/pkg/scix"
)

var closers = map[rune]rune{')': '(', ']': '[', '}': '{'}

// Validate checks q before it is sent. It rejects an empty query,
// unbalanced quotes, parentheses, brackets or braces, and a query that
// starts with AND/OR or ends with AND/OR/NOT. Errors are KindInvalidQuery.
func Validate(q string) error {
	if strings.TrimSpace(q) == "" {
		return scix.InvalidQuery("query must not be empty")
	}

	var stack []rune
	inQuote := false
	escaped := false
	for i, r := range q {
		if escaped {
			escaped = false
			continue
		}
		switch {
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '(' || r == '[' || r == '{':
			stack = append(stack, r)
		case closers[r] != 0:
			if len(stack) == 0 || stack[len(stack)-1] != closers[r] {
				return scix.InvalidQuery("unexpected %q at offset %d", r, i)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if inQuote {
		return scix.InvalidQuery("unbalanced quotes")
	}
	if len(stack) > 0 {
		return scix.InvalidQuery("unclosed %q", stack[len(stack)-1])
	}

	words := strings.Fields(q)
	switch first := words[0]; first {
	case "AND", "OR":
		return scix.InvalidQuery("query starts with operator %s", first)
	}
	switch last := words[len(words)-1]; last {
	case "AND", "OR", "NOT":
		return scix.InvalidQuery("query ends with dangling operator %s", last)
	}
	return nil
}
