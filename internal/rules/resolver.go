// Package rules implements the deterministic text-to-fact pipeline:
// intent classification, amount and description extraction, transaction
// categorization, and spending alert rules. Everything here is a pure
// function over its inputs; no I/O, no clocks.
package rules

import "strings"

// KeywordRule pairs a keyword set with the value it resolves to. A rule
// matches when any of its keywords appears as a case-insensitive substring
// of the input.
type KeywordRule[T any] struct {
	Result   T
	Keywords []string
}

// firstMatch evaluates an ordered rule table against text and returns the
// first matching result. Rule tables are intentionally not disjoint, so
// ordering is part of the observable behavior and must not be changed.
func firstMatch[T any](text string, table []KeywordRule[T], fallback T) T {
	lowered := strings.ToLower(text)
	for _, rule := range table {
		for _, kw := range rule.Keywords {
			if strings.Contains(lowered, kw) {
				return rule.Result
			}
		}
	}
	return fallback
}
