// internal/filter/filter.go
package filter

import (
	"strconv"
	"strings"
)

// All is the enum sentinel meaning "no constraint".
const All = "all"

// Predicate reports whether an item passes one criterion. A nil Predicate is
// an inactive criterion.
type Predicate[T any] func(T) bool

// Apply returns the items satisfying every non-nil predicate, in their
// original order. The result never aliases items.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	active := preds[:0:0]
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if matchAll(it, active) {
			out = append(out, it)
		}
	}
	return out
}

func matchAll[T any](it T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(it) {
			return false
		}
	}
	return true
}

// ContainsFold matches when the search text is a case-insensitive substring
// of any field. Blank search text yields no constraint.
func ContainsFold[T any](search string, fields ...func(T) string) Predicate[T] {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return nil
	}
	return func(it T) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(it)), needle) {
				return true
			}
		}
		return false
	}
}

// MatchEnum matches on exact equality. "" and All yield no constraint.
func MatchEnum[T any](want string, field func(T) string) Predicate[T] {
	if want == "" || want == All {
		return nil
	}
	return func(it T) bool { return field(it) == want }
}

// ParseThreshold parses a user-entered integer. ok is false for blank or
// unparseable input, which callers treat as no constraint.
func ParseThreshold(text string) (n int64, ok bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// AtLeast matches when field >= the threshold parsed from text.
func AtLeast[T any](text string, field func(T) int64) Predicate[T] {
	min, ok := ParseThreshold(text)
	if !ok {
		return nil
	}
	return func(it T) bool { return field(it) >= min }
}

// HasTag matches when tags contains want exactly.
func HasTag[T any](want string, tags func(T) []string) Predicate[T] {
	if want == "" || want == All {
		return nil
	}
	return func(it T) bool {
		for _, t := range tags(it) {
			if t == want {
				return true
			}
		}
		return false
	}
}

// Flag matches on a boolean field when want is set.
func Flag[T any](want *bool, field func(T) bool) Predicate[T] {
	if want == nil {
		return nil
	}
	w := *want
	return func(it T) bool { return field(it) == w }
}
