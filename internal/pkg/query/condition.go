package query

import "strings"

// Condition represents a filter predicate over in-memory records.
type Condition[T any] func(T) bool

// Contains creates a case-insensitive substring condition on the given field.
// An empty needle matches everything.
// Example: Contains(name, "wid") matches "Widget" and "WIDE".
func Contains[T any](field func(T) string, needle string) Condition[T] {
	needle = strings.ToLower(needle)
	return func(item T) bool {
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(field(item)), needle)
	}
}

// EqualFold creates a case-insensitive equality condition on the given field.
func EqualFold[T any](field func(T) string, value string) Condition[T] {
	return func(item T) bool {
		return strings.EqualFold(field(item), value)
	}
}

// Not negates a condition.
func Not[T any](c Condition[T]) Condition[T] {
	return func(item T) bool {
		return !c(item)
	}
}

// Where returns the items matching every condition, preserving order.
// The result never aliases the input.
func Where[T any](items []T, conditions ...Condition[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchAll(item, conditions) {
			out = append(out, item)
		}
	}
	return out
}

// Any reports whether at least one item matches every condition.
func Any[T any](items []T, conditions ...Condition[T]) bool {
	for _, item := range items {
		if matchAll(item, conditions) {
			return true
		}
	}
	return false
}

func matchAll[T any](item T, conditions []Condition[T]) bool {
	for _, c := range conditions {
		if !c(item) {
			return false
		}
	}
	return true
}
