package listview

import "strings"

// All is the filter value that disables a categorical filter.
const All = "all"

// Filter is a named categorical predicate, e.g. status equality.
type Filter[T any] struct {
	Name  string
	Match func(item T, value string) bool
}

// Equals builds a case-insensitive equality filter over one field.
func Equals[T any](name string, field func(T) string) Filter[T] {
	return Filter[T]{
		Name: name,
		Match: func(item T, value string) bool {
			return strings.EqualFold(field(item), value)
		},
	}
}

func inactive(value string) bool {
	return value == "" || strings.EqualFold(value, All)
}

// Matches reports whether searchable contains term, ignoring case.
func Matches(searchable, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(searchable), strings.ToLower(term))
}
