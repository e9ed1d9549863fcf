// Package query derives filtered, sorted views from record snapshots.
//
// Execute is a pure function of its inputs: the same snapshot, spec and now
// always produce the same sequence, and the input slice is never modified.
package query

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Direction is the sort order of a comparator.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// All is the sentinel filter value that disables a predicate.
const All = "all"

// Sort selects the column and direction records are ordered by.
type Sort struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// Filters maps a filter name to its current value. Empty values and All are inactive.
type Filters map[string]string

// Spec is the full set of view criteria: free text, predicates and ordering.
type Spec struct {
	Query   string  `json:"query"`
	Filters Filters `json:"filters,omitempty"`
	Sort    Sort    `json:"sort"`
}

// Error reports an unusable query parameter.
type Error struct {
	Param  string
	Value  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("query parameter %s=%q: %s", e.Param, e.Value, e.Reason)
}

// Column extracts the sortable value of a record.
type Column[T any] func(T) Value

// Predicate compiles an active filter value into a record test. It returns an
// error when the value is not acceptable for the filter.
type Predicate[T any] func(value string, now time.Time) (func(T) bool, error)

// Schema describes how a record type is searched, filtered and sorted.
type Schema[T any] struct {
	// Search returns the fields matched by the free-text query.
	Search func(T) []string
	// Filters holds the predicates addressable by name.
	Filters map[string]Predicate[T]
	// Columns holds the named sort columns.
	Columns map[string]Column[T]
	// DefaultSort applies when Spec.Sort leaves the column empty.
	DefaultSort Sort
}

// Execute filters records by every active criterion of spec and orders the
// result with a stable sort.
func Execute[T any](records []T, spec Spec, schema Schema[T], now time.Time) ([]T, error) {
	tests, err := schema.compile(spec.Filters, now)
	if err != nil {
		return nil, err
	}

	order := spec.Sort
	if order.Column == "" {
		order = schema.DefaultSort
	}
	compare, err := schema.comparator(order)
	if err != nil {
		return nil, err
	}

	needle := ""
	if spec.Query != "" {
		needle = Fold(spec.Query)
	}

	out := make([]T, 0, len(records))
	for _, record := range records {
		if needle != "" && !schema.matchText(record, needle) {
			continue
		}
		if !all(tests, record) {
			continue
		}
		out = append(out, record)
	}

	if compare != nil {
		slices.SortStableFunc(out, compare)
	}
	return out, nil
}

func (s Schema[T]) compile(filters Filters, now time.Time) ([]func(T) bool, error) {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	tests := make([]func(T) bool, 0, len(names))
	for _, name := range names {
		value := filters[name]
		if value == "" || strings.EqualFold(value, All) {
			continue
		}

		predicate, ok := s.Filters[name]
		if !ok {
			return nil, &Error{Param: name, Value: value, Reason: "unknown filter"}
		}

		test, err := predicate(value, now)
		if err != nil {
			return nil, &Error{Param: name, Value: value, Reason: err.Error()}
		}
		tests = append(tests, test)
	}
	return tests, nil
}

func (s Schema[T]) comparator(order Sort) (func(a, b T) int, error) {
	if order.Column == "" {
		return nil, nil
	}

	sign := 1
	switch order.Direction {
	case Asc, "":
	case Desc:
		sign = -1
	default:
		return nil, &Error{Param: "dir", Value: string(order.Direction), Reason: "must be asc or desc"}
	}

	column, ok := s.Columns[order.Column]
	if !ok {
		column = rawColumn[T](order.Column)
	}

	return func(a, b T) int {
		return sign * Compare(column(a), column(b))
	}, nil
}

func (s Schema[T]) matchText(record T, needle string) bool {
	if s.Search == nil {
		return true
	}
	for _, field := range s.Search(record) {
		if field != "" && strings.Contains(Fold(field), needle) {
			return true
		}
	}
	return false
}

func all[T any](tests []func(T) bool, record T) bool {
	for _, test := range tests {
		if !test(record) {
			return false
		}
	}
	return true
}
