package query

import (
	"fmt"
	"strings"
	"time"
)

// Equals matches records whose field equals the filter value exactly.
func Equals[T any](field func(T) string) Predicate[T] {
	return func(value string, _ time.Time) (func(T) bool, error) {
		return func(record T) bool { return field(record) == value }, nil
	}
}

// EqualsFold matches records whose field equals the filter value ignoring case.
func EqualsFold[T any](field func(T) string) Predicate[T] {
	return func(value string, _ time.Time) (func(T) bool, error) {
		return func(record T) bool { return strings.EqualFold(field(record), value) }, nil
	}
}

// OneOf matches records whose field equals the filter value exactly and
// rejects values outside allowed.
func OneOf[T any](allowed []string, field func(T) string) Predicate[T] {
	return func(value string, _ time.Time) (func(T) bool, error) {
		for _, candidate := range allowed {
			if candidate == value {
				return func(record T) bool { return field(record) == value }, nil
			}
		}
		return nil, fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
	}
}

// Cases selects a named test, e.g. stock levels.
func Cases[T any](tests map[string]func(T) bool) Predicate[T] {
	return func(value string, _ time.Time) (func(T) bool, error) {
		test, ok := tests[value]
		if !ok {
			return nil, fmt.Errorf("unsupported value")
		}
		return test, nil
	}
}

// DateRange matches records whose date falls in the named window relative to
// the query time. Records without a date never match.
func DateRange[T any](field func(T) time.Time) Predicate[T] {
	return func(value string, now time.Time) (func(T) bool, error) {
		start, end, err := Window(value, now)
		if err != nil {
			return nil, err
		}
		return func(record T) bool {
			at := field(record)
			if at.IsZero() {
				return false
			}
			return InWindow(at, start, end)
		}, nil
	}
}

// OneOfFold is OneOf ignoring case, both when checking the value and when
// matching records.
func OneOfFold[T any](allowed []string, field func(T) string) Predicate[T] {
	return func(value string, _ time.Time) (func(T) bool, error) {
		for _, candidate := range allowed {
			if strings.EqualFold(candidate, value) {
				return func(record T) bool { return strings.EqualFold(field(record), value) }, nil
			}
		}
		return nil, fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
	}
}
