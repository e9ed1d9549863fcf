package store

import (
	"context"
	"slices"
)

// Source is the table a store is loaded from and writes through to. Records
// are keyed by their id.
type Source[T any] interface {
	Name() string
	List(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, record T) (T, error)
	Delete(ctx context.Context, id string) error
}

// SourceFactory opens the source backing one named table.
type SourceFactory[T any] func(table string) Source[T]

// Fixed returns the seed-only source. Reads return the seed records and
// writes are accepted without leaving the process.
func Fixed[T any](seed func() []T) Source[T] {
	return fixedSource[T]{seed: seed}
}

type fixedSource[T any] struct {
	seed func() []T
}

func (fixedSource[T]) Name() string { return "seed" }

func (f fixedSource[T]) List(context.Context) ([]T, error) {
	if f.seed == nil {
		return nil, nil
	}
	return slices.Clone(f.seed()), nil
}

func (fixedSource[T]) Insert(_ context.Context, record T) (T, error) { return record, nil }

func (fixedSource[T]) Update(_ context.Context, record T) (T, error) { return record, nil }

func (fixedSource[T]) Delete(context.Context, string) error { return nil }

// Unavailable returns a source whose every operation fails with cause. It
// stands in for a remote backend that could not be reached at startup.
func Unavailable[T any](name string, cause error) Source[T] {
	return unavailableSource[T]{name: name, cause: cause}
}

type unavailableSource[T any] struct {
	name  string
	cause error
}

func (u unavailableSource[T]) Name() string { return u.name }

func (u unavailableSource[T]) List(context.Context) ([]T, error) { return nil, u.cause }

func (u unavailableSource[T]) Insert(context.Context, T) (T, error) {
	var zero T
	return zero, u.cause
}

func (u unavailableSource[T]) Update(context.Context, T) (T, error) {
	var zero T
	return zero, u.cause
}

func (u unavailableSource[T]) Delete(context.Context, string) error { return u.cause }
