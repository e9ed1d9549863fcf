// Package postgrest adapts Supabase tables to record sources.
package postgrest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mamadbah2/stockroom/internal/store"
	client "github.com/mamadbah2/stockroom/pkg/clients/postgrest"
)

type identified interface {
	RecordID() string
}

// Table returns the record source backed by the named PostgREST table.
func Table[T identified](c client.Client, table string) store.Source[T] {
	return &tableSource[T]{client: c, table: table}
}

type tableSource[T identified] struct {
	client client.Client
	table  string
}

func (s *tableSource[T]) Name() string { return "postgrest" }

func (s *tableSource[T]) List(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := s.client.Select(ctx, s.table, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *tableSource[T]) Insert(ctx context.Context, record T) (T, error) {
	var rows []T
	if err := s.client.Insert(ctx, s.table, record, &rows); err != nil {
		var zero T
		return zero, translate(err, record.RecordID())
	}
	return first(rows, record), nil
}

func (s *tableSource[T]) Update(ctx context.Context, record T) (T, error) {
	var zero T
	var rows []T
	if err := s.client.Update(ctx, s.table, record.RecordID(), record, &rows); err != nil {
		return zero, translate(err, record.RecordID())
	}
	if len(rows) == 0 {
		return zero, fmt.Errorf("update %s %s: %w", s.table, record.RecordID(), store.ErrNotFound)
	}
	return rows[0], nil
}

func (s *tableSource[T]) Delete(ctx context.Context, id string) error {
	var rows []T
	if err := s.client.Delete(ctx, s.table, id, &rows); err != nil {
		return translate(err, id)
	}
	if len(rows) == 0 {
		return fmt.Errorf("delete %s %s: %w", s.table, id, store.ErrNotFound)
	}
	return nil
}

// first returns the row echoed by the server, or the sent record when the
// server returned no representation.
func first[T any](rows []T, fallback T) T {
	if len(rows) == 0 {
		return fallback
	}
	return rows[0]
}

func translate(err error, id string) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
		return fmt.Errorf("%s: %w: %w", id, store.ErrDuplicateID, err)
	}
	return err
}
