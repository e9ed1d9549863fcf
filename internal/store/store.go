// Package store holds the authoritative in-memory records of one domain.
//
// A Store is loaded once from its Source and then mutated through Add,
// Update and Remove. Writes go to the source first and are applied locally
// only when the source accepted them, so a failed remote write never leaves a
// partially applied local state. Mutations of one store are serialized.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/query"
)

// Record is implemented by every stored domain type.
type Record[T any] interface {
	RecordID() string
	CreatedTime() time.Time
	WithID(id string) T
	Stamped(created, updated time.Time) T
	Validate() error
}

// deriver is implemented by records with computed totals.
type deriver[T any] interface {
	Derive() T
}

// Options tune a store.
type Options[T any] struct {
	// IDPrefix is prepended to generated ids, e.g. "item".
	IDPrefix string
	// SeedEmpty inserts the seed records into the source when it loads empty.
	SeedEmpty bool
	// RemoteSeed replaces the seed records inserted by SeedEmpty, e.g. to
	// point them at rows that were themselves just seeded.
	RemoteSeed func() []T
	Now        func() time.Time
	Logger     *zap.Logger
}

// Status describes how a store was loaded.
type Status struct {
	Name     string    `json:"name"`
	Source   string    `json:"source"`
	Loaded   bool      `json:"loaded"`
	Fallback bool      `json:"fallback"`
	Notice   string    `json:"notice,omitempty"`
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

// Store is the in-memory record sequence of one domain.
type Store[T Record[T]] struct {
	mu      sync.RWMutex
	name    string
	remote  Source[T]
	source  Source[T] // write target: remote, or the seed after a fallback
	seed    func() []T
	records []T
	index   map[string]int
	status  Status

	idPrefix   string
	seedEmpty  bool
	remoteSeed func() []T
	now        func() time.Time
	logger     *zap.Logger
}

// New builds an empty store. seed supplies the fixed records used when the
// source cannot be read.
func New[T Record[T]](name string, source Source[T], seed func() []T, opts Options[T]) *Store[T] {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	prefix := opts.IDPrefix
	if prefix == "" {
		prefix = name
	}
	if seed == nil {
		seed = func() []T { return nil }
	}

	return &Store[T]{
		name:       name,
		remote:     source,
		source:     source,
		seed:       seed,
		index:      make(map[string]int),
		status:     Status{Name: name, Source: source.Name()},
		idPrefix:   prefix,
		seedEmpty:  opts.SeedEmpty,
		remoteSeed: opts.RemoteSeed,
		now:        now,
		logger:     logger,
	}
}

// Name returns the store name.
func (s *Store[T]) Name() string { return s.name }

// Load reads the source once. When the read fails the store is populated
// with the seed records and a *FallbackError is returned; the store is usable
// either way. After a fallback every write stays local until a later Load
// succeeds, so the remote never sees ids it did not serve.
func (s *Store[T]) Load(ctx context.Context) error {
	rows, err := s.remote.List(ctx)
	if err == nil && len(rows) == 0 && s.seedEmpty {
		rows, err = s.seedSource(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.Loaded = true
	s.status.LoadedAt = s.now()

	if err != nil {
		fallback := &FallbackError{Store: s.name, Source: s.remote.Name(), Err: err}
		s.replace(s.seed())
		s.source = Fixed(s.seed)
		s.status.Fallback = true
		s.status.Notice = fallback.Error()
		s.status.Count = len(s.records)
		s.logger.Warn("store load failed, using seed data", zap.String("store", s.name), zap.Error(err))
		return fallback
	}

	s.replace(rows)
	s.source = s.remote
	s.status.Fallback = false
	s.status.Notice = ""
	s.status.Count = len(s.records)
	s.logger.Info("store loaded", zap.String("store", s.name), zap.String("source", s.remote.Name()), zap.Int("records", len(s.records)))
	return nil
}

func (s *Store[T]) seedSource(ctx context.Context) ([]T, error) {
	seed := s.seed
	if s.remoteSeed != nil {
		seed = s.remoteSeed
	}
	records := seed()
	inserted := make([]T, 0, len(records))
	now := s.now()
	for _, record := range records {
		record = derive(record).Stamped(now, now)
		if record.RecordID() == "" {
			record = record.WithID(s.newID())
		}
		stored, err := s.remote.Insert(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", s.name, err)
		}
		inserted = append(inserted, stored)
	}
	s.logger.Info("seeded empty source", zap.String("store", s.name), zap.Int("records", len(inserted)))
	return inserted, nil
}

// replace swaps the record sequence, dropping later rows that repeat an id.
// Callers hold the write lock.
func (s *Store[T]) replace(rows []T) {
	s.records = make([]T, 0, len(rows))
	s.index = make(map[string]int, len(rows))
	for _, record := range rows {
		record = derive(record)
		id := record.RecordID()
		if _, dup := s.index[id]; dup {
			s.logger.Warn("skipping duplicate record id", zap.String("store", s.name), zap.String("id", id))
			continue
		}
		s.index[id] = len(s.records)
		s.records = append(s.records, record)
	}
}

// Add validates record, assigns an id when it has none, stamps it and
// appends it after the source accepted it.
func (s *Store[T]) Add(ctx context.Context, record T) (T, error) {
	var zero T

	record = derive(record)
	if err := record.Validate(); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := record.RecordID()
	if id == "" {
		id = s.newID()
	} else if _, exists := s.index[id]; exists {
		return zero, fmt.Errorf("add %s %s: %w", s.name, id, ErrDuplicateID)
	}

	now := s.now()
	record = record.WithID(id).Stamped(now, now)

	stored, err := s.source.Insert(ctx, record)
	if err != nil {
		return zero, &RemoteWriteError{Op: "insert", Store: s.name, Source: s.source.Name(), Err: err}
	}
	if stored.RecordID() == "" {
		stored = record
	}

	s.index[stored.RecordID()] = len(s.records)
	s.records = append(s.records, stored)
	s.status.Count = len(s.records)
	return stored, nil
}

// Update replaces the record stored under id, keeping its creation time and
// refreshing its update time.
func (s *Store[T]) Update(ctx context.Context, id string, record T) (T, error) {
	var zero T

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return zero, fmt.Errorf("update %s %s: %w", s.name, id, ErrNotFound)
	}

	record = derive(record)
	if err := record.Validate(); err != nil {
		return zero, err
	}
	record = record.WithID(id).Stamped(s.records[i].CreatedTime(), s.now())

	stored, err := s.source.Update(ctx, record)
	if err != nil {
		return zero, &RemoteWriteError{Op: "update", Store: s.name, Source: s.source.Name(), Err: err}
	}
	if stored.RecordID() != id {
		stored = record
	}

	s.records[i] = stored
	return stored, nil
}

// Remove deletes the record stored under id. Records referencing it are left untouched.
func (s *Store[T]) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("remove %s %s: %w", s.name, id, ErrNotFound)
	}

	if err := s.source.Delete(ctx, id); err != nil {
		return &RemoteWriteError{Op: "delete", Store: s.name, Source: s.source.Name(), Err: err}
	}

	s.records = slices.Delete(s.records, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.records); j++ {
		s.index[s.records[j].RecordID()] = j
	}
	s.status.Count = len(s.records)
	return nil
}

// Get returns the record stored under id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.records[i], true
}

// Snapshot returns a copy of the records in store order.
func (s *Store[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Len returns the number of stored records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Query runs the query executor over the current snapshot.
func (s *Store[T]) Query(spec query.Spec, schema query.Schema[T], now time.Time) ([]T, error) {
	return query.Execute(s.Snapshot(), spec, schema, now)
}

// Status reports how the store was loaded.
func (s *Store[T]) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Store[T]) newID() string {
	return s.idPrefix + "-" + uuid.NewString()
}

func derive[T any](record T) T {
	if d, ok := any(record).(deriver[T]); ok {
		return d.Derive()
	}
	return record
}
