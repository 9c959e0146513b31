// Package record is an in-memory record store. It is the reference
// implementation of the store contract and backs the "memory" driver.
//
// Each record carries its own mutex, so single-record operations never take a
// collection-wide lock. FindAll copies every record under its own lock, which
// gives a snapshot that is consistent per record but not across records.
package record

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/info-backend/internal/domain"
)

type entry struct {
	mu      sync.Mutex
	rec     domain.Record
	seq     uint64
	deleted bool
}

// Store keeps records in a sync.Map keyed by id.
type Store struct {
	entries sync.Map // uuid.UUID -> *entry
	seq     atomic.Uint64
	now     func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

// Insert stores a copy of rec with a fresh id and equal timestamps.
func (s *Store) Insert(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	e := &entry{
		rec: domain.Record{
			ID:        uuid.New(),
			Name:      rec.Name,
			Age:       rec.Age,
			CreatedAt: now,
			UpdatedAt: now,
		},
		seq: s.seq.Add(1),
	}

	if _, loaded := s.entries.LoadOrStore(e.rec.ID, e); loaded {
		return nil, fmt.Errorf("record %s: id collision", e.rec.ID)
	}

	out := e.rec
	return &out, nil
}

// FindAll returns copies of the matching records, newest first.
// Ties on CreatedAt are broken by insertion order, newest first.
func (s *Store) FindAll(ctx context.Context, filter domain.RecordFilter) ([]*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type snap struct {
		rec domain.Record
		seq uint64
	}
	var snaps []snap

	s.entries.Range(func(_, v any) bool {
		e := v.(*entry)
		e.mu.Lock()
		if !e.deleted && filter.Matches(e.rec.Name) {
			snaps = append(snaps, snap{rec: e.rec, seq: e.seq})
		}
		e.mu.Unlock()
		return true
	})

	sort.Slice(snaps, func(i, j int) bool {
		a, b := snaps[i], snaps[j]
		if !a.rec.CreatedAt.Equal(b.rec.CreatedAt) {
			return a.rec.CreatedAt.After(b.rec.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]*domain.Record, len(snaps))
	for i := range snaps {
		out[i] = &snaps[i].rec
	}
	return out, nil
}

// FindByID returns a copy of the record or domain.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, ok := s.load(id)
	if !ok {
		return nil, notFound(id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, notFound(id)
	}
	out := e.rec
	return &out, nil
}

// UpdateFields applies upd and refreshes UpdatedAt under the record's lock.
func (s *Store) UpdateFields(ctx context.Context, id uuid.UUID, upd domain.RecordUpdate) (*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, ok := s.load(id)
	if !ok {
		return nil, notFound(id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, notFound(id)
	}

	upd.Apply(&e.rec)
	now := s.now().UTC()
	if now.Before(e.rec.CreatedAt) {
		now = e.rec.CreatedAt
	}
	e.rec.UpdatedAt = now

	out := e.rec
	return &out, nil
}

// DeleteByID removes the record or returns domain.ErrNotFound.
// Of two concurrent deletes of the same id exactly one succeeds.
func (s *Store) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e, ok := s.load(id)
	if !ok {
		return notFound(id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return notFound(id)
	}
	e.deleted = true
	s.entries.CompareAndDelete(id, e)
	return nil
}

// Ping always succeeds; the store lives in process memory.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len returns the number of live records.
func (s *Store) Len() int {
	n := 0
	s.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (s *Store) load(id uuid.UUID) (*entry, bool) {
	v, ok := s.entries.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*entry), true
}

func notFound(id uuid.UUID) error {
	return fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
}
