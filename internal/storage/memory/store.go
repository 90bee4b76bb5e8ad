// Package memory is an in-process implementation of the storage interfaces.
// Write transactions are serialized and work on a private copy of the data
// that replaces the committed copy on Commit.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

type dataset struct {
	accounts   map[uuid.UUID]ledger.Account
	categories map[uuid.UUID]ledger.Category
	entries    map[uuid.UUID]ledger.Entry
	rules      map[uuid.UUID]ledger.RecurringRule
}

func newDataset() *dataset {
	return &dataset{
		accounts:   make(map[uuid.UUID]ledger.Account),
		categories: make(map[uuid.UUID]ledger.Category),
		entries:    make(map[uuid.UUID]ledger.Entry),
		rules:      make(map[uuid.UUID]ledger.RecurringRule),
	}
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	for id, a := range d.accounts {
		c.accounts[id] = a
	}
	for id, cat := range d.categories {
		c.categories[id] = cat
	}
	for id, e := range d.entries {
		c.entries[id] = copyEntry(e)
	}
	for id, r := range d.rules {
		c.rules[id] = copyRule(r)
	}
	return c
}

func copyEntry(e ledger.Entry) ledger.Entry {
	if e.CompletionDate != nil {
		d := *e.CompletionDate
		e.CompletionDate = &d
	}
	return e
}

func copyRule(r ledger.RecurringRule) ledger.RecurringRule {
	if r.EndDate != nil {
		d := *r.EndDate
		r.EndDate = &d
	}
	return r
}

type Store struct {
	// writeSem admits one write transaction at a time.
	writeSem chan struct{}
	mu       sync.RWMutex
	data     *dataset
}

func New() *Store {
	return &Store{
		writeSem: make(chan struct{}, 1),
		data:     newDataset(),
	}
}

// NewStorage returns a storage.Storage backed by a fresh Store.
func NewStorage() *storage.Storage {
	return New().Storage()
}

func (s *Store) Storage() *storage.Storage {
	return storage.New(s.Reader(), s.Begin)
}

// Reader reads committed data only.
func (s *Store) Reader() *storage.Reader {
	v := &view{store: s}
	return &storage.Reader{
		Accounts:   &accounts{v},
		Categories: &categories{v},
		Entries:    &entries{v},
		Rules:      &rules{v},
	}
}

// Begin waits for any running write transaction to finish, then opens a new one.
func (s *Store) Begin(ctx context.Context) (*storage.Writer, error) {
	select {
	case s.writeSem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.RLock()
	working := s.data.clone()
	s.mu.RUnlock()

	t := &tx{store: s, working: working}
	v := &view{store: s, working: working}
	return storage.NewWriter(t, &accounts{v}, &categories{v}, &entries{v}, &rules{v}), nil
}

type tx struct {
	store   *Store
	working *dataset
	done    bool
}

func (t *tx) Commit(_ context.Context) error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.store.mu.Lock()
	t.store.data = t.working
	t.store.mu.Unlock()
	<-t.store.writeSem
	return nil
}

func (t *tx) Rollback(_ context.Context) error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	<-t.store.writeSem
	return nil
}

// view resolves the dataset a table operates on: the transaction's working
// copy, or the committed data under a read lock.
type view struct {
	store   *Store
	working *dataset
}

func (v *view) read() (*dataset, func()) {
	if v.working != nil {
		return v.working, func() {}
	}
	v.store.mu.RLock()
	return v.store.data, v.store.mu.RUnlock
}

// write is only reachable through the writer interfaces.
func (v *view) write() *dataset {
	return v.working
}
