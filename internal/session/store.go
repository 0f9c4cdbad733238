// Package session owns the per-operator conversation records.
package session

import (
	"sync"

	"github.com/tuanona/kasir-bot/internal/model"
)

// Store holds one Session per operator id. Update is the only way to
// mutate a record and runs with exclusive access to that operator's key.
type Store interface {
	// Update runs fn against the operator's session, creating the default
	// record first if none exists. Calls for the same id are serialized.
	Update(operatorID int64, fn func(s *model.Session))
	// Get returns a copy of the session and whether it exists.
	Get(operatorID int64) (model.Session, bool)
	// Reset puts an existing session back to the welcome view with an empty order.
	Reset(operatorID int64)
	Len() int
}

type entry struct {
	mu      sync.Mutex
	session model.Session
}

// MemoryStore is an in-process Store with one mutex per operator.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[int64]*entry)}
}

func (m *MemoryStore) lookup(operatorID int64, create bool) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[operatorID]
	if !ok && create {
		e = &entry{session: model.NewSession()}
		m.entries[operatorID] = e
	}
	return e
}

func (m *MemoryStore) Update(operatorID int64, fn func(s *model.Session)) {
	e := m.lookup(operatorID, true)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.session)
}

func (m *MemoryStore) Get(operatorID int64) (model.Session, bool) {
	e := m.lookup(operatorID, false)
	if e == nil {
		return model.Session{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.session
	s.Cart = s.Cart.Clone()
	return s, true
}

func (m *MemoryStore) Reset(operatorID int64) {
	e := m.lookup(operatorID, false)
	if e == nil {
		return
	}
	e.mu.Lock()
	e.session.ResetFull()
	e.mu.Unlock()
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

var _ Store = (*MemoryStore)(nil)
