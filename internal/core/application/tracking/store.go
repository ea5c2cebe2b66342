// Package tracking keeps the in-memory delivery state of every package that
// is being launched, monitored or collected.
//
// A single Store is created at process start and injected into every
// component that needs it. Multi-step operations on one package hold the
// package's lock for their whole duration, so a reset or pickup can never
// interleave with a monitor's terminal cleanup.
package tracking

import (
	"sync"
	"time"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/tower"
)

// DefaultStatus is reported for packages the store knows nothing about.
const DefaultStatus = "Ready"

// Status values written by the delivery flow.
const (
	StatusProcessing  = "Processing"
	StatusDelivered   = "Delivered"
	StatusFailed      = "Failed"
	StatusUnreachable = "Unreachable"
)

// Entry is a snapshot of one package's tracking state.
type Entry struct {
	Status          string
	CredentialReady bool
	Rack            *kernel.RackSlot
	Cycle           *kernel.CycleID
	Endpoint        *tower.ControlEndpoint
	// RemoteStatus is the last status the tower reported for the cycle.
	RemoteStatus string
	PolledAt     time.Time
	StartedAt    time.Time
	UpdatedAt    time.Time
}

type packageLock struct {
	mu   sync.Mutex
	refs int
}

// Store is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry
	locks   map[string]*packageLock
	now     func() time.Time
}

func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock lets tests pin timestamps.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		entries: make(map[string]*Entry),
		locks:   make(map[string]*packageLock),
		now:     now,
	}
}

// Lock serialises work on one package id and returns the matching unlock.
// Locks of unrelated packages never contend beyond the map lookup.
func (s *Store) Lock(packageID string) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[packageID]
	if !ok {
		l = &packageLock{}
		s.locks[packageID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			s.mu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(s.locks, packageID)
			}
			s.mu.Unlock()
		})
	}
}

// Snapshot returns a copy of the entry. The boolean is false for unknown packages.
func (s *Store) Snapshot(packageID string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[packageID]
	if !ok {
		return Entry{Status: DefaultStatus}, false
	}
	return copyEntry(e), true
}

// SetPendingRack records the rack chosen for a launch before the tower has
// confirmed it. Any earlier cycle of the package is forgotten.
func (s *Store) SetPendingRack(packageID string, rack kernel.RackSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	r := rack
	s.entries[packageID] = &Entry{
		Status:    DefaultStatus,
		Rack:      &r,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Begin opens a new delivery cycle in Processing and returns its id.
func (s *Store) Begin(packageID string, rack kernel.RackSlot, endpoint tower.ControlEndpoint) kernel.CycleID {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	cycle := kernel.NewCycleID()
	r, ep := rack, endpoint
	s.entries[packageID] = &Entry{
		Status:    StatusProcessing,
		Rack:      &r,
		Cycle:     &cycle,
		Endpoint:  &ep,
		StartedAt: now,
		UpdatedAt: now,
	}
	return cycle
}

// IsCurrent reports whether cycle is the package's active delivery cycle.
func (s *Store) IsCurrent(packageID string, cycle kernel.CycleID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[packageID]
	return ok && e.Cycle != nil && e.Cycle.IsEqual(cycle)
}

// SetStatus updates the status of the active cycle. Updates for any other
// cycle are dropped and reported as false.
func (s *Store) SetStatus(packageID string, cycle kernel.CycleID, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.current(packageID, cycle)
	if !ok {
		return false
	}
	e.Status = status
	e.UpdatedAt = s.now()
	return true
}

// RecordRemoteStatus keeps the latest tower status of the active cycle. It
// never moves Status; only the outcome handlers do that.
func (s *Store) RecordRemoteStatus(packageID string, cycle kernel.CycleID, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.current(packageID, cycle)
	if !ok {
		return false
	}
	e.RemoteStatus = status
	e.PolledAt = s.now()
	return true
}

// MarkCredentialReady flips the credential flag of the active cycle once.
// It returns false when the flag was already set or the cycle is stale.
func (s *Store) MarkCredentialReady(packageID string, cycle kernel.CycleID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.current(packageID, cycle)
	if !ok || e.CredentialReady {
		return false
	}
	e.CredentialReady = true
	e.UpdatedAt = s.now()
	return true
}

// DropRack forgets the rack of the active cycle after the ledger gave it back.
func (s *Store) DropRack(packageID string, cycle kernel.CycleID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.current(packageID, cycle)
	if !ok {
		return false
	}
	e.Rack = nil
	e.UpdatedAt = s.now()
	return true
}

// Restore rebuilds tracking for a package whose delivery was completed
// outside of a monitored cycle (e.g. by reconciliation after a restart).
func (s *Store) Restore(packageID string, status string, rack *kernel.RackSlot, credentialReady bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[packageID]; ok && e.Cycle != nil {
		e.Status = status
		e.CredentialReady = e.CredentialReady || credentialReady
		e.UpdatedAt = s.now()
		return
	}
	now := s.now()
	var r *kernel.RackSlot
	if rack != nil {
		v := *rack
		r = &v
	}
	s.entries[packageID] = &Entry{
		Status:          status,
		CredentialReady: credentialReady,
		Rack:            r,
		StartedAt:       now,
		UpdatedAt:       now,
	}
}

// Clear forgets everything about the package, invalidating its cycle.
func (s *Store) Clear(packageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, packageID)
}

// Len returns the number of tracked packages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) current(packageID string, cycle kernel.CycleID) (*Entry, bool) {
	e, ok := s.entries[packageID]
	if !ok || e.Cycle == nil || !e.Cycle.IsEqual(cycle) {
		return nil, false
	}
	return e, true
}

func copyEntry(e *Entry) Entry {
	out := *e
	if e.Rack != nil {
		r := *e.Rack
		out.Rack = &r
	}
	if e.Cycle != nil {
		c := *e.Cycle
		out.Cycle = &c
	}
	if e.Endpoint != nil {
		ep := *e.Endpoint
		out.Endpoint = &ep
	}
	return out
}
