// Package store implements the opening store: a keyed, TTL-bounded map
// from commitment id to the local opening material a node is holding
// for an in-flight session. Its concurrency shape is a mutex-guarded
// map that rejects an insert against an already-occupied key, with TTL
// expiry and an atomic take-on-read operation.
package store

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"threshold.network/randbeacon/internal/beaconerr"
	"threshold.network/randbeacon/internal/curve"
	"threshold.network/randbeacon/internal/pedersen"
)

// CommitmentID identifies a session across every participating node.
type CommitmentID = [16]byte

// Record is the local opening material a node keeps for one
// commitment id between the commit phase and the reveal phase.
type Record struct {
	Opening             pedersen.Opening
	AggregateCommitment curve.GroupElement
}

type entry struct {
	record    Record
	expiresAt time.Time
}

// Store is a concurrency-safe, TTL-bounded map of CommitmentID to
// Record. The zero value is not usable; construct with New.
type Store struct {
	mu      sync.Mutex
	entries map[CommitmentID]entry
	clock   clockwork.Clock
	ttl     time.Duration
}

// New constructs a Store whose entries live for ttl after insertion,
// as measured by clock. Pass clockwork.NewRealClock() in production
// and a clockwork.FakeClock in tests that need to exercise expiry
// deterministically.
func New(clock clockwork.Clock, ttl time.Duration) *Store {
	return &Store{
		entries: make(map[CommitmentID]entry),
		clock:   clock,
		ttl:     ttl,
	}
}

// Insert stores a new Record under id. Inserting against an id that
// already has a live (non-expired) entry is rejected with a Conflict
// error and leaves the existing entry untouched. Ids are fresh 128-bit
// randoms, so a collision here means either a replay or a programming
// error, never a legitimate race between correct peers.
func (s *Store) Insert(id CommitmentID, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[id]; ok && s.clock.Now().Before(e.expiresAt) {
		return beaconerr.New(beaconerr.Conflict, "a record already exists for this commitment id")
	}

	s.entries[id] = entry{
		record:    record,
		expiresAt: s.clock.Now().Add(s.ttl),
	}
	return nil
}

// Take atomically looks up and removes the record for id. It returns
// NotFound if no live entry exists, whether because none was ever
// inserted, it already expired, or it was already taken by an earlier
// reveal. Reveal is one-shot per node by construction of this method.
func (s *Store) Take(id CommitmentID) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return Record{}, beaconerr.New(beaconerr.NotFound, "no record for commitment id")
	}
	delete(s.entries, id)

	if !s.clock.Now().Before(e.expiresAt) {
		return Record{}, beaconerr.New(beaconerr.NotFound, "record expired")
	}
	return e.record, nil
}

// Reap removes all expired entries. It is safe to call concurrently
// with Insert/Take and is intended to be driven by a periodic
// background goroutine so that abandoned sessions do not accumulate
// indefinitely between reveals.
func (s *Store) Reap() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries currently held, live or expired
// but not yet reaped. Intended for metrics/tests, not protocol logic.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
