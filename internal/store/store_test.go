package store

import (
	"math/big"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"threshold.network/randbeacon/internal/beaconerr"
	"threshold.network/randbeacon/internal/curve"
	"threshold.network/randbeacon/internal/pedersen"
	"threshold.network/randbeacon/internal/testutils"
)

func testRecord(v int64) Record {
	value := curve.NewScalar(big.NewInt(v))
	commitment, opening, _ := pedersen.CommitRandom(value)
	return Record{Opening: opening, AggregateCommitment: commitment}
}

func TestInsertThenTakeRoundTrips(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(clock, time.Minute)

	var id CommitmentID
	id[0] = 1
	rec := testRecord(7)

	if err := s.Insert(id, rec); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.Take(id)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	testutils.AssertBoolsEqual(t, "taken opening matches inserted", true, got.Opening.Value.Equal(rec.Opening.Value))
}

func TestTakeIsOneShot(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(clock, time.Minute)

	var id CommitmentID
	id[0] = 2
	if err := s.Insert(id, testRecord(1)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := s.Take(id); err != nil {
		t.Fatalf("first Take: %v", err)
	}

	_, err := s.Take(id)
	if err == nil {
		t.Fatal("expected NotFound on second Take")
	}
	testutils.AssertIntsEqual(t, "second take kind", int(beaconerr.NotFound), int(beaconerr.KindOf(err)))
}

func TestInsertRejectsLiveConflict(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(clock, time.Minute)

	var id CommitmentID
	id[0] = 3
	if err := s.Insert(id, testRecord(1)); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	err := s.Insert(id, testRecord(2))
	if err == nil {
		t.Fatal("expected Conflict on duplicate insert")
	}
	testutils.AssertIntsEqual(t, "conflict kind", int(beaconerr.Conflict), int(beaconerr.KindOf(err)))
}

func TestExpiredEntryIsNotFound(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(clock, time.Minute)

	var id CommitmentID
	id[0] = 4
	if err := s.Insert(id, testRecord(1)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	clock.Advance(2 * time.Minute)

	_, err := s.Take(id)
	if err == nil {
		t.Fatal("expected NotFound after TTL expiry")
	}
	testutils.AssertIntsEqual(t, "expired kind", int(beaconerr.NotFound), int(beaconerr.KindOf(err)))
}

func TestInsertAfterExpiryIsAllowed(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(clock, time.Minute)

	var id CommitmentID
	id[0] = 5
	if err := s.Insert(id, testRecord(1)); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	clock.Advance(2 * time.Minute)

	if err := s.Insert(id, testRecord(2)); err != nil {
		t.Fatalf("insert after expiry should succeed, got %v", err)
	}
}

func TestReapRemovesOnlyExpiredEntries(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(clock, time.Minute)

	var live, expired CommitmentID
	live[0], expired[0] = 6, 7

	if err := s.Insert(expired, testRecord(1)); err != nil {
		t.Fatalf("Insert expired: %v", err)
	}
	clock.Advance(2 * time.Minute)
	if err := s.Insert(live, testRecord(2)); err != nil {
		t.Fatalf("Insert live: %v", err)
	}

	removed := s.Reap()
	testutils.AssertIntsEqual(t, "reaped count", 1, removed)
	testutils.AssertIntsEqual(t, "remaining entries", 1, s.Len())
}
