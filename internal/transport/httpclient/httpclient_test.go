package httpclient

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"threshold.network/randbeacon/internal/beaconerr"
	"threshold.network/randbeacon/internal/curve"
	"threshold.network/randbeacon/internal/pedersen"
	"threshold.network/randbeacon/internal/testutils"
)

func TestCoCommitDecodesPeerResponse(t *testing.T) {
	expected, _, err := pedersen.CommitRandom(curve.NewScalar(big.NewInt(9)))
	if err != nil {
		t.Fatalf("pedersen.CommitRandom: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/co-commit-random" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(coCommitResponse{Commitment: encodeHex(expected)})
	}))
	defer srv.Close()

	client := New(time.Second)
	var id [16]byte
	id[0] = 1
	got, err := client.CoCommit(context.Background(), srv.URL, id, curve.Identity())
	if err != nil {
		t.Fatalf("CoCommit: %v", err)
	}
	testutils.AssertBoolsEqual(t, "decoded commitment matches server response", true, got.Equal(expected))
}

func TestCoCommitReportsPeerUnavailableOnNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(errorBody{Error: "internal", Message: "boom"})
	}))
	defer srv.Close()

	client := New(time.Second)
	var id [16]byte
	_, err := client.CoCommit(context.Background(), srv.URL, id, curve.Identity())
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
	testutils.AssertIntsEqual(t, "error kind", int(beaconerr.PeerUnavailable), int(beaconerr.KindOf(err)))
}

func TestCoCommitReportsPeerUnavailableOnDialFailure(t *testing.T) {
	client := New(50 * time.Millisecond)
	var id [16]byte
	_, err := client.CoCommit(context.Background(), "http://127.0.0.1:1", id, curve.Identity())
	if err == nil {
		t.Fatal("expected error dialing an unreachable address")
	}
	testutils.AssertIntsEqual(t, "error kind", int(beaconerr.PeerUnavailable), int(beaconerr.KindOf(err)))
}

func encodeHex(p curve.GroupElement) string {
	return hex.EncodeToString(p.Bytes())
}
