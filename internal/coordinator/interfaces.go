package coordinator

import (
	"context"

	"threshold.network/randbeacon/internal/curve"
)

// ScalarSource abstracts the cryptographically secure scalar
// generator, so tests can substitute a deterministic source without
// touching crypto/rand.
type ScalarSource interface {
	RandomScalar() (curve.Scalar, error)
}

// cryptoScalarSource is the production ScalarSource, backed by
// package curve's rejection-sampled reader of crypto/rand.
type cryptoScalarSource struct{}

func (cryptoScalarSource) RandomScalar() (curve.Scalar, error) {
	return curve.RandomScalar()
}

// DefaultScalarSource is the production ScalarSource used outside of
// tests.
var DefaultScalarSource ScalarSource = cryptoScalarSource{}

// IDSource abstracts generation of a fresh, uniformly random
// CommitmentID for a new dealer session.
type IDSource interface {
	NewCommitmentID() ([16]byte, error)
}

// PeerClient is the single outbound operation the dealer needs: ask a
// peer to co-commit for a session. Transport errors, timeouts, and
// non-success responses are all represented as a beaconerr.Error of
// Kind PeerUnavailable; the coordinator never sees net/http types.
type PeerClient interface {
	CoCommit(ctx context.Context, peerURL string, id [16]byte, dealerCommitment curve.GroupElement) (curve.GroupElement, error)
}

// Logger is the minimal structured-logging surface the coordinator
// needs. *zap.SugaredLogger satisfies it directly.
type Logger interface {
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}
