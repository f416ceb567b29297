// Package coordinator implements the dealer and co-signer state
// machines that are the heart of the beacon protocol: fanning out a
// dealer's commitment to a 2/3 quorum of peers, aggregating their
// responses via the Pedersen homomorphism, and serving the two-phase
// reveal that lets a client reconstruct and verify the result. The
// dependencies that touch the network or randomness are interfaces
// (ScalarSource, IDSource, PeerClient), as is Logger. The opening store
// and the directory are the concrete *store.Store and
// *directory.Directory types, not interfaces; time enters only through
// the clockwork.Clock the store is constructed with.
package coordinator

import (
	"context"
	"fmt"
	"math/big"

	"golang.org/x/sync/errgroup"
	"threshold.network/randbeacon/internal/beaconerr"
	"threshold.network/randbeacon/internal/curve"
	"threshold.network/randbeacon/internal/directory"
	"threshold.network/randbeacon/internal/pedersen"
	"threshold.network/randbeacon/internal/store"
)

// Coordinator runs both the dealer path (CommitRandom) and the
// co-signer path (CoCommitRandom) of the protocol, plus the reveal
// path every node serves regardless of role in a given session.
type Coordinator struct {
	directory *directory.Directory
	store     *store.Store
	peers     PeerClient
	scalars   ScalarSource
	ids       IDSource
	log       Logger
}

// Config bundles the Coordinator's dependencies. Scalars and IDs left
// nil fall back to the crypto/rand-backed production defaults, and a
// nil Log falls back to a logger that discards everything; Directory,
// Store, and PeerClient have no sensible default and must be supplied.
type Config struct {
	Directory  *directory.Directory
	Store      *store.Store
	PeerClient PeerClient
	Scalars    ScalarSource
	IDs        IDSource
	Log        Logger
}

// New constructs a Coordinator from cfg, substituting production
// defaults for any optional dependency left unset.
func New(cfg Config) *Coordinator {
	scalars := cfg.Scalars
	if scalars == nil {
		scalars = DefaultScalarSource
	}
	ids := cfg.IDs
	if ids == nil {
		ids = DefaultIDSource
	}
	log := cfg.Log
	if log == nil {
		log = noopLogger{}
	}
	return &Coordinator{
		directory: cfg.Directory,
		store:     cfg.Store,
		peers:     cfg.PeerClient,
		scalars:   scalars,
		ids:       ids,
		log:       log,
	}
}

// CommitResult is the outcome of a successful dealer session.
type CommitResult struct {
	CommitmentID        [16]byte
	Nodes               []string // self first, then the fanout peers, in directory order
	AggregateCommitment curve.GroupElement
}

// CommitRandom runs the dealer path of the protocol:
// generate a local secret, fan out to a deterministic 2/3-quorum of
// peers, aggregate their co-commitments via the dealer-overcommit
// cancellation identity, and store this node's own opening.
//
// The fan-out tolerates no peer failures: the threshold must be met
// exactly, because the reveal protocol later requires every
// contributor to serve its own opening. If any peer call fails, the
// whole session is abandoned and this node's LocalRecord is never
// written, so an abandoned commitment_id can never be partially
// revealed.
func (c *Coordinator) CommitRandom(ctx context.Context) (*CommitResult, error) {
	xd, err := c.scalars.RandomScalar()
	if err != nil {
		return nil, beaconerr.Wrap(beaconerr.Internal, "sampling dealer secret", err)
	}
	dealerCommitment, dealerOpening, err := pedersen.CommitRandom(xd)
	if err != nil {
		return nil, beaconerr.Wrap(beaconerr.Internal, "forming dealer commitment", err)
	}

	id, err := c.ids.NewCommitmentID()
	if err != nil {
		return nil, beaconerr.Wrap(beaconerr.Internal, "allocating commitment id", err)
	}

	fanoutPeers, err := c.directory.FanoutPeers()
	if err != nil {
		return nil, beaconerr.Wrap(beaconerr.Internal, "selecting fanout peers", err)
	}

	combined := make([]curve.GroupElement, len(fanoutPeers))
	group, gctx := errgroup.WithContext(ctx)
	for i, peerURL := range fanoutPeers {
		i, peerURL := i, peerURL
		group.Go(func() error {
			resp, err := c.peers.CoCommit(gctx, peerURL, id, dealerCommitment)
			if err != nil {
				return beaconerr.Wrap(beaconerr.PeerUnavailable, fmt.Sprintf("co-commit with %s", peerURL), err)
			}
			combined[i] = resp
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		c.log.Warnw("commit-random: fanout failed, abandoning session", "commitment_id", id, "error", err)
		return nil, err
	}

	// Each peer returned C_d + C_p. Summing |P| of them yields
	// |P|*C_d + sum(C_p); the dealer's own contribution must appear
	// exactly once, so the surplus (|P|-1) copies of C_d are
	// subtracted back out. What remains is the one legitimate C_d plus
	// every peer's C_p: the aggregate commitment to the sum of every
	// participant's secret. When there is no fanout at all (a
	// single-node directory), the aggregate is simply the dealer's own
	// commitment.
	var aggregate curve.GroupElement
	if len(fanoutPeers) == 0 {
		aggregate = dealerCommitment
	} else {
		aggregate = curve.Identity()
		for _, resp := range combined {
			aggregate = aggregate.Add(resp)
		}
		surplus := dealerCommitment.Mul(curve.NewScalar(big.NewInt(int64(len(fanoutPeers) - 1))))
		aggregate = aggregate.Sub(surplus)
	}

	if err := c.store.Insert(id, store.Record{
		Opening:             dealerOpening,
		AggregateCommitment: dealerCommitment,
	}); err != nil {
		return nil, err
	}

	nodes := append([]string{c.directory.SelfURL()}, fanoutPeers...)
	c.log.Infow("commit-random: session established", "commitment_id", id, "nodes", nodes)

	return &CommitResult{
		CommitmentID:        id,
		Nodes:               nodes,
		AggregateCommitment: aggregate,
	}, nil
}

// CoCommitRandom runs the peer (co-signer) path of the protocol:
// generate this node's own secret, overcommit on top
// of the dealer's commitment, store this node's own share, and return
// the combined commitment for the dealer to fold into the aggregate.
func (c *Coordinator) CoCommitRandom(ctx context.Context, id [16]byte, dealerCommitment curve.GroupElement) (curve.GroupElement, error) {
	xp, err := c.scalars.RandomScalar()
	if err != nil {
		return curve.GroupElement{}, beaconerr.Wrap(beaconerr.Internal, "sampling peer secret", err)
	}
	peerCommitment, peerOpening, err := pedersen.CommitRandom(xp)
	if err != nil {
		return curve.GroupElement{}, beaconerr.Wrap(beaconerr.Internal, "forming peer commitment", err)
	}

	if err := c.store.Insert(id, store.Record{
		Opening:             peerOpening,
		AggregateCommitment: peerCommitment,
	}); err != nil {
		c.log.Warnw("co-commit-random: conflict", "commitment_id", id)
		return curve.GroupElement{}, err
	}

	response := dealerCommitment.Add(peerCommitment)
	c.log.Infow("co-commit-random: committed", "commitment_id", id)
	return response, nil
}

// RevealResult is what a single node serves for a reveal.
type RevealResult struct {
	Opening             pedersen.Opening
	AggregateCommitment curve.GroupElement
}

// RevealRandom runs the per-node reveal: atomically take this node's
// LocalRecord for id and return it. It never aggregates across nodes;
// that reconstruction and verification is the client's job. No single
// node can unilaterally produce a reveal, and the overall session is
// only valid if every participant honors its own reveal.
func (c *Coordinator) RevealRandom(ctx context.Context, id [16]byte) (*RevealResult, error) {
	record, err := c.store.Take(id)
	if err != nil {
		c.log.Warnw("reveal-random: not found", "commitment_id", id)
		return nil, err
	}
	c.log.Infow("reveal-random: served", "commitment_id", id)
	return &RevealResult{
		Opening:             record.Opening,
		AggregateCommitment: record.AggregateCommitment,
	}, nil
}

// Directory exposes the node's directory for the "nodes"/"node"
// request-surface operations.
func (c *Coordinator) Directory() *directory.Directory {
	return c.directory
}

type noopLogger struct{}

func (noopLogger) Infow(string, ...interface{})  {}
func (noopLogger) Warnw(string, ...interface{})  {}
func (noopLogger) Errorw(string, ...interface{}) {}
