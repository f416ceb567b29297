// Package httpapi implements the request surface: thin JSON/HTTP
// adapters over the coordinator, routed with chi. No protocol logic
// lives here; every handler parses its DTO, calls one coordinator
// method, and encodes the result or maps the returned beaconerr.Kind
// to an HTTP status.
package httpapi

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"threshold.network/randbeacon/internal/beaconerr"
	"threshold.network/randbeacon/internal/curve"
	"threshold.network/randbeacon/internal/pedersen"
)

type commitRandomResponse struct {
	CommitmentID        string   `json:"commitment_id"`
	Nodes               []string `json:"nodes"`
	AggregateCommitment string   `json:"aggregate_commitment"`
}

type coCommitRandomRequest struct {
	CommitmentID string `json:"commitment_id"`
	Commitment   string `json:"commitment"`
}

type coCommitRandomResponse struct {
	Commitment string `json:"commitment"`
}

type revealRandomRequest struct {
	CommitmentID string `json:"commitment_id"`
}

type openingDTO struct {
	Value    string `json:"value"`
	Blinding string `json:"blinding"`
}

type revealRandomResponse struct {
	Opening    openingDTO `json:"opening"`
	Commitment string     `json:"commitment"`
}

type nodesResponse struct {
	Self      string   `json:"self"`
	Peers     []string `json:"peers"`
	Threshold int      `json:"threshold"`
}

type nodeResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func encodePoint(p curve.GroupElement) string {
	return hex.EncodeToString(p.Bytes())
}

func decodePoint(s string) (curve.GroupElement, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return curve.GroupElement{}, beaconerr.Wrap(beaconerr.MalformedPoint, "invalid hex", err)
	}
	p, err := curve.DecodePoint(b)
	if err != nil {
		return curve.GroupElement{}, beaconerr.Wrap(beaconerr.MalformedPoint, "decoding point", err)
	}
	return p, nil
}

func encodeScalar(s curve.Scalar) string {
	return hex.EncodeToString(s.Bytes())
}

func decodeScalar(s string) (curve.Scalar, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return curve.Scalar{}, beaconerr.Wrap(beaconerr.MalformedScalar, "invalid hex", err)
	}
	v, err := curve.DecodeScalar(b)
	if err != nil {
		return curve.Scalar{}, beaconerr.Wrap(beaconerr.MalformedScalar, "decoding scalar", err)
	}
	return v, nil
}

func encodeOpening(o pedersen.Opening) openingDTO {
	return openingDTO{Value: encodeScalar(o.Value), Blinding: encodeScalar(o.Blinding)}
}

func encodeID(id [16]byte) string {
	return uuid.UUID(id).String()
}

func decodeID(s string) ([16]byte, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return [16]byte{}, fmt.Errorf("invalid commitment id: %w", err)
	}
	return [16]byte(u), nil
}
