// Package httpclient implements coordinator.PeerClient over plain
// JSON/HTTP, the transport every node in the cohort speaks to every
// other node. A fresh *http.Client with a bounded per-call timeout is
// used instead of the zero-value default client, following this
// corpus's convention of never trusting the default transport's
// unbounded timeouts in a networked service.
package httpclient

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"threshold.network/randbeacon/internal/beaconerr"
	"threshold.network/randbeacon/internal/curve"
)

// DefaultTimeout bounds a single co-commit-random round trip.
const DefaultTimeout = 10 * time.Second

// Client is a coordinator.PeerClient backed by net/http.
type Client struct {
	http    *http.Client
	timeout time.Duration
}

// New constructs a Client with the given per-call timeout. A zero
// timeout falls back to DefaultTimeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{http: &http.Client{}, timeout: timeout}
}

type coCommitRequest struct {
	CommitmentID string `json:"commitment_id"`
	Commitment   string `json:"commitment"`
}

type coCommitResponse struct {
	Commitment string `json:"commitment"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CoCommit posts a co-commit-random request to peerURL and decodes the
// combined commitment it returns. Any failure (dial, timeout, decode,
// or any status other than 200) is reported as a beaconerr.Error of Kind
// PeerUnavailable; the coordinator never has to distinguish transport
// failure from peer-side rejection.
func (c *Client) CoCommit(ctx context.Context, peerURL string, id [16]byte, dealerCommitment curve.GroupElement) (curve.GroupElement, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqBody, err := json.Marshal(coCommitRequest{
		CommitmentID: uuid.UUID(id).String(),
		Commitment:   hex.EncodeToString(dealerCommitment.Bytes()),
	})
	if err != nil {
		return curve.GroupElement{}, beaconerr.Wrap(beaconerr.Internal, "encoding co-commit request", err)
	}

	url := peerURL + "/co-commit-random"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return curve.GroupElement{}, beaconerr.Wrap(beaconerr.Internal, "building co-commit request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return curve.GroupElement{}, beaconerr.Wrap(beaconerr.PeerUnavailable, fmt.Sprintf("calling %s", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return curve.GroupElement{}, beaconerr.New(beaconerr.PeerUnavailable,
			fmt.Sprintf("%s returned %d: %s", url, resp.StatusCode, eb.Message))
	}

	var body coCommitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return curve.GroupElement{}, beaconerr.Wrap(beaconerr.PeerUnavailable, fmt.Sprintf("decoding response from %s", url), err)
	}

	commitment, err := decodeCommitment(body.Commitment)
	if err != nil {
		return curve.GroupElement{}, beaconerr.Wrap(beaconerr.PeerUnavailable, fmt.Sprintf("%s returned malformed commitment", url), err)
	}
	return commitment, nil
}

func decodeCommitment(s string) (curve.GroupElement, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return curve.GroupElement{}, err
	}
	return curve.DecodePoint(b)
}
