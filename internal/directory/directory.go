// Package directory holds the peer directory: the ordered, immutable
// list of node URLs a cohort agrees on at startup, and the threshold
// arithmetic derived from its size. It holds URLs only: no public key
// shares, since this protocol carries no group signing key.
package directory

import (
	"fmt"
)

// Directory is an ordered list of peer URLs together with this node's
// own identity within it. It is immutable once constructed.
type Directory struct {
	self  string
	peers []string // full ordered list, self included, directory order preserved
}

// New builds a Directory from the full ordered peer list and this
// node's own URL, which must appear in the list exactly once.
func New(selfURL string, allPeers []string) (*Directory, error) {
	count := 0
	for _, p := range allPeers {
		if p == selfURL {
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("directory: self_url %q must appear exactly once in peers, appeared %d times", selfURL, count)
	}

	peers := make([]string, len(allPeers))
	copy(peers, allPeers)

	return &Directory{self: selfURL, peers: peers}, nil
}

// SelfURL returns this node's own advertised address.
func (d *Directory) SelfURL() string {
	return d.self
}

// All returns every node URL in the cohort, self included, in
// directory order.
func (d *Directory) All() []string {
	out := make([]string, len(d.peers))
	copy(out, d.peers)
	return out
}

// Others returns every peer URL except self, in directory order.
func (d *Directory) Others() []string {
	out := make([]string, 0, len(d.peers)-1)
	for _, p := range d.peers {
		if p != d.self {
			out = append(out, p)
		}
	}
	return out
}

// Size returns N, the total cohort size including self.
func (d *Directory) Size() int {
	return len(d.peers)
}

// Threshold returns M = ceil(2*N/3), the number of participating nodes
// (dealer included) required for a valid session.
func (d *Directory) Threshold() int {
	n := d.Size()
	return (2*n + 2) / 3
}

// FanoutPeers returns the first Threshold()-1 entries of Others(), the
// deterministic subset of peers the dealer asks to co-commit. The
// order is fixed directory order, so sessions are reproducible in
// tests; the core performs no health-based skipping, so failure of
// any chosen peer aborts the session.
func (d *Directory) FanoutPeers() ([]string, error) {
	others := d.Others()
	m := d.Threshold()
	need := m - 1
	if need > len(others) {
		return nil, fmt.Errorf("directory: threshold %d requires %d peers but only %d are known", m, need, len(others))
	}
	return others[:need], nil
}
