// Package pedersen implements the additively homomorphic Pedersen
// commitment scheme this beacon's commit/reveal protocol is built on:
// C = blinding*G + value*H, for the two fixed independent generators
// defined in package curve. Every function here is pure and
// deterministic given its inputs and the fixed generators, following
// the same committer/receiver split this corpus's EC Pedersen
// reference implementation uses, collapsed into a single stateless API
// since this protocol has no interactive receiver-chooses-H phase: H
// is a process-wide constant.
package pedersen

import "threshold.network/randbeacon/internal/curve"

// Opening is the pair (value, blinding) that opens a Commitment. In
// the aggregated setting described by the protocol, a node's stored
// Opening is its own share of the aggregate: the componentwise sum of
// secrets and blindings it individually contributed.
type Opening struct {
	Value    curve.Scalar
	Blinding curve.Scalar
}

// Commitment is the group element produced by Commit. It is binding
// and hiding under the discrete-log assumption and the fact that the
// discrete log of H base G is unknown.
type Commitment = curve.GroupElement

// Commit returns blinding*G + value*H.
func Commit(value, blinding curve.Scalar) Commitment {
	return curve.BaseMul(blinding).Add(curve.H().Mul(value))
}

// CommitRandom samples a fresh blinding factor and returns both the
// resulting commitment and the full opening needed to later reveal it.
func CommitRandom(value curve.Scalar) (Commitment, Opening, error) {
	blinding, err := curve.RandomScalar()
	if err != nil {
		return Commitment{}, Opening{}, err
	}
	return Commit(value, blinding), Opening{Value: value, Blinding: blinding}, nil
}

// Add returns the commitment to the sum of the two underlying openings,
// exploiting the scheme's additive homomorphism:
// Commit(x1,r1) + Commit(x2,r2) == Commit(x1+x2, r1+r2).
func Add(c1, c2 Commitment) Commitment {
	return c1.Add(c2)
}

// Sub returns the commitment to the difference of the two underlying
// openings.
func Sub(c1, c2 Commitment) Commitment {
	return c1.Sub(c2)
}

// AddOpenings combines two openings componentwise, matching Add on
// their corresponding commitments.
func AddOpenings(o1, o2 Opening) Opening {
	return Opening{
		Value:    o1.Value.Add(o2.Value),
		Blinding: o1.Blinding.Add(o2.Blinding),
	}
}

// SubOpenings combines two openings componentwise, matching Sub on
// their corresponding commitments.
func SubOpenings(o1, o2 Opening) Opening {
	return Opening{
		Value:    o1.Value.Sub(o2.Value),
		Blinding: o1.Blinding.Sub(o2.Blinding),
	}
}

// Verify recomputes Commit(opening) and checks it matches commitment.
func Verify(commitment Commitment, opening Opening) bool {
	return Commit(opening.Value, opening.Blinding).Equal(commitment)
}
