package curve

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ScalarSize is the fixed-width encoding length of a Scalar: secp256k1's
// order q fits in 32 bytes.
const ScalarSize = 32

// Scalar is an integer modulo the curve's prime order q.
type Scalar struct {
	v *big.Int
}

// ErrMalformedScalar is returned when a byte string cannot be decoded
// into a canonical, reduced Scalar.
type ErrMalformedScalar struct {
	Reason string
}

func (e *ErrMalformedScalar) Error() string {
	return fmt.Sprintf("malformed scalar: %s", e.Reason)
}

// ZeroScalar returns the additive identity.
func ZeroScalar() Scalar {
	return Scalar{v: big.NewInt(0)}
}

// NewScalar reduces an arbitrary integer modulo the curve order. It
// performs no sampling: the result is exactly as random as v.
func NewScalar(v *big.Int) Scalar {
	return Scalar{v: new(big.Int).Mod(v, Secp256k1.Order())}
}

// RandomScalar samples a scalar uniformly over [0, q) from a
// cryptographically secure source. Rejection sampling is used instead
// of naive modular reduction so that the result is not biased: a
// candidate is redrawn whenever it falls in the small tail above the
// largest multiple of q that fits in ScalarSize bytes.
func RandomScalar() (Scalar, error) {
	q := Secp256k1.Order()
	// Largest multiple of q strictly less than 2^256; candidates at or
	// above it are discarded to avoid modular bias.
	limit := new(big.Int).Lsh(big.NewInt(1), ScalarSize*8)
	tail := new(big.Int).Mod(limit, q)
	ceiling := new(big.Int).Sub(limit, tail)

	buf := make([]byte, ScalarSize)
	for {
		if _, err := rand.Read(buf); err != nil {
			return Scalar{}, fmt.Errorf("curve: reading random scalar: %w", err)
		}
		candidate := new(big.Int).SetBytes(buf)
		if candidate.Cmp(ceiling) < 0 {
			return Scalar{v: new(big.Int).Mod(candidate, q)}, nil
		}
	}
}

// DecodeScalar parses a fixed-width big-endian encoding of a Scalar.
// It fails if the input is the wrong length or is not already reduced
// modulo q, so that encode/decode round-trips on exactly one canonical
// representative per value.
func DecodeScalar(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, &ErrMalformedScalar{Reason: fmt.Sprintf("expected %d bytes, got %d", ScalarSize, len(b))}
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(Secp256k1.Order()) >= 0 {
		return Scalar{}, &ErrMalformedScalar{Reason: "value not reduced modulo curve order"}
	}
	return Scalar{v: v}, nil
}

// Bytes returns the canonical fixed-width big-endian encoding.
func (s Scalar) Bytes() []byte {
	buf := make([]byte, ScalarSize)
	s.v.FillBytes(buf)
	return buf
}

// Add returns s + other mod q.
func (s Scalar) Add(other Scalar) Scalar {
	return NewScalar(new(big.Int).Add(s.v, other.v))
}

// Sub returns s - other mod q.
func (s Scalar) Sub(other Scalar) Scalar {
	return NewScalar(new(big.Int).Sub(s.v, other.v))
}

// Negate returns -s mod q.
func (s Scalar) Negate() Scalar {
	return NewScalar(new(big.Int).Neg(s.v))
}

// Equal reports whether two scalars represent the same residue.
func (s Scalar) Equal(other Scalar) bool {
	return s.v.Cmp(other.v) == 0
}

// BigInt returns a copy of the underlying value. Because package curve
// is internal, it is visible only within this module.
func (s Scalar) BigInt() *big.Int {
	return new(big.Int).Set(s.v)
}
