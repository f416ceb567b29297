package curve

import (
	"fmt"
	"math/big"
)

// PointSize is the fixed-width compressed encoding length of a
// GroupElement: a one-byte parity/identity tag followed by the 32-byte
// X coordinate.
const PointSize = 33

// GroupElement is a point on the secp256k1 curve, including the
// identity (point at infinity), represented the same way
// crypto/elliptic represents it: X == Y == 0.
type GroupElement struct {
	x, y *big.Int
}

// ErrMalformedPoint is returned when a byte string does not decode to
// a valid point on the curve.
type ErrMalformedPoint struct {
	Reason string
}

func (e *ErrMalformedPoint) Error() string {
	return fmt.Sprintf("malformed point: %s", e.Reason)
}

// Identity returns the group identity element.
func Identity() GroupElement {
	return GroupElement{x: big.NewInt(0), y: big.NewInt(0)}
}

// IsIdentity reports whether p is the point at infinity.
func (p GroupElement) IsIdentity() bool {
	return p.x.Sign() == 0 && p.y.Sign() == 0
}

// Equal reports whether two points have the same affine coordinates.
func (p GroupElement) Equal(other GroupElement) bool {
	return p.x.Cmp(other.x) == 0 && p.y.Cmp(other.y) == 0
}

// Add returns p + other using the curve's group law, including the
// identity-element edge cases.
func (p GroupElement) Add(other GroupElement) GroupElement {
	if p.IsIdentity() {
		return other
	}
	if other.IsIdentity() {
		return p
	}
	x, y := Secp256k1.params.Add(p.x, p.y, other.x, other.y)
	return GroupElement{x: x, y: y}
}

// Negate returns -p (the reflection of p across the X axis).
func (p GroupElement) Negate() GroupElement {
	if p.IsIdentity() {
		return p
	}
	return GroupElement{x: new(big.Int).Set(p.x), y: new(big.Int).Sub(Secp256k1.field(), p.y)}
}

// Sub returns p - other.
func (p GroupElement) Sub(other GroupElement) GroupElement {
	return p.Add(other.Negate())
}

// Mul returns s*p, the scalar multiplication of p by s.
func (p GroupElement) Mul(s Scalar) GroupElement {
	if p.IsIdentity() || s.v.Sign() == 0 {
		return Identity()
	}
	x, y := Secp256k1.params.ScalarMult(p.x, p.y, s.Bytes())
	return GroupElement{x: x, y: y}
}

// BaseMul returns s*G, scalar multiplication of the standard generator.
func BaseMul(s Scalar) GroupElement {
	if s.v.Sign() == 0 {
		return Identity()
	}
	x, y := Secp256k1.params.ScalarBaseMult(s.Bytes())
	return GroupElement{x: x, y: y}
}

// Bytes returns the canonical compressed encoding: a single tag byte
// (0x00 for the identity, 0x02/0x03 for the even/odd-Y parity of a
// regular point) followed by the 32-byte big-endian X coordinate.
func (p GroupElement) Bytes() []byte {
	out := make([]byte, PointSize)
	if p.IsIdentity() {
		return out
	}
	if p.y.Bit(0) == 0 {
		out[0] = 0x02
	} else {
		out[0] = 0x03
	}
	p.x.FillBytes(out[1:])
	return out
}

// DecodePoint parses a compressed GroupElement encoding, lifting the
// X coordinate to a full point and checking it actually lies on the
// curve. The lift-x step is the one BIP-340 uses to recover a point
// from an x-only public key.
func DecodePoint(b []byte) (GroupElement, error) {
	if len(b) != PointSize {
		return GroupElement{}, &ErrMalformedPoint{Reason: fmt.Sprintf("expected %d bytes, got %d", PointSize, len(b))}
	}

	tag := b[0]
	x := new(big.Int).SetBytes(b[1:])

	if tag == 0x00 {
		if x.Sign() != 0 {
			return GroupElement{}, &ErrMalformedPoint{Reason: "identity tag with non-zero coordinate"}
		}
		return Identity(), nil
	}
	if tag != 0x02 && tag != 0x03 {
		return GroupElement{}, &ErrMalformedPoint{Reason: "invalid tag byte"}
	}

	p := Secp256k1.field()
	if x.Cmp(p) >= 0 {
		return GroupElement{}, &ErrMalformedPoint{Reason: "x coordinate not in field"}
	}

	y, ok := liftX(x)
	if !ok {
		return GroupElement{}, &ErrMalformedPoint{Reason: "x coordinate is not on the curve"}
	}

	wantOdd := tag == 0x03
	if y.Bit(0) == 1 != wantOdd {
		y = new(big.Int).Sub(p, y)
	}

	point := GroupElement{x: x, y: y}
	if !Secp256k1.params.IsOnCurve(point.x, point.y) {
		return GroupElement{}, &ErrMalformedPoint{Reason: "decoded point fails curve equation"}
	}
	return point, nil
}

// liftX computes a square root of x^3+7 mod p, returning ok=false if
// x does not correspond to a point on the secp256k1 curve (y^2 is not
// a quadratic residue).
func liftX(x *big.Int) (y *big.Int, ok bool) {
	p := Secp256k1.field()

	rhs := new(big.Int).Exp(x, big.NewInt(3), p)
	rhs.Add(rhs, Secp256k1.b())
	rhs.Mod(rhs, p)

	// p % 4 == 3 for secp256k1, so the candidate root is rhs^((p+1)/4).
	exp := new(big.Int).Add(p, big.NewInt(1))
	exp.Div(exp, big.NewInt(4))
	candidate := new(big.Int).Exp(rhs, exp, p)

	check := new(big.Int).Exp(candidate, big.NewInt(2), p)
	if check.Cmp(rhs) != 0 {
		return nil, false
	}
	return candidate, true
}
