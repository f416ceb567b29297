package curve

import (
	"math/big"
	"testing"

	"threshold.network/randbeacon/internal/testutils"
)

func TestPointEncodeDecodeRoundTrip(t *testing.T) {
	s := NewScalar(big.NewInt(42))
	p := BaseMul(s)

	decoded, err := DecodePoint(p.Bytes())
	if err != nil {
		t.Fatalf("DecodePoint: %v", err)
	}
	testutils.AssertBoolsEqual(t, "round-tripped point equality", true, p.Equal(decoded))
}

func TestIdentityEncodeDecodeRoundTrip(t *testing.T) {
	id := Identity()
	decoded, err := DecodePoint(id.Bytes())
	if err != nil {
		t.Fatalf("DecodePoint: %v", err)
	}
	testutils.AssertBoolsEqual(t, "identity is identity", true, decoded.IsIdentity())
}

func TestDecodePointRejectsWrongLength(t *testing.T) {
	_, err := DecodePoint(make([]byte, PointSize-1))
	if err == nil {
		t.Fatal("expected error decoding short point")
	}
}

func TestDecodePointRejectsBadTag(t *testing.T) {
	buf := make([]byte, PointSize)
	buf[0] = 0x07
	_, err := DecodePoint(buf)
	if err == nil {
		t.Fatal("expected error decoding point with invalid tag")
	}
}

func TestDecodePointRejectsIdentityTagWithNonZeroCoordinate(t *testing.T) {
	buf := make([]byte, PointSize)
	buf[0] = 0x00
	buf[PointSize-1] = 0x01
	_, err := DecodePoint(buf)
	if err == nil {
		t.Fatal("expected error decoding identity tag with non-zero coordinate")
	}
}

func TestDecodePointRejectsXNotOnCurve(t *testing.T) {
	// x == field prime - 1 has rhs = (p-1)^3+7 mod p == -1+7 == 6 mod p,
	// which is not a quadratic residue for secp256k1's prime (p % 4 ==
	// 3, so exactly one of {6, -6} is a residue; 6 is not, which
	// liftX's candidate-and-verify check confirms deterministically
	// regardless of which half it falls in, since DecodePoint rejects
	// it as soon as the check fails).
	x := new(big.Int).Sub(Secp256k1.field(), big.NewInt(1))
	if _, ok := liftX(x); ok {
		t.Skip("chosen x happens to be on the curve in this parametrization")
	}

	buf := make([]byte, PointSize)
	buf[0] = 0x02
	x.FillBytes(buf[1:])
	_, err := DecodePoint(buf)
	if err == nil {
		t.Fatal("expected error decoding x not on curve")
	}
}

func TestAddSubInverse(t *testing.T) {
	a := BaseMul(NewScalar(big.NewInt(7)))
	b := BaseMul(NewScalar(big.NewInt(11)))

	sum := a.Add(b)
	back := sum.Sub(b)
	testutils.AssertBoolsEqual(t, "(a+b)-b == a", true, back.Equal(a))
}

func TestMulDistributesOverAdd(t *testing.T) {
	g := BaseMul(NewScalar(big.NewInt(1)))
	three := NewScalar(big.NewInt(3))

	lhs := g.Mul(three)
	rhs := g.Add(g).Add(g)
	testutils.AssertBoolsEqual(t, "3*G == G+G+G", true, lhs.Equal(rhs))
}

func TestIdentityIsAdditiveUnit(t *testing.T) {
	p := BaseMul(NewScalar(big.NewInt(99)))
	testutils.AssertBoolsEqual(t, "p + identity == p", true, p.Add(Identity()).Equal(p))
}

func TestHIsIndependentOfG(t *testing.T) {
	g := G()
	h := H()
	testutils.AssertBoolsEqual(t, "H != G", false, g.Equal(h))
	testutils.AssertBoolsEqual(t, "H is not identity", false, h.IsIdentity())
}
