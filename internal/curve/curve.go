// Package curve implements the group and scalar arithmetic the beacon
// protocol is built on: secp256k1 points and integers modulo the curve
// order, plus the two fixed, independent generators G and H that every
// Pedersen commitment in this system is computed against.
package curve

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

// Curve wraps the secp256k1 parameters this module is fixed to: one
// curve per deployment, never negotiated at runtime. The wrapper
// exists so the rest of the codebase never imports btcec directly.
type Curve struct {
	params *btcec.KoblitzCurve
}

// Secp256k1 is the process-wide curve every Scalar and GroupElement in
// this package is defined against.
var Secp256k1 = Curve{params: btcec.S256()}

// Order returns the prime order q of the secp256k1 group.
func (c Curve) Order() *big.Int {
	return new(big.Int).Set(c.params.N)
}

func (c Curve) field() *big.Int {
	return c.params.P
}

func (c Curve) b() *big.Int {
	return c.params.B
}

func (c Curve) basePoint() GroupElement {
	return GroupElement{
		x: new(big.Int).Set(c.params.Gx),
		y: new(big.Int).Set(c.params.Gy),
	}
}
