package curve

import (
	"crypto/sha256"
	"math/big"
)

// generatorHDST is the domain-separation tag fixing this deployment's
// second Pedersen generator H. Changing it changes H, which would
// invalidate every previously issued commitment. It is a one-time
// cryptographic choice baked into the binary.
const generatorHDST = "threshold-network/randbeacon/generator-H/v1"

// G is the standard secp256k1 base point, the first Pedersen generator.
func G() GroupElement {
	return Secp256k1.basePoint()
}

var h = deriveH()

// H is the second Pedersen generator. Its discrete log base G is
// unknown to anyone: it is derived by hashing a fixed
// domain-separation string plus a counter to a candidate X coordinate,
// incrementing the counter until that coordinate lifts to a valid
// curve point (the same lift-x step DecodePoint uses). Nobody, including whoever fixed
// the DST, learns a scalar r such that H = r*G, because no
// discrete-log computation occurs anywhere in the derivation.
func H() GroupElement {
	return h
}

func deriveH() GroupElement {
	counter := uint32(0)
	for {
		seed := sha256.Sum256(append([]byte(generatorHDST), encodeCounter(counter)...))
		x := new(big.Int).SetBytes(seed[:])
		x.Mod(x, Secp256k1.field())
		if y, ok := liftX(x); ok {
			return GroupElement{x: x, y: y}
		}
		counter++
	}
}

func encodeCounter(c uint32) []byte {
	return []byte{byte(c >> 24), byte(c >> 16), byte(c >> 8), byte(c)}
}
