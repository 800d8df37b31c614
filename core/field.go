package core

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// F is the field nummus commits and proves over: the BN254 scalar
// field (ecc.BN254.ScalarField()), the field every circuit in this
// module is compiled against.
type F = fr.Element

// FromLEBytesModOrder reduces a little-endian byte slice into F.
// fr.Element.SetBytes interprets its input big-endian, so the bytes
// are reversed first.
func FromLEBytesModOrder(b []byte) F {
	rev := make([]byte, len(b))
	for i, v := range b {
		rev[len(b)-1-i] = v
	}
	var e F
	e.SetBytes(rev)
	return e
}

// BytesLE returns the little-endian byte representation of e, padded
// or truncated to 32 bytes.
func BytesLE(e F) [32]byte {
	be := e.Bytes() // canonical big-endian, 32 bytes
	var le [32]byte
	for i := 0; i < 32; i++ {
		le[i] = be[31-i]
	}
	return le
}

// CanonicalBE returns e's canonical big-endian bytes, used wherever a
// stable sort or comparison key is needed (occurrence-vector ordering,
// Merkle-cache canonicalization).
func CanonicalBE(e F) [32]byte {
	return e.Bytes()
}

// LessCanonical orders two field elements by their canonical
// big-endian representation. Used to make any operation whose inputs
// are backed by an unordered map (blockchain.keys(), blockchain.values())
// deterministic before hashing or counting.
func LessCanonical(a, b F) bool {
	ab, bb := a.Bytes(), b.Bytes()
	for i := range ab {
		if ab[i] != bb[i] {
			return ab[i] < bb[i]
		}
	}
	return false
}
