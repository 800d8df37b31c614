package core

import "crypto/sha256"

// HashToField computes reduce(SHA256(b)), the primitive Address and
// SerialNumber derivation and Merkle leaf hashing are all built from.
func HashToField(b []byte) F {
	sum := sha256.Sum256(b)
	return FromLEBytesModOrder(sum[:])
}

// hashLeaf produces the 32-byte SHA-256 leaf hash for a single field
// element leaf: little-endian byte representation, then SHA-256.
func hashLeaf(e F) [32]byte {
	le := BytesLE(e)
	return sha256.Sum256(le[:])
}

// hashPair hashes the concatenation of two 32-byte node hashes to
// produce their parent in the Merkle tree.
func hashPair(left, right [32]byte) [32]byte {
	var buf [64]byte
	copy(buf[:32], left[:])
	copy(buf[32:], right[:])
	return sha256.Sum256(buf[:])
}
