package core

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
)

// GenerateAlpha derives the public Fiat-Shamir challenge alpha used by
// AssetCircuit's reciprocal-sum identity from the current set of
// blockchain transaction roots. Two independent networks that have
// recorded the same roots derive the same alpha, without either
// needing to exchange anything beyond the roots themselves: the
// leaves are canonically sorted before hashing, so only the set of
// roots matters, not the order the ledger happened to record them in.
//
// The derivation: build the Merkle root R over the sorted blockchain
// values (checking every leaf's inclusion proof as a self-check along
// the way), reduce R to a 64-bit base b, expand b into the four
// 64-bit limbs of a single field element, hash that element with
// Poseidon2, then fold the digest's own four 64-bit limbs together
// with wrapping addition and keep the low 32 bits.
func GenerateAlpha(blockchainValues []F) (uint32, error) {
	leaves := make([]F, len(blockchainValues))
	copy(leaves, blockchainValues)
	sort.Slice(leaves, func(i, j int) bool { return LessCanonical(leaves[i], leaves[j]) })

	indices := make([]int, len(leaves))
	for i := range indices {
		indices[i] = i
	}
	if err := ProveAndVerify(leaves, indices); err != nil {
		return 0, err
	}
	root := RootOf(leaves)

	rootBytes := CanonicalBE(root)
	b := binary.BigEndian.Uint64(rootBytes[24:32])

	limb := new(big.Int).SetUint64(b)
	shifted := new(big.Int)
	value := new(big.Int)
	for i := 0; i < 4; i++ {
		shifted.Lsh(limb, uint(64*i))
		value.Add(value, shifted)
	}

	var input F
	input.SetBigInt(value)

	h := poseidon2.NewMerkleDamgardHasher()
	inputBytes := CanonicalBE(input)
	if _, err := h.Write(inputBytes[:]); err != nil {
		return 0, fmt.Errorf("nummus: poseidon2 hash: %w", err)
	}
	digest := h.Sum(nil)

	var out F
	out.SetBytes(digest)
	limbs := out.Bits()

	var folded uint64
	for _, l := range limbs {
		folded += uint64(l)
	}
	return uint32(folded), nil
}
