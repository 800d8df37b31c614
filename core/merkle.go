package core

import (
	"encoding/binary"
	"fmt"
)

// MerkleTree is a binary SHA-256 Merkle tree over an ordered sequence
// of field-element leaves: each leaf is hashed independently (hashLeaf),
// then levels are paired left-to-right, duplicating the last node of a
// level when it has an odd count of nodes.
//
// The blockchain's transaction roots are committed in the clear by
// Organization/Network, and are only proved to be set members inside
// the blockchain-validator circuit (BlockchainValidatorCircuit), never
// re-derived in zero knowledge.
type MerkleTree struct {
	levels [][][32]byte // levels[0] = leaf hashes, levels[len-1] = [root]
}

// BuildMerkleTree hashes and pairs leaves into a tree. An empty leaf
// set yields a tree whose root is the hash of the empty leaf.
func BuildMerkleTree(leaves []F) *MerkleTree {
	level := make([][32]byte, len(leaves))
	for i, leaf := range leaves {
		level[i] = hashLeaf(leaf)
	}
	if len(level) == 0 {
		level = [][32]byte{hashLeaf(F{})}
	}

	levels := [][][32]byte{level}
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, hashPair(level[i], level[i+1]))
			} else {
				next = append(next, hashPair(level[i], level[i]))
			}
		}
		levels = append(levels, next)
		level = next
	}
	return &MerkleTree{levels: levels}
}

// Root returns the deterministic field-element root of t: the raw
// 32-byte root hash, reduced into F via little-endian reduction modulo
// the field order.
func (t *MerkleTree) Root() F {
	top := t.levels[len(t.levels)-1]
	return FromLEBytesModOrder(top[0][:])
}

// Leaves returns the tree's leaf hashes in order, for diagnostics.
func (t *MerkleTree) Leaves() [][32]byte {
	out := make([][32]byte, len(t.levels[0]))
	copy(out, t.levels[0])
	return out
}

// RootOf is a convenience wrapper: hash, pair and reduce leaves to
// their Merkle root in one call.
func RootOf(leaves []F) F {
	return BuildMerkleTree(leaves).Root()
}

// inclusionProof is a sibling path from a leaf to the root, along with
// which side (left=false/right=true) each sibling sits on.
type inclusionProof struct {
	siblings [][32]byte
	rightOf  []bool
}

func (t *MerkleTree) proveInclusion(index int) inclusionProof {
	var proof inclusionProof
	idx := index
	for lvl := 0; lvl < len(t.levels)-1; lvl++ {
		level := t.levels[lvl]
		var sibling [32]byte
		isRight := idx%2 == 1
		if isRight {
			sibling = level[idx-1]
		} else if idx+1 < len(level) {
			sibling = level[idx+1]
		} else {
			sibling = level[idx] // duplicated last node
		}
		proof.siblings = append(proof.siblings, sibling)
		proof.rightOf = append(proof.rightOf, isRight)
		idx /= 2
	}
	return proof
}

func verifyInclusion(leafHash [32]byte, proof inclusionProof, root [32]byte) bool {
	current := leafHash
	for i, sibling := range proof.siblings {
		if proof.rightOf[i] {
			current = hashPair(sibling, current)
		} else {
			current = hashPair(current, sibling)
		}
	}
	return current == root
}

// ProveAndVerify builds the tree over leaves, derives an inclusion
// proof for each requested index, serializes and re-parses it as a
// round-trip self-check, then verifies it against the tree's root. It
// returns an error wrapping ErrInvalidMerkleWitness for the first
// index whose proof fails to verify, nil otherwise.
func ProveAndVerify(leaves []F, indices []int) error {
	tree := BuildMerkleTree(leaves)
	root := tree.levels[len(tree.levels)-1][0]
	leafHashes := tree.levels[0]

	for _, idx := range indices {
		if idx < 0 || idx >= len(leafHashes) {
			return fmt.Errorf("%w: index %d out of range", ErrInvalidMerkleWitness, idx)
		}
		proof := tree.proveInclusion(idx)
		wire := serializeProof(proof)
		roundTripped, err := deserializeProof(wire)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidMerkleWitness, err)
		}
		if !verifyInclusion(leafHashes[idx], roundTripped, root) {
			return fmt.Errorf("%w: index %d", ErrInvalidMerkleWitness, idx)
		}
	}
	return nil
}

// serializeProof/deserializeProof round-trip an inclusionProof through
// its wire form: eight little-endian bytes of direction flags (one bit
// per level) followed by the concatenated 32-byte sibling hashes.
func serializeProof(p inclusionProof) []byte {
	buf := make([]byte, 0, 8+32*len(p.siblings))
	var flags uint64
	for i, right := range p.rightOf {
		if right {
			flags |= 1 << uint(i)
		}
	}
	buf = binary.LittleEndian.AppendUint64(buf, flags)
	for _, s := range p.siblings {
		buf = append(buf, s[:]...)
	}
	return buf
}

func deserializeProof(wire []byte) (inclusionProof, error) {
	if len(wire) < 8 {
		return inclusionProof{}, fmt.Errorf("merkle proof: truncated wire form")
	}
	flags := binary.LittleEndian.Uint64(wire[:8])
	rest := wire[8:]
	if len(rest)%32 != 0 {
		return inclusionProof{}, fmt.Errorf("merkle proof: malformed sibling data")
	}
	n := len(rest) / 32
	p := inclusionProof{
		siblings: make([][32]byte, n),
		rightOf:  make([]bool, n),
	}
	for i := 0; i < n; i++ {
		copy(p.siblings[i][:], rest[i*32:(i+1)*32])
		p.rightOf[i] = flags&(1<<uint(i)) != 0
	}
	return p, nil
}
