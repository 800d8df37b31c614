package core

import (
	"crypto/rand"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// RNG is the randomness boundary transaction splitting needs: fresh
// transaction ids and serial-number nonces. Rather than reaching for
// an ambient RNG the way thread_rng()/OsRng calls do, callers inject
// one, which makes split deterministic under test.
type RNG interface {
	// FieldElement returns a uniformly sampled element of F.
	FieldElement() F
}

// CryptoRNG draws field elements from crypto/rand, suitable for
// production use.
type CryptoRNG struct{}

func (CryptoRNG) FieldElement() F {
	var e fr.Element
	mod := fr.Modulus()
	n, err := rand.Int(rand.Reader, mod)
	if err != nil {
		panic(err)
	}
	e.SetBigInt(n)
	return e
}

// SequenceRNG replays a fixed, pre-determined sequence of field
// elements; used by tests that need reproducible split outputs.
type SequenceRNG struct {
	values []F
	pos    int
}

func NewSequenceRNG(seeds ...int64) *SequenceRNG {
	values := make([]F, len(seeds))
	for i, s := range seeds {
		var e fr.Element
		e.SetBigInt(big.NewInt(s))
		values[i] = e
	}
	return &SequenceRNG{values: values}
}

func (s *SequenceRNG) FieldElement() F {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}
