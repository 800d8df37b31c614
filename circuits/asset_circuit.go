package circuits

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/ducatlabs/nummus/core"
)

// MaxDistinctSerialNumbers bounds how many distinct serial numbers an
// AssetCircuit witness can summarize an organization's spends with.
const MaxDistinctSerialNumbers = 64

// AssetCircuit proves that a claimed occurrence vector (distinct
// serial numbers paired with how many times each appears on the
// blockchain) correctly summarizes an organization's spent-serial
// multiset, without revealing the multiset itself. Three facts are
// constrained:
//
//  1. every spent serial appears among the blockchain's serials;
//  2. for the public challenge Alpha,
//
//     sum_i claimed_i / (distinct_i + Alpha) == sum_j 1 / (spent_j + Alpha)
//
//     which holds iff the claimed multiplicities match the actual
//     ones, by Schwartz-Zippel, since Alpha is derived from the
//     blockchain state outside either party's control;
//  3. each claimed count equals the count of that serial among the
//     blockchain's serials, computed inside the circuit.
//
// This replaces a floating-point count-and-compare with identities
// gnark checks exactly using field inverses.
type AssetCircuit struct {
	Alpha frontend.Variable `gnark:",public"`

	BlockchainSerials [MaxBlockchainEntries]frontend.Variable
	BlockchainPresent [MaxBlockchainEntries]frontend.Variable

	DistinctSerials    [MaxDistinctSerialNumbers]frontend.Variable
	ClaimedOccurrences [MaxDistinctSerialNumbers]frontend.Variable
	DistinctPresent    [MaxDistinctSerialNumbers]frontend.Variable

	SpentSerials [MaxOrgSerialNumbers]frontend.Variable
	SpentPresent [MaxOrgSerialNumbers]frontend.Variable
}

// Define constrains subset membership, both sides of the reciprocal
// identity, and the in-circuit occurrence counts. Padding slots
// (Present == 0) contribute nothing: their terms are gated out and
// their denominators replaced by 1 so no division ever sees a zero.
func (c *AssetCircuit) Define(api frontend.API) error {
	for k := 0; k < MaxBlockchainEntries; k++ {
		api.AssertIsBoolean(c.BlockchainPresent[k])
	}
	for i := 0; i < MaxDistinctSerialNumbers; i++ {
		api.AssertIsBoolean(c.DistinctPresent[i])
	}
	for j := 0; j < MaxOrgSerialNumbers; j++ {
		api.AssertIsBoolean(c.SpentPresent[j])
	}

	for j := 0; j < MaxOrgSerialNumbers; j++ {
		matchAny := frontend.Variable(0)
		for k := 0; k < MaxBlockchainEntries; k++ {
			eq := api.IsZero(api.Sub(c.SpentSerials[j], c.BlockchainSerials[k]))
			matchAny = api.Or(matchAny, api.And(eq, c.BlockchainPresent[k]))
		}
		api.AssertIsEqual(api.Mul(c.SpentPresent[j], api.Sub(1, matchAny)), 0)
	}

	left := frontend.Variable(0)
	for i := 0; i < MaxDistinctSerialNumbers; i++ {
		denom := api.Select(c.DistinctPresent[i], api.Add(c.DistinctSerials[i], c.Alpha), 1)
		term := api.DivUnchecked(c.ClaimedOccurrences[i], denom)
		left = api.Add(left, api.Select(c.DistinctPresent[i], term, 0))
	}

	right := frontend.Variable(0)
	for j := 0; j < MaxOrgSerialNumbers; j++ {
		denom := api.Select(c.SpentPresent[j], api.Add(c.SpentSerials[j], c.Alpha), 1)
		term := api.DivUnchecked(1, denom)
		right = api.Add(right, api.Select(c.SpentPresent[j], term, 0))
	}

	api.AssertIsEqual(left, right)

	for i := 0; i < MaxDistinctSerialNumbers; i++ {
		count := frontend.Variable(0)
		for k := 0; k < MaxBlockchainEntries; k++ {
			eq := api.IsZero(api.Sub(c.DistinctSerials[i], c.BlockchainSerials[k]))
			count = api.Add(count, api.And(eq, c.BlockchainPresent[k]))
		}
		api.AssertIsEqual(
			api.Select(c.DistinctPresent[i], count, 0),
			api.Select(c.DistinctPresent[i], c.ClaimedOccurrences[i], 0),
		)
	}
	return nil
}

// AssetWitness is the plain-Go input to ProveAssetOccurrence: a claim
// about how many times each of a fixed set of distinct serial numbers
// occurs on the blockchain, alongside the organization's spent-serial
// multiset the claim summarizes.
type AssetWitness struct {
	Alpha              uint32
	BlockchainSerials  []frontend.Variable
	DistinctSerials    []frontend.Variable
	ClaimedOccurrences []frontend.Variable
	SpentSerials       []frontend.Variable
}

func assetCircuitWitness(w AssetWitness) (*AssetCircuit, error) {
	if len(w.DistinctSerials) != len(w.ClaimedOccurrences) {
		return nil, fmt.Errorf("asset circuit: distinct serials/occurrences length mismatch")
	}
	if len(w.BlockchainSerials) > MaxBlockchainEntries {
		return nil, fmt.Errorf("asset circuit: %d blockchain serials exceeds capacity %d", len(w.BlockchainSerials), MaxBlockchainEntries)
	}
	if len(w.DistinctSerials) > MaxDistinctSerialNumbers {
		return nil, fmt.Errorf("asset circuit: %d distinct serials exceeds capacity %d", len(w.DistinctSerials), MaxDistinctSerialNumbers)
	}
	if len(w.SpentSerials) > MaxOrgSerialNumbers {
		return nil, fmt.Errorf("asset circuit: %d spent serials exceeds capacity %d", len(w.SpentSerials), MaxOrgSerialNumbers)
	}

	assignment := &AssetCircuit{Alpha: w.Alpha}
	for k := 0; k < MaxBlockchainEntries; k++ {
		assignment.BlockchainSerials[k] = 0
		assignment.BlockchainPresent[k] = 0
	}
	for k := range w.BlockchainSerials {
		assignment.BlockchainSerials[k] = w.BlockchainSerials[k]
		assignment.BlockchainPresent[k] = 1
	}
	for i := 0; i < MaxDistinctSerialNumbers; i++ {
		assignment.DistinctSerials[i] = 0
		assignment.ClaimedOccurrences[i] = 0
		assignment.DistinctPresent[i] = 0
	}
	for i := range w.DistinctSerials {
		assignment.DistinctSerials[i] = w.DistinctSerials[i]
		assignment.ClaimedOccurrences[i] = w.ClaimedOccurrences[i]
		assignment.DistinctPresent[i] = 1
	}
	for j := 0; j < MaxOrgSerialNumbers; j++ {
		assignment.SpentSerials[j] = 0
		assignment.SpentPresent[j] = 0
	}
	for j := range w.SpentSerials {
		assignment.SpentSerials[j] = w.SpentSerials[j]
		assignment.SpentPresent[j] = 1
	}
	return assignment, nil
}

// ProveAssetOccurrence sets up a fresh Groth16 instance for
// AssetCircuit, proves w's occurrence claim, and verifies the
// resulting proof.
func ProveAssetOccurrence(w AssetWitness) error {
	circuit := &AssetCircuit{}
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return fmt.Errorf("asset circuit: compile: %w", err)
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return fmt.Errorf("asset circuit: setup: %w", err)
	}

	assignment, err := assetCircuitWitness(w)
	if err != nil {
		return err
	}
	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return fmt.Errorf("asset circuit: witness: %w", err)
	}

	proof, err := groth16.Prove(ccs, pk, witness)
	if err != nil {
		return fmt.Errorf("asset circuit: prove: %w", err)
	}

	publicWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("asset circuit: public witness: %w", err)
	}
	if err := groth16.Verify(proof, vk, publicWitness); err != nil {
		return fmt.Errorf("%w: asset circuit: %v", core.ErrProofFailure, err)
	}
	return nil
}
