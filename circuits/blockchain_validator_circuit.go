package circuits

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/ducatlabs/nummus/core"
)

// Fixed capacities a BlockchainValidatorCircuit (and AssetCircuit) can
// prove over. gnark circuits have a fixed arithmetic shape, so the
// variable-length blockchain and per-organization collections the
// bookkeeping types work with are padded up to these bounds and
// accompanied by a parallel boolean mask marking which slots actually
// hold data.
const (
	MaxBlockchainEntries = 256
	MaxOrgSerialNumbers  = 64
)

// BlockchainValidatorCircuit proves that every serial number/root pair
// an organization claims to have spent this epoch is actually present
// on the blockchain, without revealing which blockchain entries they
// are. Padding slots (Present == 0) are unconstrained; only slots
// marked present must find a matching, present blockchain entry.
type BlockchainValidatorCircuit struct {
	BlockchainSerials [MaxBlockchainEntries]frontend.Variable
	BlockchainRoots   [MaxBlockchainEntries]frontend.Variable
	BlockchainPresent [MaxBlockchainEntries]frontend.Variable

	OrgSerials [MaxOrgSerialNumbers]frontend.Variable
	OrgRoots   [MaxOrgSerialNumbers]frontend.Variable
	OrgPresent [MaxOrgSerialNumbers]frontend.Variable
}

// Define constrains, for every present organization slot, that some
// present blockchain slot shares both its serial number and its root.
func (c *BlockchainValidatorCircuit) Define(api frontend.API) error {
	for j := 0; j < MaxBlockchainEntries; j++ {
		api.AssertIsBoolean(c.BlockchainPresent[j])
	}
	for i := 0; i < MaxOrgSerialNumbers; i++ {
		api.AssertIsBoolean(c.OrgPresent[i])
	}
	for i := 0; i < MaxOrgSerialNumbers; i++ {
		matchAny := frontend.Variable(0)
		for j := 0; j < MaxBlockchainEntries; j++ {
			eqSerial := api.IsZero(api.Sub(c.OrgSerials[i], c.BlockchainSerials[j]))
			eqRoot := api.IsZero(api.Sub(c.OrgRoots[i], c.BlockchainRoots[j]))
			bothEq := api.And(eqSerial, eqRoot)
			validJ := api.And(bothEq, c.BlockchainPresent[j])
			matchAny = api.Or(matchAny, validJ)
		}
		// OrgPresent[i] * (1 - matchAny) == 0: a present org slot must
		// have found a match; an absent one is unconstrained.
		api.AssertIsEqual(api.Mul(c.OrgPresent[i], api.Sub(1, matchAny)), 0)
	}
	return nil
}

// blockchainValidatorWitness pads serials/roots and their presence
// masks up to the circuit's fixed capacity.
func blockchainValidatorWitness(blockchainSerials, blockchainRoots, orgSerials, orgRoots []frontend.Variable) (*BlockchainValidatorCircuit, error) {
	if len(blockchainSerials) != len(blockchainRoots) {
		return nil, fmt.Errorf("blockchain validator: serial/root length mismatch")
	}
	if len(orgSerials) != len(orgRoots) {
		return nil, fmt.Errorf("blockchain validator: org serial/root length mismatch")
	}
	if len(blockchainSerials) > MaxBlockchainEntries {
		return nil, fmt.Errorf("blockchain validator: %d blockchain entries exceeds capacity %d", len(blockchainSerials), MaxBlockchainEntries)
	}
	if len(orgSerials) > MaxOrgSerialNumbers {
		return nil, fmt.Errorf("blockchain validator: %d org serials exceeds capacity %d", len(orgSerials), MaxOrgSerialNumbers)
	}

	w := &BlockchainValidatorCircuit{}
	for i := 0; i < MaxBlockchainEntries; i++ {
		w.BlockchainSerials[i] = 0
		w.BlockchainRoots[i] = 0
		w.BlockchainPresent[i] = 0
	}
	for i := 0; i < MaxOrgSerialNumbers; i++ {
		w.OrgSerials[i] = 0
		w.OrgRoots[i] = 0
		w.OrgPresent[i] = 0
	}
	for i := range blockchainSerials {
		w.BlockchainSerials[i] = blockchainSerials[i]
		w.BlockchainRoots[i] = blockchainRoots[i]
		w.BlockchainPresent[i] = 1
	}
	for i := range orgSerials {
		w.OrgSerials[i] = orgSerials[i]
		w.OrgRoots[i] = orgRoots[i]
		w.OrgPresent[i] = 1
	}
	return w, nil
}

// ProveBlockchainMembership sets up a fresh Groth16 instance for
// BlockchainValidatorCircuit, proves that orgSerials/orgRoots are a
// subset of blockchainSerials/blockchainRoots, and verifies the
// resulting proof.
func ProveBlockchainMembership(blockchainSerials, blockchainRoots, orgSerials, orgRoots []frontend.Variable) error {
	circuit := &BlockchainValidatorCircuit{}
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return fmt.Errorf("blockchain validator: compile: %w", err)
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return fmt.Errorf("blockchain validator: setup: %w", err)
	}

	assignment, err := blockchainValidatorWitness(blockchainSerials, blockchainRoots, orgSerials, orgRoots)
	if err != nil {
		return err
	}
	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return fmt.Errorf("blockchain validator: witness: %w", err)
	}

	proof, err := groth16.Prove(ccs, pk, witness)
	if err != nil {
		return fmt.Errorf("blockchain validator: prove: %w", err)
	}

	publicWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("blockchain validator: public witness: %w", err)
	}
	if err := groth16.Verify(proof, vk, publicWitness); err != nil {
		return fmt.Errorf("%w: blockchain validator: %v", core.ErrProofFailure, err)
	}
	return nil
}
