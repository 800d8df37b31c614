package circuits

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/ducatlabs/nummus/core"
)

// EpochBalanceCircuit proves that an organization's balance
// bookkeeping is arithmetically sound for one epoch: that its final
// balance is exactly its initial balance plus its net epoch delta.
// All three values are private: the proof attests to the relation,
// not to the amounts.
type EpochBalanceCircuit struct {
	InitialBalance frontend.Variable
	EpochDelta     frontend.Variable
	FinalBalance   frontend.Variable
}

// Define asserts initial + delta == final.
func (c *EpochBalanceCircuit) Define(api frontend.API) error {
	sum := api.Add(c.InitialBalance, c.EpochDelta)
	api.AssertIsEqual(sum, c.FinalBalance)
	return nil
}

// ProveEpochBalance sets up a fresh Groth16 instance for
// EpochBalanceCircuit, proves the given assignment, and verifies the
// resulting proof. A failed verification returns an error wrapping
// core.ErrProofFailure; compile, setup and prove failures (including an
// unsatisfied assignment) return plain errors.
func ProveEpochBalance(initial, delta, final int64) error {
	circuit := &EpochBalanceCircuit{}
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return fmt.Errorf("epoch circuit: compile: %w", err)
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return fmt.Errorf("epoch circuit: setup: %w", err)
	}

	assignment := &EpochBalanceCircuit{
		InitialBalance: initial,
		EpochDelta:     delta,
		FinalBalance:   final,
	}
	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return fmt.Errorf("epoch circuit: witness: %w", err)
	}

	proof, err := groth16.Prove(ccs, pk, witness)
	if err != nil {
		return fmt.Errorf("epoch circuit: prove: %w", err)
	}

	publicWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("epoch circuit: public witness: %w", err)
	}
	if err := groth16.Verify(proof, vk, publicWitness); err != nil {
		return fmt.Errorf("%w: epoch circuit: %v", core.ErrProofFailure, err)
	}
	return nil
}
