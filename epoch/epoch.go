// Package epoch orchestrates one end-to-end epoch cycle over a
// Network: folding deltas into balances, proving every organization's
// blockchain membership and asset occurrence claims in zero
// knowledge, then resetting for the next epoch. It is kept separate
// from core so that core and circuits stay free of a dependency on
// each other; this package is the one place that needs both.
package epoch

import (
	"fmt"

	"github.com/ducatlabs/nummus/circuits"
	"github.com/ducatlabs/nummus/core"
)

// ValidateAllEpochDeltasAndFinalBalances proves, for every
// organization registered on n, that its balance arithmetic holds and
// that every serial number/root pair it absorbed this epoch is
// recorded on the blockchain. It stops at the first organization whose
// proofs fail.
func ValidateAllEpochDeltasAndFinalBalances(n *core.Network) error {
	for _, org := range n.Organizations() {
		if err := circuits.ValidateComponents(org, n.Blockchain); err != nil {
			return fmt.Errorf("nummus: epoch: organization %s components: %w", org.ID, err)
		}
	}
	return nil
}

// ValidateAllAssets proves, for every organization registered on n,
// that its spent serial numbers occur on the blockchain the claimed
// number of times each, under the Fiat-Shamir challenge alpha. It
// stops at the first organization whose proof fails.
func ValidateAllAssets(n *core.Network, alpha uint32) error {
	for _, org := range n.Organizations() {
		if err := circuits.ValidateAssets(org, n.Blockchain, alpha); err != nil {
			return fmt.Errorf("nummus: epoch: organization %s assets: %w", org.ID, err)
		}
	}
	return nil
}

// Run executes one full epoch for every organization registered on n:
// transfer deltas to balances, derive the shared Fiat-Shamir challenge
// from the current blockchain state, prove each organization's
// components and assets, mark it proved, then clean and roll every
// organization into the next epoch's Accumulating state.
func Run(n *core.Network) error {
	if err := n.TransferDeltaToOrganizationBalances(); err != nil {
		return fmt.Errorf("nummus: epoch: %w", err)
	}

	alpha, err := core.GenerateAlpha(n.Blockchain.Values())
	if err != nil {
		return fmt.Errorf("nummus: epoch: deriving alpha: %w", err)
	}

	if err := ValidateAllEpochDeltasAndFinalBalances(n); err != nil {
		return err
	}
	if err := ValidateAllAssets(n, alpha); err != nil {
		return err
	}
	for _, org := range n.Organizations() {
		if err := org.MarkProved(); err != nil {
			return fmt.Errorf("nummus: epoch: %w", err)
		}
	}

	if err := n.CleanDeltasAndBalancesAtEpochEnd(); err != nil {
		return fmt.Errorf("nummus: epoch: %w", err)
	}
	if err := n.BeginNextEpoch(); err != nil {
		return fmt.Errorf("nummus: epoch: %w", err)
	}
	return nil
}
