package circuits

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/consensys/gnark/frontend"
	"github.com/ducatlabs/nummus/core"
)

func toVariable(e core.F) frontend.Variable {
	var b big.Int
	e.BigInt(&b)
	return frontend.Variable(&b)
}

func toVariables(es []core.F) []frontend.Variable {
	out := make([]frontend.Variable, len(es))
	for i, e := range es {
		out[i] = toVariable(e)
	}
	return out
}

// ValidateComponents proves org's epoch bookkeeping in zero knowledge:
// first that its balance arithmetic holds (epoch-start balance plus
// epoch delta equals final balance), then that every serial
// number/root pair it absorbed this epoch is recorded on bc. It fails
// fast with ErrSubsetViolation if the membership claim isn't even
// true in the clear, rather than spending a Groth16 setup/prove cycle
// to discover an unsatisfiable witness, and with ErrCapacityExceeded
// if org's state has grown past what the circuit was built to hold.
func ValidateComponents(org *core.Organization, bc *core.Blockchain) error {
	if err := ProveEpochBalance(
		int64(org.EpochStartBalance()),
		int64(org.EpochDelta),
		int64(org.FinalBalance),
	); err != nil {
		return fmt.Errorf("organization %s: %w", org.ID, err)
	}

	blockchainSerialKeys := bc.Keys()
	blockchainSerials := make([]core.F, len(blockchainSerialKeys))
	for i, sn := range blockchainSerialKeys {
		blockchainSerials[i] = sn.Value
	}
	blockchainRoots := bc.Values()

	orgSerialNumbers := org.SpentSerialNumbers()
	if len(orgSerialNumbers) > MaxOrgSerialNumbers {
		return fmt.Errorf("%w: organization %s has %d spent serials, capacity is %d",
			core.ErrCapacityExceeded, org.ID, len(orgSerialNumbers), MaxOrgSerialNumbers)
	}
	if len(blockchainSerialKeys) > MaxBlockchainEntries {
		return fmt.Errorf("%w: blockchain has %d entries, capacity is %d",
			core.ErrCapacityExceeded, len(blockchainSerialKeys), MaxBlockchainEntries)
	}

	orgRoots := org.SpentRoots()
	orgSerials := make([]core.F, len(orgSerialNumbers))
	for i, sn := range orgSerialNumbers {
		root, ok := bc.RootFor(sn)
		if !ok {
			return fmt.Errorf("%w: organization %s serial %x", core.ErrSubsetViolation, org.ID, sn.Key())
		}
		if !root.Equal(&orgRoots[i]) {
			return fmt.Errorf("%w: organization %s root for serial %x", core.ErrSubsetViolation, org.ID, sn.Key())
		}
		orgSerials[i] = sn.Value
	}

	return ProveBlockchainMembership(
		toVariables(blockchainSerials),
		toVariables(blockchainRoots),
		toVariables(orgSerials),
		toVariables(orgRoots),
	)
}

// ValidateAssets proves, for org, that each of its distinct spent
// serial numbers occurs on bc the claimed number of times, under the
// Fiat-Shamir challenge alpha. The occurrence vector is laid out over
// the distinct serials in canonical (sorted) order so prover and
// verifier agree on it without exchanging an ordering. Since the
// blockchain rejects duplicate serial numbers, every count here is 1;
// the claim is still computed by counting rather than assumed, so a
// future ledger that admitted repeats would be summarized correctly.
func ValidateAssets(org *core.Organization, bc *core.Blockchain, alpha uint32) error {
	orgSerialNumbers := org.SpentSerialNumbers()
	if len(orgSerialNumbers) > MaxOrgSerialNumbers {
		return fmt.Errorf("%w: organization %s has %d spent serials, capacity is %d",
			core.ErrCapacityExceeded, org.ID, len(orgSerialNumbers), MaxOrgSerialNumbers)
	}

	blockchainSerialKeys := bc.Keys()
	if len(blockchainSerialKeys) > MaxBlockchainEntries {
		return fmt.Errorf("%w: blockchain has %d entries, capacity is %d",
			core.ErrCapacityExceeded, len(blockchainSerialKeys), MaxBlockchainEntries)
	}
	blockchainSerials := make([]core.F, len(blockchainSerialKeys))
	blockchainCounts := make(map[[32]byte]int, len(blockchainSerialKeys))
	for i, sn := range blockchainSerialKeys {
		blockchainSerials[i] = sn.Value
		blockchainCounts[sn.Key()]++
	}

	seen := make(map[[32]byte]bool, len(orgSerialNumbers))
	distinct := make([]core.SerialNumber, 0, len(orgSerialNumbers))
	spentSerials := make([]core.F, len(orgSerialNumbers))
	for i, sn := range orgSerialNumbers {
		if !bc.Has(sn) {
			return fmt.Errorf("%w: organization %s serial %x", core.ErrSubsetViolation, org.ID, sn.Key())
		}
		if !seen[sn.Key()] {
			seen[sn.Key()] = true
			distinct = append(distinct, sn)
		}
		spentSerials[i] = sn.Value
	}
	if len(distinct) > MaxDistinctSerialNumbers {
		return fmt.Errorf("%w: organization %s has %d distinct serials, capacity is %d",
			core.ErrCapacityExceeded, org.ID, len(distinct), MaxDistinctSerialNumbers)
	}
	sort.Slice(distinct, func(i, j int) bool {
		return core.LessCanonical(distinct[i].Value, distinct[j].Value)
	})

	distinctSerials := make([]core.F, len(distinct))
	claimedOccurrences := make([]frontend.Variable, len(distinct))
	for i, sn := range distinct {
		count := blockchainCounts[sn.Key()]
		if count == 0 {
			return fmt.Errorf("%w: organization %s serial %x counted zero times on the blockchain",
				core.ErrOccurrenceMismatch, org.ID, sn.Key())
		}
		distinctSerials[i] = sn.Value
		claimedOccurrences[i] = count
	}

	return ProveAssetOccurrence(AssetWitness{
		Alpha:              alpha,
		BlockchainSerials:  toVariables(blockchainSerials),
		DistinctSerials:    toVariables(distinctSerials),
		ClaimedOccurrences: claimedOccurrences,
		SpentSerials:       toVariables(spentSerials),
	})
}
