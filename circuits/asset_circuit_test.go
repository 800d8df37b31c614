package circuits

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	gnark_test "github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

func TestAssetCircuit_IsSolved(t *testing.T) {
	witness, err := assetCircuitWitness(AssetWitness{
		Alpha:              7,
		BlockchainSerials:  []frontend.Variable{1, 2, 9},
		DistinctSerials:    []frontend.Variable{1, 2},
		ClaimedOccurrences: []frontend.Variable{1, 1},
		SpentSerials:       []frontend.Variable{1, 2},
	})
	require.NoError(t, err)

	err = gnark_test.IsSolved(&AssetCircuit{}, witness, ecc.BN254.ScalarField())
	require.NoError(t, err)
}

func TestAssetCircuit_RejectsWrongOccurrenceCount(t *testing.T) {
	witness, err := assetCircuitWitness(AssetWitness{
		Alpha:              7,
		BlockchainSerials:  []frontend.Variable{1, 2, 9},
		DistinctSerials:    []frontend.Variable{1, 2},
		ClaimedOccurrences: []frontend.Variable{2, 1},
		SpentSerials:       []frontend.Variable{1, 2},
	})
	require.NoError(t, err)

	err = gnark_test.IsSolved(&AssetCircuit{}, witness, ecc.BN254.ScalarField())
	require.Error(t, err)
}

func TestAssetCircuit_RejectsSpendNotOnBlockchain(t *testing.T) {
	witness, err := assetCircuitWitness(AssetWitness{
		Alpha:              7,
		BlockchainSerials:  []frontend.Variable{1, 2},
		DistinctSerials:    []frontend.Variable{99},
		ClaimedOccurrences: []frontend.Variable{1},
		SpentSerials:       []frontend.Variable{99},
	})
	require.NoError(t, err)

	err = gnark_test.IsSolved(&AssetCircuit{}, witness, ecc.BN254.ScalarField())
	require.Error(t, err)
}

func TestProveAssetOccurrence_RoundTrip(t *testing.T) {
	err := ProveAssetOccurrence(AssetWitness{
		Alpha:              11,
		BlockchainSerials:  []frontend.Variable{5, 8},
		DistinctSerials:    []frontend.Variable{5},
		ClaimedOccurrences: []frontend.Variable{1},
		SpentSerials:       []frontend.Variable{5},
	})
	require.NoError(t, err)
}
