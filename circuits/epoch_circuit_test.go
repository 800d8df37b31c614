package circuits

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	gnark_test "github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

func TestEpochBalanceCircuit_IsSolved(t *testing.T) {
	witness := &EpochBalanceCircuit{
		InitialBalance: 100,
		EpochDelta:     -30,
		FinalBalance:   70,
	}
	err := gnark_test.IsSolved(&EpochBalanceCircuit{}, witness, ecc.BN254.ScalarField())
	require.NoError(t, err)
}

func TestEpochBalanceCircuit_RejectsBadSum(t *testing.T) {
	witness := &EpochBalanceCircuit{
		InitialBalance: 100,
		EpochDelta:     -30,
		FinalBalance:   71,
	}
	err := gnark_test.IsSolved(&EpochBalanceCircuit{}, witness, ecc.BN254.ScalarField())
	require.Error(t, err)
}

func TestProveEpochBalance_RoundTrip(t *testing.T) {
	require.NoError(t, ProveEpochBalance(100, -30, 70))
}

func TestProveEpochBalance_RejectsBadSum(t *testing.T) {
	err := ProveEpochBalance(100, -30, 71)
	require.Error(t, err)
}
