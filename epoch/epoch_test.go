package epoch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ducatlabs/nummus/core"
)

func TestRun_FullEpochCycle(t *testing.T) {
	rng := core.NewSequenceRNG(1, 2, 3, 4)
	alice := core.NewAddress(rng.FieldElement())
	bob := core.NewAddress(rng.FieldElement())

	n := core.NewNetwork(nil)
	orgA := core.NewOrganization("A", []core.Address{alice}, 100, nil)
	orgB := core.NewOrganization("B", []core.Address{bob}, 0, nil)
	n.Register(orgA)
	n.Register(orgB)

	tx := core.NewTransaction(20, alice, bob, rng)
	require.NoError(t, n.Forward(tx))

	require.NoError(t, Run(n))

	require.Equal(t, int32(80), orgA.FinalBalance)
	require.Equal(t, int32(20), orgB.FinalBalance)
	require.Equal(t, core.Accumulating, orgA.State)
	require.Equal(t, core.Accumulating, orgB.State)
}

func TestValidateAll_TwoOrgsOneTransaction(t *testing.T) {
	rng := core.NewSequenceRNG(1, 2, 3, 42)
	alice := core.NewAddress(rng.FieldElement())
	bob := core.NewAddress(rng.FieldElement())

	n := core.NewNetwork(nil)
	orgA := core.NewOrganization("A", []core.Address{alice}, 20, nil)
	orgB := core.NewOrganization("B", []core.Address{bob}, 30, nil)
	n.Register(orgA)
	n.Register(orgB)

	tx := core.NewTransaction(7, alice, bob, rng)
	require.NoError(t, n.Forward(tx))
	require.Equal(t, int32(-7), orgA.EpochDelta)
	require.Equal(t, int32(7), orgB.EpochDelta)

	require.NoError(t, n.TransferDeltaToOrganizationBalances())
	require.Equal(t, int32(13), orgA.FinalBalance)
	require.Equal(t, int32(37), orgB.FinalBalance)

	alpha, err := core.GenerateAlpha(n.Blockchain.Values())
	require.NoError(t, err)
	require.NoError(t, ValidateAllEpochDeltasAndFinalBalances(n))
	require.NoError(t, ValidateAllAssets(n, alpha))
}
