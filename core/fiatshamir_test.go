package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAlpha_Deterministic(t *testing.T) {
	leaves := leafSet(6)
	a1, err := GenerateAlpha(leaves)
	require.NoError(t, err)
	a2, err := GenerateAlpha(leaves)
	require.NoError(t, err)
	require.Equal(t, a1, a2)
}

func TestGenerateAlpha_IndependentNetworksAgree(t *testing.T) {
	// Two blockchains that have recorded the same roots must derive
	// the same challenge without coordinating.
	bc1 := NewBlockchain()
	bc2 := NewBlockchain()

	for i := int64(0); i < 4; i++ {
		var rho, root F
		rho.SetInt64(i)
		root.SetInt64(i + 50)
		sn := NewSerialNumber(rho)
		require.NoError(t, bc1.Append(root, sn))
		require.NoError(t, bc2.Append(root, sn))
	}

	a1, err := GenerateAlpha(bc1.Values())
	require.NoError(t, err)
	a2, err := GenerateAlpha(bc2.Values())
	require.NoError(t, err)
	require.Equal(t, a1, a2)
}

func TestGenerateAlpha_OrderInsensitive(t *testing.T) {
	leaves := leafSet(5)
	reversed := make([]F, len(leaves))
	for i, l := range leaves {
		reversed[len(leaves)-1-i] = l
	}

	a1, err := GenerateAlpha(leaves)
	require.NoError(t, err)
	a2, err := GenerateAlpha(reversed)
	require.NoError(t, err)
	require.Equal(t, a1, a2, "alpha depends on the set of roots, not their recorded order")
}

func TestGenerateAlpha_DifferentRootsDifferentAlpha(t *testing.T) {
	a1, err := GenerateAlpha(leafSet(3))
	require.NoError(t, err)
	a2, err := GenerateAlpha(leafSet(4))
	require.NoError(t, err)
	require.NotEqual(t, a1, a2)
}
