package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockchain_AppendAndLookup(t *testing.T) {
	bc := NewBlockchain()

	var rho, root F
	rho.SetInt64(1)
	root.SetInt64(2)
	sn := NewSerialNumber(rho)

	require.NoError(t, bc.Append(root, sn))
	require.True(t, bc.Has(sn))

	got, ok := bc.RootFor(sn)
	require.True(t, ok)
	require.True(t, got.Equal(&root))
	require.Equal(t, 1, bc.Len())
}

func TestBlockchain_RejectsDoubleSpend(t *testing.T) {
	bc := NewBlockchain()

	var rho, root1, root2 F
	rho.SetInt64(1)
	root1.SetInt64(2)
	root2.SetInt64(3)
	sn := NewSerialNumber(rho)

	require.NoError(t, bc.Append(root1, sn))
	err := bc.Append(root2, sn)
	require.ErrorIs(t, err, ErrDuplicateSerialNumber)
	require.Equal(t, 1, bc.Len())
}

func TestBlockchain_KeysValuesOrder(t *testing.T) {
	bc := NewBlockchain()

	for i := int64(0); i < 3; i++ {
		var rho, root F
		rho.SetInt64(i)
		root.SetInt64(i + 100)
		require.NoError(t, bc.Append(root, NewSerialNumber(rho)))
	}

	keys := bc.Keys()
	values := bc.Values()
	require.Len(t, keys, 3)
	require.Len(t, values, 3)
	for i, sn := range keys {
		root, ok := bc.RootFor(sn)
		require.True(t, ok)
		require.True(t, root.Equal(&values[i]))
	}
}
