package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNetwork_ForwardUpdatesBlockchainAndOrgs(t *testing.T) {
	rng := NewSequenceRNG(1, 2, 3, 4)
	alice := NewAddress(rng.FieldElement())
	bob := NewAddress(rng.FieldElement())

	n := NewNetwork(nil)
	orgA := NewOrganization("A", []Address{alice}, 100, nil)
	orgB := NewOrganization("B", []Address{bob}, 0, nil)
	n.Register(orgA)
	n.Register(orgB)

	tx := NewTransaction(15, alice, bob, rng)
	require.NoError(t, n.Forward(tx))

	require.Equal(t, 1, n.Blockchain.Len())
	require.True(t, n.Blockchain.Has(tx.SN))
	require.Equal(t, int32(-15), orgA.EpochDelta)
	require.Equal(t, int32(15), orgB.EpochDelta)
}

func TestNetwork_ForwardRejectsDoubleSpend(t *testing.T) {
	rng := NewSequenceRNG(1, 2, 3, 4)
	alice := NewAddress(rng.FieldElement())
	bob := NewAddress(rng.FieldElement())

	n := NewNetwork(nil)
	n.Register(NewOrganization("A", []Address{alice}, 0, nil))
	n.Register(NewOrganization("B", []Address{bob}, 0, nil))

	tx := NewTransaction(5, alice, bob, rng)
	require.NoError(t, n.Forward(tx))
	err := n.Forward(tx)
	require.ErrorIs(t, err, ErrDuplicateSerialNumber)
	require.Equal(t, 1, n.Blockchain.Len())
}

func TestNetwork_DuplicateSerialDoesNotRollBackOrganizations(t *testing.T) {
	rng := NewSequenceRNG(1, 2, 3, 4, 5, 6, 7, 8)
	alice := NewAddress(rng.FieldElement())
	bob := NewAddress(rng.FieldElement())
	carol := NewAddress(rng.FieldElement())
	dave := NewAddress(rng.FieldElement())

	n := NewNetwork(nil)
	n.Register(NewOrganization("A", []Address{alice}, 0, nil))
	n.Register(NewOrganization("B", []Address{bob}, 0, nil))
	orgC := NewOrganization("C", []Address{carol}, 0, nil)
	n.Register(orgC)
	n.Register(NewOrganization("D", []Address{dave}, 0, nil))

	tx := NewTransaction(5, alice, bob, rng)
	require.NoError(t, n.Forward(tx))

	// A second transaction reusing the same serial number, between
	// organizations that have not seen it: the fan-out absorbs it
	// before the blockchain refuses the append, and that absorption
	// stays — the mismatch is the proving step's to catch.
	tx2 := Transaction{
		ID:       rng.FieldElement(),
		Value:    9,
		Sender:   carol,
		Receiver: dave,
		SN:       tx.SN,
	}
	err := n.Forward(tx2)
	require.ErrorIs(t, err, ErrDuplicateSerialNumber)
	require.Equal(t, 1, n.Blockchain.Len())
	require.Equal(t, int32(-9), orgC.EpochDelta)
	require.True(t, orgC.HasSerialNumber(tx.SN))
}

func TestNetwork_RegisterDuplicateIDPanics(t *testing.T) {
	n := NewNetwork(nil)
	n.Register(NewOrganization("A", nil, 0, nil))
	require.Panics(t, func() {
		n.Register(NewOrganization("A", nil, 0, nil))
	})
}

func TestNetwork_UnforwardedTransactionNotOnBlockchain(t *testing.T) {
	rng := NewSequenceRNG(1, 2, 3)
	alice := NewAddress(rng.FieldElement())
	bob := NewAddress(rng.FieldElement())

	n := NewNetwork(nil)
	n.Register(NewOrganization("A", []Address{alice}, 0, nil))

	tx := NewTransaction(5, alice, bob, rng)
	// Not forwarded through the network: its serial number never
	// reaches the blockchain, so it must not be found there.
	require.False(t, n.Blockchain.Has(tx.SN))
}
