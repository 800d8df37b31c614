package core

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Transaction moves Value units from Sender to Receiver, authorized by
// a fresh SerialNumber that the blockchain records to prevent the same
// output from being spent twice.
type Transaction struct {
	ID       F
	Value    int32
	Sender   Address
	Receiver Address
	SN       SerialNumber
}

// transactionLeaves lays out a Transaction as the fixed 7-leaf vector
// Root hashes: id, value, the sender keypair, the receiver keypair,
// and the serial number. Both halves of each keypair are committed, so
// the root binds the secrets that authorized the spend, not just the
// public identities.
func (t Transaction) transactionLeaves() [7]F {
	var value fr.Element
	value.SetInt64(int64(t.Value))
	return [7]F{
		t.ID,
		value,
		t.Sender.PublicKey,
		t.Sender.SecretKey,
		t.Receiver.PublicKey,
		t.Receiver.SecretKey,
		t.SN.Value,
	}
}

// Root returns the Merkle root committing to this transaction's
// contents: the value Network.Forward appends to the blockchain
// alongside the transaction's serial number.
func (t Transaction) Root() F {
	leaves := t.transactionLeaves()
	return RootOf(leaves[:])
}

// NewTransaction builds a single transaction from a sampled id and
// serial-number nonce, both drawn from rng.
func NewTransaction(value int32, sender, receiver Address, rng RNG) Transaction {
	id := rng.FieldElement()
	rho := rng.FieldElement()
	return Transaction{
		ID:       id,
		Value:    value,
		Sender:   sender,
		Receiver: receiver,
		SN:       NewSerialNumber(rho),
	}
}

// Split divides t into len(values) transactions, one per receiver,
// each bearing its own fresh id and serial number and the same sender
// as t. It mirrors a sender breaking one payment into several outputs
// for privacy, requires values and receivers to have the same length
// and values to sum back to t's value, and leaves t itself untouched.
func (t Transaction) Split(values []int32, receivers []Address, rng RNG) ([]Transaction, error) {
	if len(values) != len(receivers) {
		return nil, fmt.Errorf("nummus: split values/receivers length mismatch: %d vs %d", len(values), len(receivers))
	}
	var sum int32
	for _, v := range values {
		sum += v
	}
	if sum != t.Value {
		return nil, fmt.Errorf("%w: values sum to %d, want %d", ErrSplitSumMismatch, sum, t.Value)
	}

	txs := make([]Transaction, len(values))
	for i, v := range values {
		txs[i] = NewTransaction(v, t.Sender, receivers[i], rng)
	}
	return txs, nil
}
