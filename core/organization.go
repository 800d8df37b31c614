package core

import (
	"fmt"

	"github.com/rs/zerolog"
)

// EpochState tracks an Organization's position in the epoch
// bookkeeping cycle: Accumulating absorbs transactions as they
// arrive, DeltaTransferred has folded the epoch's net delta into the
// running balance, Proved has had that transition and its asset
// holdings checked against the blockchain in zero knowledge, and
// Cleaned has reset its per-epoch counters for the next round.
type EpochState int

const (
	Accumulating EpochState = iota
	DeltaTransferred
	Proved
	Cleaned
)

func (s EpochState) String() string {
	switch s {
	case Accumulating:
		return "accumulating"
	case DeltaTransferred:
		return "delta_transferred"
	case Proved:
		return "proved"
	case Cleaned:
		return "cleaned"
	default:
		return "unknown"
	}
}

// Organization is one participant in the network: a bundle of
// addresses it controls, the serial numbers it has spent this epoch,
// and the running balance those spends and receipts produce.
type Organization struct {
	ID string

	addresses    map[[32]byte]Address
	addressOrder [][32]byte

	spentSerials map[[32]byte]SerialNumber
	serialOrder  []SerialNumber

	spentRoots []F // transaction roots for every absorbed transaction, parallel to serialOrder

	InitialBalance int32
	EpochDelta     int32
	FinalBalance   int32
	State          EpochState

	// epochStartBalance is FinalBalance as it stood when the current
	// epoch's delta was folded in; the epoch-balance proof attests
	// epochStartBalance + EpochDelta == FinalBalance.
	epochStartBalance int32

	log *zerolog.Logger
}

// NewOrganization creates an Organization controlling addresses, with
// an initial balance and a logger for diagnostics. A nil logger
// disables logging.
func NewOrganization(id string, addresses []Address, initialBalance int32, log *zerolog.Logger) *Organization {
	o := &Organization{
		ID:             id,
		addresses:      make(map[[32]byte]Address),
		spentSerials:   make(map[[32]byte]SerialNumber),
		InitialBalance: initialBalance,
		FinalBalance:   initialBalance,

		epochStartBalance: initialBalance,
		State:          Accumulating,
		log:            log,
	}
	for _, a := range addresses {
		key := CanonicalBE(a.PublicKey)
		if _, exists := o.addresses[key]; exists {
			continue
		}
		o.addresses[key] = a
		o.addressOrder = append(o.addressOrder, key)
	}
	return o
}

// HasAddress reports whether the organization controls a.
func (o *Organization) HasAddress(a Address) bool {
	_, ok := o.addresses[CanonicalBE(a.PublicKey)]
	return ok
}

// HasSerialNumber reports whether the organization has already
// absorbed a transaction bearing sn this epoch.
func (o *Organization) HasSerialNumber(sn SerialNumber) bool {
	_, ok := o.spentSerials[sn.Key()]
	return ok
}

// IsInvolved reports whether the organization controls either side of
// tx.
func (o *Organization) IsInvolved(tx Transaction) bool {
	return o.HasAddress(tx.Sender) || o.HasAddress(tx.Receiver)
}

// Absorb folds tx into the organization's running epoch delta if the
// organization controls either its sender or receiver address. A
// self-transfer, where the organization controls both sides, is
// absorbed on both legs: the debit and the credit each apply, netting
// to zero, matching a wallet that pays itself. It is only valid while
// the organization is Accumulating. Absorbing the same serial number
// twice within an epoch is a double-spend against the organization's
// own books and returns ErrDuplicateSerialNumber, before any delta or
// cache mutation.
func (o *Organization) Absorb(tx Transaction) error {
	if o.State != Accumulating {
		panic(fmt.Sprintf("nummus: organization %s absorbed a transaction while in state %s", o.ID, o.State))
	}

	ownsSender := o.HasAddress(tx.Sender)
	ownsReceiver := o.HasAddress(tx.Receiver)
	if !ownsSender && !ownsReceiver {
		return nil
	}

	key := tx.SN.Key()
	if _, exists := o.spentSerials[key]; exists {
		return fmt.Errorf("%w: organization %s serial %x", ErrDuplicateSerialNumber, o.ID, key)
	}

	if ownsSender {
		o.EpochDelta -= tx.Value
	}
	if ownsReceiver {
		o.EpochDelta += tx.Value
	}
	o.spentSerials[key] = tx.SN
	o.serialOrder = append(o.serialOrder, tx.SN)
	o.spentRoots = append(o.spentRoots, tx.Root())

	if o.log != nil {
		o.log.Debug().Str("org", o.ID).Int32("delta", o.EpochDelta).Msg("absorbed transaction")
	}
	return nil
}

// TransferDeltaToBalance folds the accumulated epoch delta into the
// running balance and advances the state machine to DeltaTransferred.
// The balance carries forward epoch over epoch; only EpochDelta resets,
// in CleanDeltasAndBalancesAtEpochEnd.
func (o *Organization) TransferDeltaToBalance() error {
	if o.State != Accumulating {
		return fmt.Errorf("nummus: organization %s cannot transfer delta from state %s", o.ID, o.State)
	}
	o.epochStartBalance = o.FinalBalance
	o.FinalBalance += o.EpochDelta
	o.State = DeltaTransferred
	return nil
}

// EpochStartBalance returns the balance the organization entered the
// current epoch with, recorded when the epoch's delta was transferred.
func (o *Organization) EpochStartBalance() int32 {
	return o.epochStartBalance
}

// MarkProved advances the state machine once the organization's
// blockchain-component and asset proofs have both verified.
func (o *Organization) MarkProved() error {
	if o.State != DeltaTransferred {
		return fmt.Errorf("nummus: organization %s cannot be marked proved from state %s", o.ID, o.State)
	}
	o.State = Proved
	return nil
}

// CleanDeltasAndBalancesAtEpochEnd resets the organization for the
// next epoch: EpochDelta returns to zero and the set of serial numbers
// absorbed this epoch is cleared, but FinalBalance is left untouched
// so it continues to accrue across epochs.
func (o *Organization) CleanDeltasAndBalancesAtEpochEnd() error {
	if o.State != Proved {
		return fmt.Errorf("nummus: organization %s cannot be cleaned from state %s", o.ID, o.State)
	}
	o.EpochDelta = 0
	o.spentSerials = make(map[[32]byte]SerialNumber)
	o.serialOrder = nil
	o.spentRoots = nil
	o.State = Cleaned
	return nil
}

// BeginNextEpoch returns the organization to Accumulating once it has
// been Cleaned.
func (o *Organization) BeginNextEpoch() error {
	if o.State != Cleaned {
		return fmt.Errorf("nummus: organization %s cannot begin a new epoch from state %s", o.ID, o.State)
	}
	o.State = Accumulating
	return nil
}

// SpentSerialNumbers returns the serial numbers absorbed this epoch,
// in absorption order.
func (o *Organization) SpentSerialNumbers() []SerialNumber {
	out := make([]SerialNumber, len(o.serialOrder))
	copy(out, o.serialOrder)
	return out
}

// SpentRoots returns the transaction roots absorbed this epoch, in the
// same order as SpentSerialNumbers.
func (o *Organization) SpentRoots() []F {
	out := make([]F, len(o.spentRoots))
	copy(out, o.spentRoots)
	return out
}

// DumpInfo returns a human-readable snapshot of the organization's
// bookkeeping state, for diagnostics.
func (o *Organization) DumpInfo() []string {
	lines := []string{
		fmt.Sprintf("org=%s state=%s initial=%d delta=%d final=%d", o.ID, o.State, o.InitialBalance, o.EpochDelta, o.FinalBalance),
	}
	for _, sn := range o.serialOrder {
		lines = append(lines, fmt.Sprintf("  spent sn=%x", sn.Key()))
	}
	return lines
}
