package core

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Network owns the shared Blockchain and the set of Organizations
// transacting over it. It is the top-level object a driver program
// constructs: register organizations, forward transactions, then run
// the epoch-end bookkeeping pass.
type Network struct {
	orgs  map[string]*Organization
	order []string // registration order, for deterministic fan-out

	Blockchain *Blockchain
	log        *zerolog.Logger
}

// NewNetwork returns an empty Network over a fresh Blockchain.
func NewNetwork(log *zerolog.Logger) *Network {
	return &Network{
		orgs:       make(map[string]*Organization),
		Blockchain: NewBlockchain(),
		log:        log,
	}
}

// Register adds org to the network. It panics if an organization with
// the same ID is already registered, since that is a configuration
// error rather than something callers should route around at runtime.
func (n *Network) Register(org *Organization) {
	if _, exists := n.orgs[org.ID]; exists {
		panic(fmt.Sprintf("nummus: organization %s already registered", org.ID))
	}
	n.orgs[org.ID] = org
	n.order = append(n.order, org.ID)
}

// Organization returns the registered organization with the given ID,
// if any.
func (n *Network) Organization(id string) (*Organization, bool) {
	o, ok := n.orgs[id]
	return o, ok
}

// Organizations returns every registered organization, in registration
// order.
func (n *Network) Organizations() []*Organization {
	out := make([]*Organization, len(n.order))
	for i, id := range n.order {
		out[i] = n.orgs[id]
	}
	return out
}

// Forward offers tx to every registered organization in registration
// order so each can absorb it if it controls either side, then appends
// tx's transaction root to the blockchain under its serial number.
// The append comes after the fan-out, and a duplicate-serial rejection
// by the blockchain does not roll back organization state: any
// resulting mismatch between an organization's books and the ledger
// surfaces at proving time as a subset violation.
func (n *Network) Forward(tx Transaction) error {
	for _, id := range n.order {
		if err := n.orgs[id].Absorb(tx); err != nil {
			return fmt.Errorf("nummus: organization %s: %w", id, err)
		}
	}
	if err := n.Blockchain.Append(tx.Root(), tx.SN); err != nil {
		return err
	}
	if n.log != nil {
		n.log.Debug().Int32("value", tx.Value).Msg("forwarded transaction")
	}
	return nil
}

// TransferDeltaToOrganizationBalances calls TransferDeltaToBalance on
// every registered organization, stopping at the first error.
func (n *Network) TransferDeltaToOrganizationBalances() error {
	for _, id := range n.order {
		if err := n.orgs[id].TransferDeltaToBalance(); err != nil {
			return err
		}
	}
	return nil
}

// CleanDeltasAndBalancesAtEpochEnd calls CleanDeltasAndBalancesAtEpochEnd
// on every registered organization, stopping at the first error.
func (n *Network) CleanDeltasAndBalancesAtEpochEnd() error {
	for _, id := range n.order {
		if err := n.orgs[id].CleanDeltasAndBalancesAtEpochEnd(); err != nil {
			return err
		}
	}
	return nil
}

// BeginNextEpoch calls BeginNextEpoch on every registered organization,
// stopping at the first error.
func (n *Network) BeginNextEpoch() error {
	for _, id := range n.order {
		if err := n.orgs[id].BeginNextEpoch(); err != nil {
			return err
		}
	}
	return nil
}

// DumpNetworkInfo returns a human-readable snapshot of the network's
// blockchain and every organization's bookkeeping state, for
// diagnostics.
func (n *Network) DumpNetworkInfo() []string {
	lines := []string{"blockchain:"}
	for _, l := range n.Blockchain.Dump() {
		lines = append(lines, "  "+l)
	}
	lines = append(lines, "organizations:")
	for _, id := range n.order {
		for _, l := range n.orgs[id].DumpInfo() {
			lines = append(lines, "  "+l)
		}
	}
	return lines
}
