package core

import "errors"

// Sentinel errors: each data failure this package surfaces wraps one
// of these with fmt.Errorf("...: %w", ...) so callers can
// errors.Is/errors.As regardless of call depth. State-machine misuse
// errors from Organization and Split's values/receivers length
// mismatch are plain errors that wrap none of them.
var (
	// ErrDuplicateSerialNumber: the blockchain or an organization
	// already contains the serial number being inserted.
	ErrDuplicateSerialNumber = errors.New("nummus: duplicate serial number")

	// ErrSplitSumMismatch: Transaction.Split's values did not sum to
	// the original transaction's value.
	ErrSplitSumMismatch = errors.New("nummus: split values do not sum to transaction value")

	// ErrInvalidMerkleWitness: a Merkle inclusion self-check failed
	// during root construction, indicating data corruption.
	ErrInvalidMerkleWitness = errors.New("nummus: merkle inclusion self-check failed")

	// ErrSubsetViolation: an organization's spent serials or root
	// cache are not fully contained in the blockchain's keys/values.
	ErrSubsetViolation = errors.New("nummus: serial number or transaction root not found on blockchain")

	// ErrOccurrenceMismatch: the claimed occurrence vector disagrees
	// with the count computed from the blockchain.
	ErrOccurrenceMismatch = errors.New("nummus: occurrence vector mismatch")

	// ErrProofFailure: a SNARK proof failed to verify.
	ErrProofFailure = errors.New("nummus: zero-knowledge proof failed to verify")

	// ErrCapacityExceeded: an organization's serial/root/distinct-serial
	// counts exceed the fixed capacity a circuit was compiled for.
	ErrCapacityExceeded = errors.New("nummus: organization state exceeds circuit capacity")
)
