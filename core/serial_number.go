package core

// SerialNumber uniquely tags a spent transaction output. Once a
// serial number has been appended to the blockchain, a second
// transaction presenting the same serial number is a double-spend.
type SerialNumber struct {
	Value F
}

// NewSerialNumber derives a SerialNumber from a nonce rho, the same
// way a transaction id or public key is derived: field-reduced
// SHA-256 of rho's little-endian encoding.
func NewSerialNumber(rho F) SerialNumber {
	le := BytesLE(rho)
	return SerialNumber{Value: HashToField(le[:])}
}

// Equal reports whether two serial numbers carry the same value.
func (s SerialNumber) Equal(other SerialNumber) bool {
	return s.Value.Equal(&other.Value)
}

// Key returns a comparable, map-safe representation of s, since F
// (fr.Element) is an array type but using it directly as a map key is
// fragile across non-canonical representations; Key always returns
// the canonical big-endian form.
func (s SerialNumber) Key() [32]byte {
	return CanonicalBE(s.Value)
}
