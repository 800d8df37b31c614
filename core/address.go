package core

// Address is a keypair: SecretKey is known only to its owner,
// PublicKey is derived from it and safe to publish. Transactions name
// their sender and receiver by Address.
type Address struct {
	PublicKey F
	SecretKey F
}

// NewAddress derives an Address from a secret key: the public key is
// the field-reduced SHA-256 hash of the secret key's little-endian
// byte encoding.
func NewAddress(sk F) Address {
	le := BytesLE(sk)
	return Address{
		SecretKey: sk,
		PublicKey: HashToField(le[:]),
	}
}

// Equal reports whether two addresses share the same public key.
// Addresses are compared by public key alone: it is the identity that
// appears in transactions and blockchain entries.
func (a Address) Equal(other Address) bool {
	return a.PublicKey.Equal(&other.PublicKey)
}
