package externalapi

import "encoding/hex"

// CommitmentSize is the size of a serialized commitment
const CommitmentSize = 32

// BlindingFactorSize is the size of a serialized blinding factor
const BlindingFactorSize = 32

// Commitment is the serialized form of a homomorphic commitment (a group
// element). The algebra over commitments is provided by a model.CommitmentFactory.
type Commitment [CommitmentSize]byte

// String returns the commitment as a hex string
func (c Commitment) String() string {
	return hex.EncodeToString(c[:])
}

// Equal returns whether c and other encode the same group element
func (c *Commitment) Equal(other *Commitment) bool {
	if c == nil || other == nil {
		return c == other
	}
	return *c == *other
}

// BlindingFactor is the serialized form of a scalar that masks a commitment's
// value. The zero value is the additive identity.
type BlindingFactor [BlindingFactorSize]byte

// String returns the blinding factor as a hex string
func (b BlindingFactor) String() string {
	return hex.EncodeToString(b[:])
}
