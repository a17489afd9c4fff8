package model

import "github.com/Grrwahrr/tari/domain/consensus/model/externalapi"

// CommitmentFactory creates and combines additively homomorphic commitments.
// Decoding a malformed commitment or blinding factor returns an error.
type CommitmentFactory interface {
	// Commit returns a commitment to value masked by blinding
	Commit(blinding *externalapi.BlindingFactor, value uint64) (*externalapi.Commitment, error)

	// CommitValue returns a commitment to value masked by blinding. It is used
	// with the zero blinding factor to commit to a plain value.
	CommitValue(blinding *externalapi.BlindingFactor, value uint64) (*externalapi.Commitment, error)

	// AddCommitments returns a + b
	AddCommitments(a, b *externalapi.Commitment) (*externalapi.Commitment, error)

	// SumCommitments returns the sum of all given commitments. The sum of
	// an empty slice is the identity element.
	SumCommitments(commitments []*externalapi.Commitment) (*externalapi.Commitment, error)

	// AddBlindingFactors returns a + b
	AddBlindingFactors(a, b *externalapi.BlindingFactor) (*externalapi.BlindingFactor, error)
}
