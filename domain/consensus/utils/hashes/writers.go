package hashes

import (
	"hash"

	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	blockHashDomain = "BlockHash"
	blakePowDomain  = "BlakePoW"
)

// HashWriter is used to incrementally hash data without concatenating all of the data to a single buffer
// it exposes an io.Writer api and a Finalize function to get the resulting hash.
// This can only be created via one of the domain separated constructors
type HashWriter struct {
	hash.Hash
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// This write can never return an error, this is part of the hash.Hash interface contract.
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// Finalize returns the resulting hash
func (h HashWriter) Finalize() *externalapi.DomainHash {
	var sum externalapi.DomainHash
	copy(sum[:], h.Sum(nil))
	return &sum
}

// NewBlockHashWriter returns a new HashWriter used for block header hashes
func NewBlockHashWriter() HashWriter {
	return newBlake2bWriter(blockHashDomain)
}

// NewBlakePoWHashWriter returns a new HashWriter used for the Blake proof of work
func NewBlakePoWHashWriter() HashWriter {
	return newBlake2bWriter(blakePowDomain)
}

// NewSha3PoWHashWriter returns a new HashWriter used for the Sha3 proof of work
func NewSha3PoWHashWriter() HashWriter {
	return HashWriter{sha3.New256()}
}

func newBlake2bWriter(domain string) HashWriter {
	blake, err := blake2b.New256([]byte(domain))
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. %s is less than 64 bytes", domain))
	}
	return HashWriter{blake}
}
