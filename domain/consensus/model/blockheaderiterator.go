package model

import "github.com/Grrwahrr/tari/domain/consensus/model/externalapi"

// BlockHeaderIterator is an iterator over block headers.
// Next advances the iterator and returns whether an item is available.
// Get returns the current header, or the error that ended the iteration.
type BlockHeaderIterator interface {
	Next() bool
	Get() (*externalapi.DomainBlockHeader, error)
	Close() error
}
