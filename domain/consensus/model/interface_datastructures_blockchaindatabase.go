package model

import "github.com/Grrwahrr/tari/domain/consensus/model/externalapi"

// BlockchainDatabase is the read-only view of chain storage used by the
// horizon sync validators
type BlockchainDatabase interface {
	// FetchTipHeader returns the header at the tip of the canonical chain
	FetchTipHeader() (*externalapi.DomainBlockHeader, error)

	// FetchHeaders returns the headers at the given heights, in the order
	// the heights were given. Heights that are not stored are skipped, so
	// the result may be shorter than the input.
	FetchHeaders(heights []uint64) ([]*externalapi.DomainBlockHeader, error)

	// FetchAllUTXOs returns the entire current UTXO set
	FetchAllUTXOs() ([]*externalapi.UTXO, error)

	// FetchAllKernels returns the entire current kernel set
	FetchAllKernels() ([]*externalapi.Kernel, error)
}
