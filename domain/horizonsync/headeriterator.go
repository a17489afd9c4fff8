package horizonsync

import (
	"github.com/Grrwahrr/tari/domain/consensus/model"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// headerIterator iterates over the headers at heights 0 to maxHeight
// inclusive. Headers are fetched from the database in chunks so that at
// most one chunk is held in memory.
type headerIterator struct {
	databaseContext model.BlockchainDatabase
	maxHeight       uint64
	chunkSize       uint64

	cursor   uint64
	chunk    []*externalapi.DomainBlockHeader
	current  *externalapi.DomainBlockHeader
	err      error
	isError  bool
	isDone   bool
	isClosed bool
}

// NewHeaderIterator returns an iterator over the headers from genesis up to
// and including maxHeight. Every fetch requests the heights
// [cursor, min(cursor+chunkSize, maxHeight)].
//
// A storage failure is returned once from Get, after which the iteration ends.
// A fetch that returns no headers also ends the iteration.
func NewHeaderIterator(databaseContext model.BlockchainDatabase, maxHeight uint64,
	chunkSize uint64) model.BlockHeaderIterator {

	return &headerIterator{
		databaseContext: databaseContext,
		maxHeight:       maxHeight,
		chunkSize:       chunkSize,
	}
}

func (hi *headerIterator) Next() bool {
	if hi.isClosed {
		panic("Tried using a closed headerIterator")
	}
	hi.current = nil
	if hi.isError {
		hi.err = nil
		hi.isDone = true
		return false
	}

	if len(hi.chunk) == 0 {
		if hi.isDone {
			return false
		}

		heights := hi.nextChunk()
		if len(heights) == 0 {
			hi.isDone = true
			return false
		}

		headers, err := hi.databaseContext.FetchHeaders(heights)
		if err != nil {
			hi.isError = true
			hi.err = err
			return true
		}
		if len(headers) == 0 {
			log.Debugf("No headers returned for heights %d..%d, ending iteration",
				heights[0], heights[len(heights)-1])
			hi.isDone = true
			return false
		}
		hi.cursor += uint64(len(headers))
		hi.chunk = headers
	}

	hi.current = hi.chunk[0]
	hi.chunk[0] = nil
	hi.chunk = hi.chunk[1:]
	return true
}

func (hi *headerIterator) nextChunk() []uint64 {
	if hi.cursor > hi.maxHeight {
		return nil
	}
	upperBound := hi.maxHeight
	if hi.maxHeight-hi.cursor > hi.chunkSize {
		upperBound = hi.cursor + hi.chunkSize
	}

	heights := make([]uint64, 0, upperBound-hi.cursor+1)
	for height := hi.cursor; ; height++ {
		heights = append(heights, height)
		if height == upperBound {
			break
		}
	}
	return heights
}

func (hi *headerIterator) Get() (*externalapi.DomainBlockHeader, error) {
	if hi.isClosed {
		return nil, errors.New("Tried using a closed headerIterator")
	}
	return hi.current, hi.err
}

func (hi *headerIterator) Close() error {
	if hi.isClosed {
		return errors.New("Tried using a closed headerIterator")
	}
	hi.isClosed = true
	hi.databaseContext = nil
	hi.chunk = nil
	hi.current = nil
	hi.err = nil
	return nil
}
