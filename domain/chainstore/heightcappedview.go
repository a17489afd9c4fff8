package chainstore

import (
	"github.com/Grrwahrr/tari/domain/consensus/model"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

type heightCappedView struct {
	model.BlockchainDatabase
	maxHeight uint64
}

// NewHeightCappedView returns a view of db as it was when the header at
// maxHeight was its tip. Headers above maxHeight are hidden. UTXO and
// kernel reads pass through unchanged.
func NewHeightCappedView(db model.BlockchainDatabase, maxHeight uint64) model.BlockchainDatabase {
	return &heightCappedView{
		BlockchainDatabase: db,
		maxHeight:          maxHeight,
	}
}

func (v *heightCappedView) FetchTipHeader() (*externalapi.DomainBlockHeader, error) {
	headers, err := v.BlockchainDatabase.FetchHeaders([]uint64{v.maxHeight})
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, errors.Errorf("no header at capped tip height %d", v.maxHeight)
	}
	return headers[0], nil
}

func (v *heightCappedView) FetchHeaders(heights []uint64) ([]*externalapi.DomainBlockHeader, error) {
	capped := make([]uint64, 0, len(heights))
	for _, height := range heights {
		if height <= v.maxHeight {
			capped = append(capped, height)
		}
	}
	return v.BlockchainDatabase.FetchHeaders(capped)
}
