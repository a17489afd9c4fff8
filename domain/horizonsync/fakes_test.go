package horizonsync

import (
	"sync"

	"github.com/Grrwahrr/tari/domain/chainconfig"
	"github.com/Grrwahrr/tari/domain/consensus/model"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// fakeDatabase is an in-memory model.BlockchainDatabase that records the
// header fetches made against it
type fakeDatabase struct {
	sync.Mutex
	headers map[uint64]*externalapi.DomainBlockHeader
	tip     *externalapi.DomainBlockHeader
	utxos   []*externalapi.UTXO
	kernels []*externalapi.Kernel

	fetchErr       error
	fetchedHeights [][]uint64
}

func newFakeDatabase() *fakeDatabase {
	return &fakeDatabase{headers: make(map[uint64]*externalapi.DomainBlockHeader)}
}

// addHeader stores header and makes it the tip if it is the highest so far
func (db *fakeDatabase) addHeader(header *externalapi.DomainBlockHeader) {
	db.headers[header.Height] = header
	if db.tip == nil || header.Height >= db.tip.Height {
		db.tip = header
	}
}

func (db *fakeDatabase) FetchTipHeader() (*externalapi.DomainBlockHeader, error) {
	if db.fetchErr != nil {
		return nil, db.fetchErr
	}
	if db.tip == nil {
		return nil, errors.New("no tip")
	}
	return db.tip, nil
}

func (db *fakeDatabase) FetchHeaders(heights []uint64) ([]*externalapi.DomainBlockHeader, error) {
	db.Lock()
	defer db.Unlock()

	db.fetchedHeights = append(db.fetchedHeights, append([]uint64(nil), heights...))
	if db.fetchErr != nil {
		return nil, db.fetchErr
	}
	headers := make([]*externalapi.DomainBlockHeader, 0, len(heights))
	for _, height := range heights {
		header, ok := db.headers[height]
		if ok {
			headers = append(headers, header)
		}
	}
	return headers, nil
}

func (db *fakeDatabase) FetchAllUTXOs() ([]*externalapi.UTXO, error) {
	if db.fetchErr != nil {
		return nil, db.fetchErr
	}
	return db.utxos, nil
}

func (db *fakeDatabase) FetchAllKernels() ([]*externalapi.Kernel, error) {
	if db.fetchErr != nil {
		return nil, db.fetchErr
	}
	return db.kernels, nil
}

func (db *fakeDatabase) fetchHeadersCallCount() int {
	db.Lock()
	defer db.Unlock()
	return len(db.fetchedHeights)
}

// fixedEmission is an emission schedule with the same supply at every height
type fixedEmission uint64

func (e fixedEmission) SupplyAtBlock(uint64) uint64 {
	return uint64(e)
}

type fakeRules struct {
	constants   *chainconfig.ConsensusConstants
	genesisHash *externalapi.DomainHash
	emission    model.EmissionSchedule
}

func (r *fakeRules) ConsensusConstants(uint64) model.ConsensusConstants {
	return r.constants
}

func (r *fakeRules) GenesisHash() *externalapi.DomainHash {
	return r.genesisHash
}

func (r *fakeRules) EmissionSchedule() model.EmissionSchedule {
	return r.emission
}

func newFakeRules(blockWindow, targetBlockInterval, medianTimestampCount uint64,
	minDifficulty externalapi.Difficulty) *fakeRules {

	return &fakeRules{
		constants: &chainconfig.ConsensusConstants{
			BlockWindow:           blockWindow,
			TargetBlockInterval:   targetBlockInterval,
			MaxBlockInterval:      targetBlockInterval * 6,
			MedianTimestampWindow: medianTimestampCount,
			MinDifficulties: map[externalapi.PowAlgorithm]externalapi.Difficulty{
				externalapi.PowAlgorithmBlake: minDifficulty,
				externalapi.PowAlgorithmSha3:  minDifficulty,
			},
		},
		genesisHash: &externalapi.DomainHash{0xff},
		emission:    fixedEmission(0),
	}
}

func newHeader(height uint64, timestamp uint64, powAlgo externalapi.PowAlgorithm,
	targetDifficulty externalapi.Difficulty) *externalapi.DomainBlockHeader {

	return &externalapi.DomainBlockHeader{
		Version:   1,
		Height:    height,
		Timestamp: timestamp,
		Pow: externalapi.ProofOfWork{
			PowAlgo:          powAlgo,
			TargetDifficulty: targetDifficulty,
		},
	}
}

// constantTarget is a model.RetargetFunc that always returns target
func constantTarget(target externalapi.Difficulty) model.RetargetFunc {
	return func([]externalapi.TargetDifficultySample, uint64, uint64, externalapi.Difficulty, uint64) (
		externalapi.Difficulty, error) {

		return target, nil
	}
}
