package horizonsync

import (
	"fmt"

	"github.com/Grrwahrr/tari/domain/consensus/model"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/Grrwahrr/tari/domain/consensus/processes/pastmediantimemanager"
	"github.com/Grrwahrr/tari/domain/consensus/ruleerrors"
	"github.com/Grrwahrr/tari/domain/consensus/utils/consensushashing"
	"github.com/Grrwahrr/tari/domain/consensus/utils/pow"
	"github.com/Grrwahrr/tari/infrastructure/logger"
)

// HeaderValidator validates a downloaded header against the current tip
// without access to block bodies. It checks the header's timestamp against
// the median timestamp of the preceding headers, and its proof of work
// against the target difficulty recomputed from history.
type HeaderValidator struct {
	databaseContext model.BlockchainDatabase
	rules           model.ConsensusRules
	retarget        model.RetargetFunc
}

var _ model.StatelessValidator[*externalapi.DomainBlockHeader] = (*HeaderValidator)(nil)

// NewHeaderValidator instantiates a new HeaderValidator
func NewHeaderValidator(databaseContext model.BlockchainDatabase, rules model.ConsensusRules,
	retarget model.RetargetFunc) *HeaderValidator {

	return &HeaderValidator{
		databaseContext: databaseContext,
		rules:           rules,
		retarget:        retarget,
	}
}

// Validate validates header against the tip of the database
func (hv *HeaderValidator) Validate(header *externalapi.DomainBlockHeader) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "HeaderValidator.Validate")
	defer onEnd()

	if header == nil {
		return ruleerrors.Errorf(ruleerrors.ErrCustom, "nil header")
	}

	headerHash := consensushashing.HeaderHash(header)
	headerID := fmt.Sprintf("header #%d (%s)", header.Height, headerHash)

	if hv.isGenesis(header, headerHash) {
		log.Debugf("Header validation: %s is the genesis header", headerID)
		return nil
	}

	tipHeader, err := hv.databaseContext.FetchTipHeader()
	if err != nil {
		return ruleerrors.NewErrStorageFailure(err)
	}
	constants := hv.rules.ConsensusConstants(header.Height)

	err = hv.checkMedianTimestamp(header, tipHeader, constants)
	if err != nil {
		return err
	}
	log.Tracef("Header validation: median timestamp is ok for %s", headerID)

	err = hv.checkAchievedAndTargetDifficulty(header, tipHeader, constants)
	if err != nil {
		return err
	}
	log.Tracef("Header validation: achieved difficulty is ok for %s", headerID)

	log.Debugf("Header validation: %s is VALID", headerID)
	return nil
}

func (hv *HeaderValidator) isGenesis(header *externalapi.DomainBlockHeader, headerHash *externalapi.DomainHash) bool {
	return header.Height == 0 && headerHash.Equal(hv.rules.GenesisHash())
}

// checkMedianTimestamp checks that the header's timestamp is not before the
// median timestamp of the MedianTimestampCount headers preceding it, the tip
// included.
func (hv *HeaderValidator) checkMedianTimestamp(header *externalapi.DomainBlockHeader,
	tipHeader *externalapi.DomainBlockHeader, constants model.ConsensusConstants) error {

	startHeight := saturatingSub(header.Height, constants.MedianTimestampCount())
	if startHeight == tipHeader.Height {
		return nil
	}

	heights := make([]uint64, 0, saturatingSub(tipHeader.Height, startHeight))
	for height := startHeight; height < tipHeader.Height; height++ {
		heights = append(heights, height)
	}
	headers, err := hv.databaseContext.FetchHeaders(heights)
	if err != nil {
		return ruleerrors.NewErrStorageFailure(err)
	}

	timestamps := make([]uint64, 0, len(headers)+1)
	for _, windowHeader := range headers {
		timestamps = append(timestamps, windowHeader.Timestamp)
	}
	timestamps = append(timestamps, tipHeader.Timestamp)

	medianTimestamp, err := pastmediantimemanager.MedianTimestamp(timestamps)
	if err != nil {
		return ruleerrors.NewErrCustom(err)
	}

	if header.Timestamp < medianTimestamp {
		log.Warnf("Header timestamp %d is less than median timestamp %d for header #%d",
			header.Timestamp, medianTimestamp, header.Height)
		return ruleerrors.Errorf(ruleerrors.ErrInvalidTimestamp,
			"header timestamp %d is less than median timestamp %d", header.Timestamp, medianTimestamp)
	}
	return nil
}

// checkAchievedAndTargetDifficulty recomputes the target difficulty of the
// header's proof-of-work algorithm, and checks that the header achieves it
// and records it.
func (hv *HeaderValidator) checkAchievedAndTargetDifficulty(header *externalapi.DomainBlockHeader,
	tipHeader *externalapi.DomainBlockHeader, constants model.ConsensusConstants) error {

	powAlgo := header.Pow.PowAlgo
	minDifficulty, err := constants.MinPowDifficulty(powAlgo)
	if err != nil {
		return ruleerrors.Errorf(ruleerrors.ErrInvalidProofOfWork, "%s", err)
	}

	targetDifficulties, err := hv.fetchTargetDifficulties(header, tipHeader, constants)
	if err != nil {
		return err
	}

	target, err := hv.retarget(
		targetDifficulties,
		constants.DifficultyBlockWindow(),
		constants.DiffTargetBlockInterval(),
		minDifficulty,
		constants.DifficultyMaxBlockInterval(),
	)
	if err != nil {
		log.Errorf("Validation could not get target difficulty: %s", err)
		return ruleerrors.Errorf(ruleerrors.ErrInvalidProofOfWork, "could not get target difficulty: %s", err)
	}

	achieved, err := pow.AchievedDifficulty(header)
	if err != nil {
		return ruleerrors.Errorf(ruleerrors.ErrInvalidProofOfWork, "%s", err)
	}
	if achieved < target {
		log.Warnf("Proof of work for header #%d was below the target difficulty. Achieved: %d, Target: %d",
			header.Height, achieved, target)
		return ruleerrors.Errorf(ruleerrors.ErrAchievedDifficultyTooLow,
			"achieved difficulty %d is below the target difficulty %d", achieved, target)
	}

	if header.Pow.TargetDifficulty != target {
		log.Warnf("Recorded header target difficulty was incorrect: (got = %d, expected = %d)",
			header.Pow.TargetDifficulty, target)
		return ruleerrors.Errorf(ruleerrors.ErrInvalidTargetDifficulty,
			"recorded target difficulty %d does not equal the expected %d", header.Pow.TargetDifficulty, target)
	}

	return nil
}

// fetchTargetDifficulties returns the timestamps and target difficulties of
// the most recent DifficultyBlockWindow headers, up to and including the tip,
// that were mined with the header's proof-of-work algorithm, oldest first.
//
// The chain is scanned backwards from the tip in batches of the block window
// size, and scanning stops as soon as the window is full.
func (hv *HeaderValidator) fetchTargetDifficulties(header *externalapi.DomainBlockHeader,
	tipHeader *externalapi.DomainBlockHeader, constants model.ConsensusConstants) (
	[]externalapi.TargetDifficultySample, error) {

	blockWindow := constants.DifficultyBlockWindow()
	startHeight := saturatingSub(tipHeader.Height, blockWindow)
	if startHeight == tipHeader.Height {
		return nil, nil
	}

	log.Tracef("fetchTargetDifficulties: tip height = %d, new header height = %d, block window = %d",
		tipHeader.Height, header.Height, blockWindow)

	targetDifficulties := make([]externalapi.TargetDifficultySample, 0, blockWindow)
	// batchEnd is exclusive so that height 0 can be included
	batchEnd := tipHeader.Height + 1
	for batchEnd > 0 && uint64(len(targetDifficulties)) < blockWindow {
		batchStart := saturatingSub(batchEnd, blockWindow)
		heights := make([]uint64, 0, batchEnd-batchStart)
		for height := batchEnd; height > batchStart; height-- {
			heights = append(heights, height-1)
		}
		batchEnd = batchStart

		headers, err := hv.databaseContext.FetchHeaders(heights)
		if err != nil {
			return nil, ruleerrors.NewErrStorageFailure(err)
		}

		log.Tracef("fetchTargetDifficulties: max remaining = %d", blockWindow-uint64(len(targetDifficulties)))
		for _, windowHeader := range headers {
			if windowHeader.Pow.PowAlgo != header.Pow.PowAlgo {
				continue
			}
			targetDifficulties = append(targetDifficulties, externalapi.TargetDifficultySample{
				Timestamp:        windowHeader.Timestamp,
				TargetDifficulty: windowHeader.Pow.TargetDifficulty,
			})
			if uint64(len(targetDifficulties)) == blockWindow {
				break
			}
		}
	}

	log.Tracef("fetchTargetDifficulties: #returned = %d", len(targetDifficulties))

	// Retargeting requires the samples in ascending order
	for i, j := 0, len(targetDifficulties)-1; i < j; i, j = i+1, j-1 {
		targetDifficulties[i], targetDifficulties[j] = targetDifficulties[j], targetDifficulties[i]
	}
	return targetDifficulties, nil
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
