package horizonsync

import (
	"github.com/Grrwahrr/tari/domain/consensus/model"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/Grrwahrr/tari/domain/consensus/ruleerrors"
	"github.com/Grrwahrr/tari/infrastructure/logger"
)

// offsetHeaderChunkSize is the number of headers fetched at once while
// summing kernel offsets
const offsetHeaderChunkSize = 100

// FinalStateValidator validates the aggregate balance of the chain at the
// horizon height once the UTXO and kernel sets have been downloaded:
//
//	Σ UTXO commitments == commit(0, emission) + Σ kernel excesses + commit(Σ kernel offsets, 0)
type FinalStateValidator struct {
	databaseContext   model.BlockchainDatabase
	rules             model.ConsensusRules
	commitmentFactory model.CommitmentFactory
}

var _ model.StatelessValidator[uint64] = (*FinalStateValidator)(nil)

// NewFinalStateValidator instantiates a new FinalStateValidator
func NewFinalStateValidator(databaseContext model.BlockchainDatabase, rules model.ConsensusRules,
	commitmentFactory model.CommitmentFactory) *FinalStateValidator {

	return &FinalStateValidator{
		databaseContext:   databaseContext,
		rules:             rules,
		commitmentFactory: commitmentFactory,
	}
}

// Validate validates the balance equation at horizonHeight
func (fsv *FinalStateValidator) Validate(horizonHeight uint64) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "FinalStateValidator.Validate")
	defer onEnd()

	totalOffset, err := fsv.fetchTotalOffsetCommitment(horizonHeight)
	if err != nil {
		return err
	}
	utxoCommitment, err := fsv.fetchAggregateUTXOCommitment()
	if err != nil {
		return err
	}
	emission, err := fsv.emissionCommitmentAt(horizonHeight)
	if err != nil {
		return err
	}
	kernelExcess, err := fsv.fetchAggregateKernelExcess()
	if err != nil {
		return err
	}

	expected, err := fsv.commitmentFactory.AddCommitments(emission, kernelExcess)
	if err != nil {
		return ruleerrors.NewErrCustom(err)
	}
	expected, err = fsv.commitmentFactory.AddCommitments(expected, totalOffset)
	if err != nil {
		return ruleerrors.NewErrCustom(err)
	}

	if !utxoCommitment.Equal(expected) {
		log.Warnf("Final state validation failed at height %d: UTXO commitment %s, expected %s",
			horizonHeight, utxoCommitment, expected)
		return ruleerrors.NewErrBalanceMismatch(horizonHeight)
	}

	log.Debugf("Final state validation: the state at height %d is VALID", horizonHeight)
	return nil
}

// fetchTotalOffsetCommitment commits, with value 0, to the sum of the total
// kernel offsets of all headers up to and including height
func (fsv *FinalStateValidator) fetchTotalOffsetCommitment(height uint64) (*externalapi.Commitment, error) {
	headerIterator := NewHeaderIterator(fsv.databaseContext, height, offsetHeaderChunkSize)
	defer headerIterator.Close()

	totalOffset := &externalapi.BlindingFactor{}
	total := 0
	for headerIterator.Next() {
		header, err := headerIterator.Get()
		if err != nil {
			return nil, ruleerrors.NewErrStorageFailure(err)
		}
		total++

		totalOffset, err = fsv.commitmentFactory.AddBlindingFactors(totalOffset, &header.TotalKernelOffset)
		if err != nil {
			return nil, ruleerrors.NewErrCustom(err)
		}
	}
	log.Tracef("Fetched %d headers", total)

	offsetCommitment, err := fsv.commitmentFactory.Commit(totalOffset, 0)
	if err != nil {
		return nil, ruleerrors.NewErrCustom(err)
	}
	return offsetCommitment, nil
}

func (fsv *FinalStateValidator) fetchAggregateUTXOCommitment() (*externalapi.Commitment, error) {
	utxos, err := fsv.databaseContext.FetchAllUTXOs()
	if err != nil {
		return nil, ruleerrors.NewErrStorageFailure(err)
	}
	log.Tracef("Fetched %d UTXOs", len(utxos))

	commitments := make([]*externalapi.Commitment, len(utxos))
	for i, utxo := range utxos {
		commitments[i] = &utxo.Commitment
	}
	sum, err := fsv.commitmentFactory.SumCommitments(commitments)
	if err != nil {
		return nil, ruleerrors.NewErrCustom(err)
	}
	return sum, nil
}

func (fsv *FinalStateValidator) emissionCommitmentAt(height uint64) (*externalapi.Commitment, error) {
	emission := fsv.rules.EmissionSchedule().SupplyAtBlock(height)
	log.Tracef("Expected emission at height %d is %d", height, emission)

	emissionCommitment, err := fsv.commitmentFactory.CommitValue(&externalapi.BlindingFactor{}, emission)
	if err != nil {
		return nil, ruleerrors.NewErrCustom(err)
	}
	return emissionCommitment, nil
}

func (fsv *FinalStateValidator) fetchAggregateKernelExcess() (*externalapi.Commitment, error) {
	kernels, err := fsv.databaseContext.FetchAllKernels()
	if err != nil {
		return nil, ruleerrors.NewErrStorageFailure(err)
	}
	log.Tracef("Fetched %d kernels", len(kernels))

	excesses := make([]*externalapi.Commitment, len(kernels))
	for i, kernel := range kernels {
		excesses[i] = &kernel.Excess
	}
	sum, err := fsv.commitmentFactory.SumCommitments(excesses)
	if err != nil {
		return nil, ruleerrors.NewErrCustom(err)
	}
	return sum, nil
}
