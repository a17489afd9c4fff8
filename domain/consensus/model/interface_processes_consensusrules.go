package model

import "github.com/Grrwahrr/tari/domain/consensus/model/externalapi"

// ConsensusConstants exposes the consensus constants in effect at some height
type ConsensusConstants interface {
	DifficultyBlockWindow() uint64
	DiffTargetBlockInterval() uint64
	DifficultyMaxBlockInterval() uint64
	MedianTimestampCount() uint64
	MinPowDifficulty(powAlgo externalapi.PowAlgorithm) (externalapi.Difficulty, error)
}

// EmissionSchedule resolves the total coin supply created up to some height
type EmissionSchedule interface {
	SupplyAtBlock(height uint64) uint64
}

// ConsensusRules is the read-only consensus rules provider
type ConsensusRules interface {
	ConsensusConstants(height uint64) ConsensusConstants
	GenesisHash() *externalapi.DomainHash
	EmissionSchedule() EmissionSchedule
}
