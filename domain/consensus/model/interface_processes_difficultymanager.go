package model

import "github.com/Grrwahrr/tari/domain/consensus/model/externalapi"

// RetargetFunc computes the target difficulty for the next block from an
// ascending window of historical samples
type RetargetFunc func(samples []externalapi.TargetDifficultySample, blockWindow uint64, targetTime uint64,
	minDifficulty externalapi.Difficulty, maxBlockTime uint64) (externalapi.Difficulty, error)
