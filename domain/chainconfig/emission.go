package chainconfig

import (
	"math"

	"github.com/Grrwahrr/tari/domain/consensus/model"
)

// EmissionSchedule is a decaying block reward schedule. The reward starts at
// InitialReward, is halved every DecayInterval blocks and never drops below
// TailReward. The genesis block carries no reward.
type EmissionSchedule struct {
	InitialReward uint64 `json:"initialReward"`
	DecayInterval uint64 `json:"decayInterval"`
	TailReward    uint64 `json:"tailReward"`
}

var _ model.EmissionSchedule = (*EmissionSchedule)(nil)

// BlockReward returns the reward of the block at height
func (e *EmissionSchedule) BlockReward(height uint64) uint64 {
	if height == 0 {
		return 0
	}
	return e.epochReward((height - 1) / e.DecayInterval)
}

func (e *EmissionSchedule) epochReward(epoch uint64) uint64 {
	reward := uint64(0)
	if epoch < 64 {
		reward = e.InitialReward >> epoch
	}
	if reward < e.TailReward {
		return e.TailReward
	}
	return reward
}

// SupplyAtBlock returns the total amount emitted by all blocks up to and
// including height. The result saturates at math.MaxUint64.
func (e *EmissionSchedule) SupplyAtBlock(height uint64) uint64 {
	supply := uint64(0)
	remaining := height
	for epoch := uint64(0); remaining > 0; epoch++ {
		blocksInEpoch := e.DecayInterval
		if remaining < blocksInEpoch {
			blocksInEpoch = remaining
		}
		remaining -= blocksInEpoch

		reward := e.epochReward(epoch)
		if reward == e.TailReward {
			// Every block from here on pays the tail reward
			return saturatingAdd(supply, saturatingMul(reward, blocksInEpoch+remaining))
		}
		supply = saturatingAdd(supply, saturatingMul(reward, blocksInEpoch))
	}
	return supply
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func saturatingMul(a, b uint64) uint64 {
	if a != 0 && b > math.MaxUint64/a {
		return math.MaxUint64
	}
	return a * b
}
