package chainconfig

import (
	"github.com/Grrwahrr/tari/domain/consensus/model"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// ConsensusConstants are the consensus constants that apply from
// EffectiveFromHeight until the next set of constants takes effect.
type ConsensusConstants struct {
	// EffectiveFromHeight is the first height these constants apply to
	EffectiveFromHeight uint64 `json:"effectiveFromHeight"`

	// BlockWindow is the number of blocks of a single proof-of-work
	// algorithm that are considered when retargeting its difficulty
	BlockWindow uint64 `json:"blockWindow"`

	// TargetBlockInterval is the desired average time in seconds between
	// two blocks of the same proof-of-work algorithm
	TargetBlockInterval uint64 `json:"targetBlockInterval"`

	// MaxBlockInterval caps a single solve time during retargeting
	MaxBlockInterval uint64 `json:"maxBlockInterval"`

	// MedianTimestampWindow is the number of preceding headers whose
	// median timestamp a new header must not be older than
	MedianTimestampWindow uint64 `json:"medianTimestampWindow"`

	// MinDifficulties is the minimum difficulty of every supported
	// proof-of-work algorithm
	MinDifficulties map[externalapi.PowAlgorithm]externalapi.Difficulty `json:"minDifficulties"`
}

var _ model.ConsensusConstants = (*ConsensusConstants)(nil)

// DifficultyBlockWindow returns the retargeting window size
func (c *ConsensusConstants) DifficultyBlockWindow() uint64 {
	return c.BlockWindow
}

// DiffTargetBlockInterval returns the target time between blocks of the same algorithm
func (c *ConsensusConstants) DiffTargetBlockInterval() uint64 {
	return c.TargetBlockInterval
}

// DifficultyMaxBlockInterval returns the maximum solve time considered by retargeting
func (c *ConsensusConstants) DifficultyMaxBlockInterval() uint64 {
	return c.MaxBlockInterval
}

// MedianTimestampCount returns the size of the median timestamp window
func (c *ConsensusConstants) MedianTimestampCount() uint64 {
	return c.MedianTimestampWindow
}

// MinPowDifficulty returns the minimum difficulty of powAlgo
func (c *ConsensusConstants) MinPowDifficulty(powAlgo externalapi.PowAlgorithm) (externalapi.Difficulty, error) {
	minDifficulty, ok := c.MinDifficulties[powAlgo]
	if !ok {
		return 0, errors.Errorf("no minimum difficulty is defined for proof-of-work algorithm %s", powAlgo)
	}
	return minDifficulty, nil
}

// Clone returns a deep copy of c
func (c *ConsensusConstants) Clone() *ConsensusConstants {
	clone := *c
	clone.MinDifficulties = make(map[externalapi.PowAlgorithm]externalapi.Difficulty, len(c.MinDifficulties))
	for powAlgo, minDifficulty := range c.MinDifficulties {
		clone.MinDifficulties[powAlgo] = minDifficulty
	}
	return &clone
}

func (c *ConsensusConstants) validate() error {
	if c.BlockWindow == 0 {
		return errors.New("blockWindow must be positive")
	}
	if c.TargetBlockInterval == 0 {
		return errors.New("targetBlockInterval must be positive")
	}
	if c.MaxBlockInterval < c.TargetBlockInterval {
		return errors.Errorf("maxBlockInterval (%d) is smaller than targetBlockInterval (%d)",
			c.MaxBlockInterval, c.TargetBlockInterval)
	}
	if c.MedianTimestampWindow == 0 {
		return errors.New("medianTimestampWindow must be positive")
	}
	for powAlgo, minDifficulty := range c.MinDifficulties {
		if !powAlgo.IsKnown() {
			return errors.Errorf("minimum difficulty defined for unknown proof-of-work algorithm %s", powAlgo)
		}
		if minDifficulty < externalapi.MinDifficulty {
			return errors.Errorf("minimum difficulty of %s must be at least %d", powAlgo, externalapi.MinDifficulty)
		}
	}
	return nil
}
