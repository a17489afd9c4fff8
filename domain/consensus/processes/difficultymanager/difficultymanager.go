package difficultymanager

import (
	"math"
	"math/big"

	"github.com/Grrwahrr/tari/domain/consensus/model"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

var maxDifficulty = new(big.Int).SetUint64(math.MaxUint64)

var _ model.RetargetFunc = LWMATargetDifficulty

// LWMATargetDifficulty calculates the target difficulty of the next block
// using a linear weighted moving average over samples, oldest first.
//
// Only the most recent blockWindow+1 samples are used. Solve times are
// weighted linearly so that recent blocks count the most, each solve time
// is at least 1 and at most maxBlockTime, and the result is never below
// minDifficulty. All arithmetic is exact integer arithmetic.
func LWMATargetDifficulty(samples []externalapi.TargetDifficultySample, blockWindow uint64, targetTime uint64,
	minDifficulty externalapi.Difficulty, maxBlockTime uint64) (externalapi.Difficulty, error) {

	if uint64(len(samples)) > blockWindow+1 {
		samples = samples[uint64(len(samples))-(blockWindow+1):]
	}
	if len(samples) <= 1 {
		return minDifficulty, nil
	}

	// Use the number of samples rather than blockWindow, to include early
	// cases where there are fewer samples than the window
	n := uint64(len(samples) - 1)

	sumDifficulty := new(big.Int)
	weightedSolveTimes := new(big.Int)
	previousTimestamp := samples[0].Timestamp
	for i := uint64(1); i <= n; i++ {
		sample := samples[i]
		sumDifficulty.Add(sumDifficulty, new(big.Int).SetUint64(uint64(sample.TargetDifficulty)))

		// A timestamp that doesn't move forward counts as a one second solve
		// time, and bumps the previous timestamp by one second. The bump
		// saturates since nothing after math.MaxUint64 can move forward.
		var solveTime uint64
		if sample.Timestamp > previousTimestamp {
			solveTime = sample.Timestamp - previousTimestamp
			previousTimestamp = sample.Timestamp
		} else {
			solveTime = 1
			if previousTimestamp < math.MaxUint64 {
				previousTimestamp++
			}
		}
		if solveTime > maxBlockTime {
			solveTime = maxBlockTime
		}

		weightedSolveTime := new(big.Int).SetUint64(solveTime)
		weightedSolveTime.Mul(weightedSolveTime, new(big.Int).SetUint64(i))
		weightedSolveTimes.Add(weightedSolveTimes, weightedSolveTime)
	}

	if weightedSolveTimes.Sign() == 0 {
		return 0, errors.Errorf("the weighted solve time of %d samples is zero, max block time is %d",
			len(samples), maxBlockTime)
	}

	// target = averageDifficulty * k / weightedSolveTimes
	// where averageDifficulty = sumDifficulty / n and k = n(n+1)/2 * targetTime,
	// which simplifies to sumDifficulty * (n+1) * targetTime / (2 * weightedSolveTimes)
	target := new(big.Int).Set(sumDifficulty)
	target.Mul(target, new(big.Int).SetUint64(n+1))
	target.Mul(target, new(big.Int).SetUint64(targetTime))
	target.Div(target, new(big.Int).Lsh(weightedSolveTimes, 1))

	if target.Cmp(maxDifficulty) > 0 {
		return 0, errors.Errorf("target difficulty %s overflows a 64 bit difficulty", target)
	}

	targetDifficulty := externalapi.Difficulty(target.Uint64())
	if targetDifficulty < minDifficulty {
		return minDifficulty, nil
	}
	return targetDifficulty, nil
}
