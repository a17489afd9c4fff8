package externalapi

import "fmt"

// PowAlgorithm identifies the proof-of-work function a header was mined with.
// Difficulty windows are tracked separately for every algorithm.
type PowAlgorithm uint8

// The set of supported proof-of-work algorithms
const (
	PowAlgorithmBlake PowAlgorithm = iota
	PowAlgorithmSha3
)

var powAlgorithmStrings = map[PowAlgorithm]string{
	PowAlgorithmBlake: "Blake",
	PowAlgorithmSha3:  "Sha3",
}

// String returns the human-readable name of the algorithm
func (algo PowAlgorithm) String() string {
	if name, ok := powAlgorithmStrings[algo]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint8(algo))
}

// IsKnown returns whether algo is one of the supported algorithms
func (algo PowAlgorithm) IsKnown() bool {
	_, ok := powAlgorithmStrings[algo]
	return ok
}

// Difficulty is a proof-of-work difficulty. Higher is harder.
type Difficulty uint64

// MinDifficulty is the smallest representable difficulty
const MinDifficulty Difficulty = 1

// ProofOfWork is the proof-of-work record carried in a block header
type ProofOfWork struct {
	PowAlgo          PowAlgorithm
	TargetDifficulty Difficulty
	PowData          []byte
}

// Clone returns a deep copy of pow
func (pow *ProofOfWork) Clone() ProofOfWork {
	powData := make([]byte, len(pow.PowData))
	copy(powData, pow.PowData)
	return ProofOfWork{
		PowAlgo:          pow.PowAlgo,
		TargetDifficulty: pow.TargetDifficulty,
		PowData:          powData,
	}
}

// TargetDifficultySample is a (timestamp, target difficulty) pair taken from
// a historical header, used as input for difficulty retargeting.
type TargetDifficultySample struct {
	Timestamp        uint64
	TargetDifficulty Difficulty
}
