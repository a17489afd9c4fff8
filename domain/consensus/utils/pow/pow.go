package pow

import (
	"math"
	"math/big"

	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/Grrwahrr/tari/domain/consensus/utils/hashes"
	"github.com/Grrwahrr/tari/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// maxTarget is the largest 256-bit value. Difficulty is maxTarget divided
// by the proof-of-work hash interpreted as a big-endian integer.
var maxTarget = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

var maxDifficulty = new(big.Int).SetUint64(math.MaxUint64)

// Hash returns the proof-of-work hash of header according to its algorithm
func Hash(header *externalapi.DomainBlockHeader) (*externalapi.DomainHash, error) {
	var writer hashes.HashWriter
	switch header.Pow.PowAlgo {
	case externalapi.PowAlgorithmBlake:
		writer = hashes.NewBlakePoWHashWriter()
	case externalapi.PowAlgorithmSha3:
		writer = hashes.NewSha3PoWHashWriter()
	default:
		return nil, errors.Errorf("unknown proof of work algorithm %s", header.Pow.PowAlgo)
	}

	err := serialization.WriteHeaderMiningFields(writer, header)
	if err != nil {
		return nil, err
	}
	writer.InfallibleWrite(header.Pow.PowData)
	return writer.Finalize(), nil
}

// HashToDifficulty converts a proof-of-work hash to the difficulty it achieves.
// A zero hash achieves the maximum difficulty.
func HashToDifficulty(hash *externalapi.DomainHash) externalapi.Difficulty {
	hashValue := new(big.Int).SetBytes(hash[:])
	if hashValue.Sign() == 0 {
		return externalapi.Difficulty(math.MaxUint64)
	}

	difficulty := new(big.Int).Div(maxTarget, hashValue)
	if difficulty.Cmp(maxDifficulty) > 0 {
		return externalapi.Difficulty(math.MaxUint64)
	}
	return externalapi.Difficulty(difficulty.Uint64())
}

// AchievedDifficulty returns the difficulty achieved by the header's proof of work
func AchievedDifficulty(header *externalapi.DomainBlockHeader) (externalapi.Difficulty, error) {
	hash, err := Hash(header)
	if err != nil {
		return 0, err
	}
	return HashToDifficulty(hash), nil
}
