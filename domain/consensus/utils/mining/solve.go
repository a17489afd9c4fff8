package mining

import (
	"math"
	"math/rand"

	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/Grrwahrr/tari/domain/consensus/utils/pow"
	"github.com/pkg/errors"
)

// SolveHeader searches for a nonce with which the header's proof of work
// achieves at least its target difficulty, starting at a random nonce
func SolveHeader(header *externalapi.DomainBlockHeader, rd *rand.Rand) error {
	for i := rd.Uint64(); i < math.MaxUint64; i++ {
		header.Nonce = i
		achievedDifficulty, err := pow.AchievedDifficulty(header)
		if err != nil {
			return err
		}
		if achievedDifficulty >= header.Pow.TargetDifficulty {
			return nil
		}
	}

	return errors.New("went over all the nonce space and couldn't find a single one that gives a valid header")
}
