package pow

import (
	"math"
	"testing"

	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
)

func TestHashToDifficulty(t *testing.T) {
	tests := []struct {
		name     string
		hash     externalapi.DomainHash
		expected externalapi.Difficulty
	}{
		{
			name:     "zero hash",
			hash:     externalapi.DomainHash{},
			expected: math.MaxUint64,
		},
		{
			name: "max hash",
			hash: externalapi.DomainHash{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
			expected: 1,
		},
		{
			name:     "top bit set",
			hash:     externalapi.DomainHash{0x80},
			expected: 1,
		},
		{
			name:     "second byte",
			hash:     externalapi.DomainHash{0x00, 0x01},
			expected: 65535,
		},
		{
			name:     "small hash saturates",
			hash:     externalapi.DomainHash{31: 1},
			expected: math.MaxUint64,
		},
	}

	for _, test := range tests {
		difficulty := HashToDifficulty(&test.hash)
		if difficulty != test.expected {
			t.Errorf("TestHashToDifficulty: %s: expected %d but got %d", test.name, test.expected, difficulty)
		}
	}
}

func TestAchievedDifficulty(t *testing.T) {
	header := &externalapi.DomainBlockHeader{Height: 1, Timestamp: 60}

	for _, algo := range []externalapi.PowAlgorithm{externalapi.PowAlgorithmBlake, externalapi.PowAlgorithmSha3} {
		header.Pow.PowAlgo = algo
		difficulty, err := AchievedDifficulty(header)
		if err != nil {
			t.Fatalf("TestAchievedDifficulty: AchievedDifficulty unexpectedly failed for %s: %s", algo, err)
		}
		if difficulty < externalapi.MinDifficulty {
			t.Fatalf("TestAchievedDifficulty: achieved difficulty for %s is below the minimum", algo)
		}
	}

	blakeHeader := header.Clone()
	blakeHeader.Pow.PowAlgo = externalapi.PowAlgorithmBlake
	sha3Header := header.Clone()
	sha3Header.Pow.PowAlgo = externalapi.PowAlgorithmSha3
	blakeHash, _ := Hash(blakeHeader)
	sha3Hash, _ := Hash(sha3Header)
	if blakeHash.Equal(sha3Hash) {
		t.Fatalf("TestAchievedDifficulty: different algorithms produced the same hash")
	}

	header.Pow.PowAlgo = externalapi.PowAlgorithm(200)
	_, err := AchievedDifficulty(header)
	if err == nil {
		t.Fatalf("TestAchievedDifficulty: expected an error for an unknown algorithm")
	}
}
