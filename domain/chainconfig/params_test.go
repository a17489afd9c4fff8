package chainconfig_test

import (
	"testing"

	. "github.com/Grrwahrr/tari/domain/chainconfig"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/Grrwahrr/tari/domain/consensus/utils/consensushashing"
	"github.com/Grrwahrr/tari/domain/consensus/utils/testutils"
	"github.com/pkg/errors"
)

func TestGenesisHashes(t *testing.T) {
	testutils.ForAllNets(t, func(t *testing.T, params *Params) {
		if params.GenesisHeader.Height != 0 {
			t.Fatalf("TestGenesisHashes: genesis header of %s has height %d", params.Name,
				params.GenesisHeader.Height)
		}
		hash := consensushashing.HeaderHash(params.GenesisHeader)
		if !hash.Equal(params.GenesisHash()) {
			t.Fatalf("TestGenesisHashes: genesis hash of %s is %s but the header hashes to %s",
				params.Name, params.GenesisHash(), hash)
		}
	})

	seen := make(map[externalapi.DomainHash]string)
	for _, params := range []*Params{&MainnetParams, &TestnetParams, &DevnetParams} {
		if name, ok := seen[*params.GenesisHash()]; ok {
			t.Fatalf("TestGenesisHashes: %s and %s share a genesis hash", name, params.Name)
		}
		seen[*params.GenesisHash()] = params.Name
	}
}

func TestConsensusConstantsByHeight(t *testing.T) {
	tests := []struct {
		height        uint64
		minSha3       externalapi.Difficulty
		effectiveFrom uint64
	}{
		{height: 0, minSha3: 1, effectiveFrom: 0},
		{height: 1399, minSha3: 1, effectiveFrom: 0},
		{height: 1400, minSha3: 60, effectiveFrom: 1400},
		{height: 1 << 62, minSha3: 60, effectiveFrom: 1400},
	}

	for _, test := range tests {
		constants := TestnetParams.ConsensusConstants(test.height)
		minSha3, err := constants.MinPowDifficulty(externalapi.PowAlgorithmSha3)
		if err != nil {
			t.Fatalf("TestConsensusConstantsByHeight: MinPowDifficulty: %s", err)
		}
		if minSha3 != test.minSha3 {
			t.Fatalf("TestConsensusConstantsByHeight: at height %d expected min sha3 difficulty %d but got %d",
				test.height, test.minSha3, minSha3)
		}
		effectiveFrom := constants.(*ConsensusConstants).EffectiveFromHeight
		if effectiveFrom != test.effectiveFrom {
			t.Fatalf("TestConsensusConstantsByHeight: at height %d expected constants effective from %d "+
				"but got %d", test.height, test.effectiveFrom, effectiveFrom)
		}
	}
}

func TestMinPowDifficultyUnknownAlgorithm(t *testing.T) {
	constants := MainnetParams.ConsensusConstants(0)
	_, err := constants.MinPowDifficulty(externalapi.PowAlgorithm(7))
	if err == nil {
		t.Fatalf("TestMinPowDifficultyUnknownAlgorithm: expected an error for an unknown algorithm")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(params *Params)
	}{
		{
			name:   "no constants",
			modify: func(params *Params) { params.Constants = nil },
		},
		{
			name:   "first constants not at genesis",
			modify: func(params *Params) { params.Constants[0].EffectiveFromHeight = 5 },
		},
		{
			name: "unsorted constants",
			modify: func(params *Params) {
				params.Constants = append(params.Constants, params.Constants[0].Clone())
			},
		},
		{
			name:   "zero block window",
			modify: func(params *Params) { params.Constants[0].BlockWindow = 0 },
		},
		{
			name:   "max interval below target interval",
			modify: func(params *Params) { params.Constants[0].MaxBlockInterval = 1 },
		},
		{
			name: "zero min difficulty",
			modify: func(params *Params) {
				params.Constants[0].MinDifficulties[externalapi.PowAlgorithmBlake] = 0
			},
		},
		{
			name:   "zero decay interval",
			modify: func(params *Params) { params.Emission.DecayInterval = 0 },
		},
		{
			name:   "modified genesis",
			modify: func(params *Params) { params.GenesisHeader.Timestamp++ },
		},
	}

	if err := DevnetParams.Validate(); err != nil {
		t.Fatalf("TestValidate: devnet params are invalid: %s", err)
	}
	for _, test := range tests {
		params := DevnetParams.Clone()
		test.modify(params)
		if err := params.Validate(); err == nil {
			t.Errorf("TestValidate: %s: expected an error", test.name)
		}
	}
	if err := DevnetParams.Validate(); err != nil {
		t.Fatalf("TestValidate: modifying a clone changed the devnet params: %s", err)
	}
}

func TestRegister(t *testing.T) {
	for _, params := range []*Params{&MainnetParams, &TestnetParams, &DevnetParams} {
		err := Register(params)
		if !errors.Is(err, ErrDuplicateNet) {
			t.Fatalf("TestRegister: registering %s again: expected ErrDuplicateNet but got %v", params.Name, err)
		}
	}

	mocknet := DevnetParams.Clone()
	mocknet.Name = "mocknet"
	if err := Register(mocknet); err != nil {
		t.Fatalf("TestRegister: Register: %s", err)
	}
	registered, err := ParamsByName("mocknet")
	if err != nil {
		t.Fatalf("TestRegister: ParamsByName: %s", err)
	}
	if registered != mocknet {
		t.Fatalf("TestRegister: ParamsByName returned different params than the ones registered")
	}

	_, err = ParamsByName("nosuchnet")
	if !errors.Is(err, ErrUnknownNet) {
		t.Fatalf("TestRegister: expected ErrUnknownNet but got %v", err)
	}
}
