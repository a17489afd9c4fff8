package chainconfig

import (
	"sort"

	"github.com/Grrwahrr/tari/domain/consensus/model"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/Grrwahrr/tari/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

// Network identifies a chain network
type Network uint8

// The set of default networks
const (
	Mainnet Network = iota
	Testnet
	Devnet
)

const (
	// blockWindow is the number of blocks of one algorithm used for retargeting
	blockWindow = 90

	// targetBlockInterval is the target time in seconds between two
	// blocks of the same algorithm. Two algorithms are mined in parallel
	// so that blocks of any algorithm arrive every 120 seconds on average.
	targetBlockInterval = 240

	// maxBlockInterval caps a single solve time at 6 target intervals
	maxBlockInterval = targetBlockInterval * 6

	// medianTimestampWindow is the number of previous headers whose
	// median timestamp bounds the timestamp of a new header
	medianTimestampWindow = 11

	// microUnitsPerCoin is the number of indivisible units in one coin
	microUnitsPerCoin = 1_000_000
)

// Params defines a network by its parameters
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net identifies the network.
	Net Network

	// GenesisHeader defines the first header of the chain.
	GenesisHeader *externalapi.DomainBlockHeader

	// GenesisHeaderHash is the hash of GenesisHeader.
	GenesisHeaderHash *externalapi.DomainHash

	// Constants is the list of consensus constants, sorted by ascending
	// EffectiveFromHeight. The first entry must take effect at height 0.
	Constants []*ConsensusConstants

	// Emission defines the block reward schedule of the network.
	Emission *EmissionSchedule
}

var _ model.ConsensusRules = (*Params)(nil)

// ConsensusConstants returns the consensus constants in effect at height
func (p *Params) ConsensusConstants(height uint64) model.ConsensusConstants {
	return p.constantsAt(height)
}

func (p *Params) constantsAt(height uint64) *ConsensusConstants {
	index := sort.Search(len(p.Constants), func(i int) bool {
		return p.Constants[i].EffectiveFromHeight > height
	})
	if index == 0 {
		// Validate guarantees that the first constants are effective from
		// genesis, so this only happens on unvalidated params
		return p.Constants[0]
	}
	return p.Constants[index-1]
}

// GenesisHash returns the hash of the network's genesis header
func (p *Params) GenesisHash() *externalapi.DomainHash {
	return p.GenesisHeaderHash
}

// EmissionSchedule returns the network's emission schedule
func (p *Params) EmissionSchedule() model.EmissionSchedule {
	return p.Emission
}

// Clone returns a deep copy of p. It is used to derive modified params
// without affecting the default networks.
func (p *Params) Clone() *Params {
	clone := *p
	clone.GenesisHeader = p.GenesisHeader.Clone()
	genesisHash := *p.GenesisHeaderHash
	clone.GenesisHeaderHash = &genesisHash
	clone.Constants = make([]*ConsensusConstants, len(p.Constants))
	for i, constants := range p.Constants {
		clone.Constants[i] = constants.Clone()
	}
	emission := *p.Emission
	clone.Emission = &emission
	return &clone
}

// Validate checks the internal consistency of p
func (p *Params) Validate() error {
	if len(p.Constants) == 0 {
		return errors.Errorf("network %s has no consensus constants", p.Name)
	}
	if p.Constants[0].EffectiveFromHeight != 0 {
		return errors.Errorf("the first consensus constants of network %s take effect at height %d "+
			"instead of genesis", p.Name, p.Constants[0].EffectiveFromHeight)
	}
	for i, constants := range p.Constants {
		if i > 0 && constants.EffectiveFromHeight <= p.Constants[i-1].EffectiveFromHeight {
			return errors.Errorf("consensus constants of network %s are not sorted by ascending "+
				"effective height", p.Name)
		}
		err := constants.validate()
		if err != nil {
			return errors.Wrapf(err, "invalid consensus constants effective from height %d",
				constants.EffectiveFromHeight)
		}
	}
	if p.Emission.DecayInterval == 0 {
		return errors.Errorf("the emission decay interval of network %s must be positive", p.Name)
	}
	if !consensushashing.HeaderHash(p.GenesisHeader).Equal(p.GenesisHeaderHash) {
		return errors.Errorf("the genesis hash of network %s does not match its genesis header", p.Name)
	}
	return nil
}

func defaultConstants(minBlakeDifficulty, minSha3Difficulty externalapi.Difficulty) *ConsensusConstants {
	return &ConsensusConstants{
		EffectiveFromHeight:   0,
		BlockWindow:           blockWindow,
		TargetBlockInterval:   targetBlockInterval,
		MaxBlockInterval:      maxBlockInterval,
		MedianTimestampWindow: medianTimestampWindow,
		MinDifficulties: map[externalapi.PowAlgorithm]externalapi.Difficulty{
			externalapi.PowAlgorithmBlake: minBlakeDifficulty,
			externalapi.PowAlgorithmSha3:  minSha3Difficulty,
		},
	}
}

func newParams(name string, net Network, constants []*ConsensusConstants, emission *EmissionSchedule) Params {
	genesisHeader := newGenesisHeader(uint64(net))
	return Params{
		Name:              name,
		Net:               net,
		GenesisHeader:     genesisHeader,
		GenesisHeaderHash: consensushashing.HeaderHash(genesisHeader),
		Constants:         constants,
		Emission:          emission,
	}
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = newParams("mainnet", Mainnet,
	[]*ConsensusConstants{
		defaultConstants(60_000_000, 60_000),
	},
	&EmissionSchedule{
		InitialReward: 13_952 * microUnitsPerCoin,
		DecayInterval: 262_800,
		TailReward:    800 * microUnitsPerCoin,
	})

// TestnetParams defines the network parameters for the test network.
var TestnetParams = newParams("testnet", Testnet,
	[]*ConsensusConstants{
		defaultConstants(1, 1),
		func() *ConsensusConstants {
			constants := defaultConstants(60_000, 60)
			constants.EffectiveFromHeight = 1400
			return constants
		}(),
	},
	&EmissionSchedule{
		InitialReward: 5_538_846_115,
		DecayInterval: 262_800,
		TailReward:    100_000_000,
	})

// DevnetParams defines the network parameters for the development network.
var DevnetParams = newParams("devnet", Devnet,
	[]*ConsensusConstants{
		func() *ConsensusConstants {
			constants := defaultConstants(1, 1)
			constants.BlockWindow = 10
			constants.TargetBlockInterval = 20
			constants.MaxBlockInterval = 120
			return constants
		}(),
	},
	&EmissionSchedule{
		InitialReward: 1000,
		DecayInterval: 100,
		TailReward:    10,
	})

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")

	// ErrUnknownNet describes an error where no network is registered
	// under the requested name.
	ErrUnknownNet = errors.New("unknown network")
)

var registeredNets = make(map[string]*Params)

// Register registers the network parameters for a network. This may
// error with ErrDuplicateNet if the network is already registered (either
// due to a previous Register call, or the network being one of the default
// networks).
func Register(params *Params) error {
	if _, ok := registeredNets[params.Name]; ok {
		return errors.Wrapf(ErrDuplicateNet, "network %s", params.Name)
	}
	registeredNets[params.Name] = params
	return nil
}

// ParamsByName returns the registered params of the network called name
func ParamsByName(name string) (*Params, error) {
	params, ok := registeredNets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNet, "network %s", name)
	}
	return params, nil
}

// mustRegister performs the same function as Register except it panics if there
// is an error. This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := params.Validate(); err != nil {
		panic("invalid network params: " + err.Error())
	}
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainnetParams)
	mustRegister(&TestnetParams)
	mustRegister(&DevnetParams)
}
