package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Grrwahrr/tari/domain/chainconfig"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet            bool   `long:"testnet" description:"Use the test network"`
	Devnet             bool   `long:"devnet" description:"Use the development test network"`
	OverrideParamsFile string `long:"override-params-file" description:"Overrides consensus params (allowed only on devnet)"`

	ActiveNetParams *chainconfig.Params
}

type overrideParamsConfig struct {
	BlockWindow           *uint64 `json:"blockWindow"`
	TargetBlockInterval   *uint64 `json:"targetBlockInterval"`
	MaxBlockInterval      *uint64 `json:"maxBlockInterval"`
	MedianTimestampWindow *uint64 `json:"medianTimestampWindow"`
	MinBlakeDifficulty    *uint64 `json:"minBlakeDifficulty"`
	MinSha3Difficulty     *uint64 `json:"minSha3Difficulty"`
	InitialReward         *uint64 `json:"initialReward"`
	DecayInterval         *uint64 `json:"decayInterval"`
	TailReward            *uint64 `json:"tailReward"`
}

// ResolveNetwork parses the network command line argument and sets ActiveNetParams accordingly.
// It returns error if more than one network was selected, nil otherwise.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	netName := chainconfig.MainnetParams.Name
	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if networkFlags.Testnet {
		numNets++
		netName = chainconfig.TestnetParams.Name
	}
	if networkFlags.Devnet {
		numNets++
		netName = chainconfig.DevnetParams.Name
	}
	if numNets > 1 {
		message := "Multiple networks parameters (testnet, devnet, etc.) cannot be used " +
			"together. Please choose only one network"
		err := errors.Errorf(message)
		if parser != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
		}
		return err
	}
	params, err := chainconfig.ParamsByName(netName)
	if err != nil {
		return err
	}
	// The active params are always a copy so that overrides never leak
	// into the registered networks
	networkFlags.ActiveNetParams = params.Clone()

	err = networkFlags.overrideParams()
	if err != nil {
		return err
	}
	return networkFlags.ActiveNetParams.Validate()
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *chainconfig.Params {
	return networkFlags.ActiveNetParams
}

func (networkFlags *NetworkFlags) overrideParams() error {
	if networkFlags.OverrideParamsFile == "" {
		return nil
	}

	if !networkFlags.Devnet {
		return errors.Errorf("override-params-file is allowed only when using devnet")
	}

	overrideParamsFile, err := os.Open(networkFlags.OverrideParamsFile)
	if err != nil {
		return errors.WithStack(err)
	}
	defer overrideParamsFile.Close()

	decoder := json.NewDecoder(overrideParamsFile)
	decoder.DisallowUnknownFields()
	config := &overrideParamsConfig{}
	err = decoder.Decode(config)
	if err != nil {
		return errors.Wrapf(err, "couldn't parse %s", networkFlags.OverrideParamsFile)
	}

	params := networkFlags.ActiveNetParams
	for _, constants := range params.Constants {
		if config.BlockWindow != nil {
			constants.BlockWindow = *config.BlockWindow
		}
		if config.TargetBlockInterval != nil {
			constants.TargetBlockInterval = *config.TargetBlockInterval
		}
		if config.MaxBlockInterval != nil {
			constants.MaxBlockInterval = *config.MaxBlockInterval
		}
		if config.MedianTimestampWindow != nil {
			constants.MedianTimestampWindow = *config.MedianTimestampWindow
		}
		if config.MinBlakeDifficulty != nil {
			constants.MinDifficulties[externalapi.PowAlgorithmBlake] = externalapi.Difficulty(*config.MinBlakeDifficulty)
		}
		if config.MinSha3Difficulty != nil {
			constants.MinDifficulties[externalapi.PowAlgorithmSha3] = externalapi.Difficulty(*config.MinSha3Difficulty)
		}
	}

	if config.InitialReward != nil {
		params.Emission.InitialReward = *config.InitialReward
	}
	if config.DecayInterval != nil {
		params.Emission.DecayInterval = *config.DecayInterval
	}
	if config.TailReward != nil {
		params.Emission.TailReward = *config.TailReward
	}

	return nil
}
