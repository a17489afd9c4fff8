package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Grrwahrr/tari/domain/chainconfig"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig([]string{"--datadir", t.TempDir()})
	if err != nil {
		t.Fatalf("TestLoadConfigDefaults: LoadConfig: %+v", err)
	}
	if cfg.NetParams().Name != chainconfig.MainnetParams.Name {
		t.Fatalf("TestLoadConfigDefaults: expected mainnet but got %s", cfg.NetParams().Name)
	}
	if cfg.DBType != DBTypeLevelDB {
		t.Fatalf("TestLoadConfigDefaults: expected the leveldb driver but got %s", cfg.DBType)
	}
	if cfg.HorizonHeight != HorizonHeightTip {
		t.Fatalf("TestLoadConfigDefaults: expected the tip as horizon but got %d", cfg.HorizonHeight)
	}
	if filepath.Base(cfg.DataDir) != "mainnet" {
		t.Fatalf("TestLoadConfigDefaults: data dir %s is not namespaced by network", cfg.DataDir)
	}
	logFile, errLogFile := cfg.LogFiles()
	if filepath.Dir(logFile) != cfg.LogDir || filepath.Dir(errLogFile) != cfg.LogDir {
		t.Fatalf("TestLoadConfigDefaults: log files %s, %s are not in %s", logFile, errLogFile, cfg.LogDir)
	}
}

func TestResolveNetwork(t *testing.T) {
	tests := []struct {
		networkFlags NetworkFlags
		expected     *chainconfig.Params
	}{
		{NetworkFlags{}, &chainconfig.MainnetParams},
		{NetworkFlags{Testnet: true}, &chainconfig.TestnetParams},
		{NetworkFlags{Devnet: true}, &chainconfig.DevnetParams},
	}

	for _, test := range tests {
		err := test.networkFlags.ResolveNetwork(nil)
		if err != nil {
			t.Fatalf("TestResolveNetwork: %s: %+v", test.expected.Name, err)
		}
		params := test.networkFlags.NetParams()
		if params.Name != test.expected.Name || params.Net != test.expected.Net {
			t.Fatalf("TestResolveNetwork: expected %s but got %s", test.expected.Name, params.Name)
		}
		if params == test.expected {
			t.Fatalf("TestResolveNetwork: %s: the active params are the registered params", params.Name)
		}
		if !params.GenesisHeaderHash.Equal(test.expected.GenesisHeaderHash) {
			t.Fatalf("TestResolveNetwork: %s: unexpected genesis hash %s", params.Name, params.GenesisHeaderHash)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"multiple networks", []string{"--testnet", "--devnet"}},
		{"unknown dbtype", []string{"--dbtype", "sqlite"}},
		{"bad horizon height", []string{"--horizon-height=-2"}},
		{"no workers", []string{"--workers", "0"}},
		{"no cache", []string{"--header-cache-size", "0"}},
		{"bad log level", []string{"--loglevel", "loud"}},
		{"override off devnet", []string{"--testnet", "--override-params-file", "params.json"}},
	}

	for _, test := range tests {
		_, err := LoadConfig(append(test.args, "--datadir", t.TempDir()))
		if err == nil {
			t.Fatalf("TestLoadConfigErrors: %s: LoadConfig unexpectedly succeeded", test.name)
		}
	}
}

func TestOverrideParams(t *testing.T) {
	overrideFile := filepath.Join(t.TempDir(), "params.json")
	err := os.WriteFile(overrideFile, []byte(`{"blockWindow": 5, "minSha3Difficulty": 7, "initialReward": 50}`), 0600)
	if err != nil {
		t.Fatalf("TestOverrideParams: WriteFile: %s", err)
	}

	cfg, err := LoadConfig([]string{"--devnet", "--override-params-file", overrideFile, "--datadir", t.TempDir()})
	if err != nil {
		t.Fatalf("TestOverrideParams: LoadConfig: %+v", err)
	}
	constants := cfg.NetParams().Constants[0]
	if constants.BlockWindow != 5 {
		t.Fatalf("TestOverrideParams: expected a block window of 5 but got %d", constants.BlockWindow)
	}
	if constants.MinDifficulties[externalapi.PowAlgorithmSha3] != 7 {
		t.Fatalf("TestOverrideParams: expected a sha3 minimum of 7 but got %d",
			constants.MinDifficulties[externalapi.PowAlgorithmSha3])
	}
	if cfg.NetParams().Emission.InitialReward != 50 {
		t.Fatalf("TestOverrideParams: expected an initial reward of 50 but got %d",
			cfg.NetParams().Emission.InitialReward)
	}

	// The registered devnet stays untouched
	if chainconfig.DevnetParams.Constants[0].BlockWindow == 5 ||
		chainconfig.DevnetParams.Emission.InitialReward == 50 {
		t.Fatalf("TestOverrideParams: the override leaked into the default devnet params")
	}
}

func TestOverrideParamsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		errorStr string
	}{
		{"unknown field", `{"k": 18}`, "unknown field"},
		{"zero window", `{"blockWindow": 0}`, "blockWindow"},
		{"malformed", `{"blockWindow": `, "couldn't parse"},
	}

	for _, test := range tests {
		overrideFile := filepath.Join(t.TempDir(), "params.json")
		err := os.WriteFile(overrideFile, []byte(test.contents), 0600)
		if err != nil {
			t.Fatalf("TestOverrideParamsRejectsInvalid: WriteFile: %s", err)
		}
		_, err = LoadConfig([]string{"--devnet", "--override-params-file", overrideFile, "--datadir", t.TempDir()})
		if err == nil || !strings.Contains(err.Error(), test.errorStr) {
			t.Fatalf("TestOverrideParamsRejectsInvalid: %s: expected an error containing %q but got: %v",
				test.name, test.errorStr, err)
		}
	}
}
