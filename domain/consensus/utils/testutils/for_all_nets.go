package testutils

import (
	"testing"

	"github.com/Grrwahrr/tari/domain/chainconfig"
)

// ForAllNets runs the passed testFunc with a private copy of the params of
// every default network
func ForAllNets(t *testing.T, testFunc func(*testing.T, *chainconfig.Params)) {
	allParams := []*chainconfig.Params{
		&chainconfig.MainnetParams,
		&chainconfig.TestnetParams,
		&chainconfig.DevnetParams,
	}

	for _, params := range allParams {
		params := params.Clone()
		t.Run(params.Name, func(t *testing.T) {
			t.Parallel()
			t.Logf("Running test for %s", params.Name)
			testFunc(t, params)
		})
	}
}
