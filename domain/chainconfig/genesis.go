package chainconfig

import (
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
)

// genesisTimestamp is 2020-05-04 00:00:00 UTC
const genesisTimestamp = 1588550400

// newGenesisHeader returns the genesis header of a network. Networks differ
// by nonce so that their genesis hashes differ.
func newGenesisHeader(nonce uint64) *externalapi.DomainBlockHeader {
	return &externalapi.DomainBlockHeader{
		Version:   1,
		Height:    0,
		PrevHash:  externalapi.DomainHash{},
		Timestamp: genesisTimestamp,
		OutputMR: externalapi.DomainHash{
			0xdf, 0x4d, 0x36, 0x1e, 0x62, 0x0c, 0x9e, 0xcf,
			0x5d, 0x3a, 0x8b, 0xcf, 0x64, 0x51, 0xc6, 0xa8,
			0x4e, 0x77, 0x3e, 0x6d, 0xcd, 0xd4, 0xd1, 0x92,
			0x6a, 0x51, 0xd8, 0x3f, 0x2d, 0x52, 0x0d, 0x6b,
		},
		KernelMR: externalapi.DomainHash{
			0x88, 0x39, 0x7a, 0x0e, 0x4b, 0xf5, 0x93, 0x7c,
			0x53, 0x1f, 0xdb, 0x1a, 0x61, 0x2c, 0x48, 0x19,
			0x9b, 0x83, 0xf6, 0x5c, 0x6e, 0x59, 0x0e, 0x8a,
			0xce, 0x17, 0x6c, 0xd4, 0x85, 0x62, 0xd4, 0x34,
		},
		TotalKernelOffset: externalapi.BlindingFactor{},
		Nonce:             nonce,
		Pow: externalapi.ProofOfWork{
			PowAlgo:          externalapi.PowAlgorithmBlake,
			TargetDifficulty: externalapi.MinDifficulty,
			PowData:          []byte{},
		},
	}
}
