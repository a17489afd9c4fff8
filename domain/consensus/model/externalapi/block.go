package externalapi

// DomainBlockHeader represents a block header as stored on the canonical chain
type DomainBlockHeader struct {
	Version           uint16
	Height            uint64
	PrevHash          DomainHash
	Timestamp         uint64
	OutputMR          DomainHash
	KernelMR          DomainHash
	TotalKernelOffset BlindingFactor
	Nonce             uint64
	Pow               ProofOfWork
}

// Clone returns a clone of DomainBlockHeader
func (header *DomainBlockHeader) Clone() *DomainBlockHeader {
	return &DomainBlockHeader{
		Version:           header.Version,
		Height:            header.Height,
		PrevHash:          header.PrevHash,
		Timestamp:         header.Timestamp,
		OutputMR:          header.OutputMR,
		KernelMR:          header.KernelMR,
		TotalKernelOffset: header.TotalKernelOffset,
		Nonce:             header.Nonce,
		Pow:               header.Pow.Clone(),
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainBlockHeader{0, 0, DomainHash{}, 0, DomainHash{}, DomainHash{},
	BlindingFactor{}, 0, ProofOfWork{}}

// Equal returns whether header equals to other
func (header *DomainBlockHeader) Equal(other *DomainBlockHeader) bool {
	if header == nil || other == nil {
		return header == other
	}

	if header.Version != other.Version ||
		header.Height != other.Height ||
		header.Timestamp != other.Timestamp ||
		header.Nonce != other.Nonce {
		return false
	}

	if !header.PrevHash.Equal(&other.PrevHash) ||
		!header.OutputMR.Equal(&other.OutputMR) ||
		!header.KernelMR.Equal(&other.KernelMR) {
		return false
	}

	if header.TotalKernelOffset != other.TotalKernelOffset {
		return false
	}

	if header.Pow.PowAlgo != other.Pow.PowAlgo ||
		header.Pow.TargetDifficulty != other.Pow.TargetDifficulty ||
		string(header.Pow.PowData) != string(other.Pow.PowData) {
		return false
	}

	return true
}
