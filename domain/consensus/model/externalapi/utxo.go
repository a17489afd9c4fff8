package externalapi

// OutputFeatures holds the subset of output features relevant to storage
type OutputFeatures struct {
	Flags    uint8
	Maturity uint64
}

// UTXO is an unspent transaction output. Only its commitment takes part in
// horizon state validation.
type UTXO struct {
	Features   OutputFeatures
	Commitment Commitment
	Script     []byte
}

// Kernel is a transaction kernel. Only its excess takes part in horizon
// state validation.
type Kernel struct {
	Features   uint8
	Fee        uint64
	LockHeight uint64
	Excess     Commitment
	ExcessSig  []byte
}
