package horizonsync

import (
	"github.com/Grrwahrr/tari/domain/consensus/model"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/Grrwahrr/tari/domain/consensus/processes/difficultymanager"
)

// Validators holds the validators used during horizon sync. The handles
// may be shared and invoked concurrently as long as the underlying database
// supports concurrent reads.
type Validators struct {
	Header     model.StatelessValidator[*externalapi.DomainBlockHeader]
	FinalState model.StatelessValidator[uint64]
}

// NewValidators bundles the given header and final-state validators
func NewValidators[H model.StatelessValidator[*externalapi.DomainBlockHeader], F model.StatelessValidator[uint64]](
	header H, finalState F) *Validators {

	return &Validators{
		Header:     header,
		FinalState: finalState,
	}
}

// New returns the default horizon sync validators over databaseContext
func New(databaseContext model.BlockchainDatabase, rules model.ConsensusRules,
	commitmentFactory model.CommitmentFactory) *Validators {

	return NewValidators(
		NewHeaderValidator(databaseContext, rules, difficultymanager.LWMATargetDifficulty),
		NewFinalStateValidator(databaseContext, rules, commitmentFactory),
	)
}

func (v *Validators) String() string {
	return "HorizonSyncValidators{header: ..., finalState: ...}"
}
