package main

import (
	"sync"

	"github.com/Grrwahrr/tari/domain/chainconfig"
	"github.com/Grrwahrr/tari/domain/chainstore"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/Grrwahrr/tari/domain/consensus/processes/difficultymanager"
	"github.com/Grrwahrr/tari/domain/consensus/utils/commitment"
	"github.com/Grrwahrr/tari/domain/consensus/utils/consensushashing"
	"github.com/Grrwahrr/tari/domain/horizonsync"
	"github.com/Grrwahrr/tari/infrastructure/config"
	"github.com/Grrwahrr/tari/infrastructure/db/database"
	"github.com/Grrwahrr/tari/infrastructure/db/database/bboltdb"
	"github.com/Grrwahrr/tari/infrastructure/db/database/ldb"
	"github.com/Grrwahrr/tari/infrastructure/logger"
	"github.com/Grrwahrr/tari/infrastructure/os/signal"
	"github.com/pkg/errors"
)

const leveldbCacheSizeMiB = 256

var errInterrupted = errors.New("interrupted")

func openDatabase(cfg *config.Config) (database.Database, error) {
	switch cfg.DBType {
	case config.DBTypeLevelDB:
		return ldb.NewLevelDB(cfg.DataDir, leveldbCacheSizeMiB)
	case config.DBTypeBolt:
		return bboltdb.NewBoltDB(cfg.DataDir)
	default:
		return nil, errors.Errorf("unknown database type %s", cfg.DBType)
	}
}

// verify opens the configured chain database and validates its horizon
// state. It returns the state digest of a valid horizon.
func verify(cfg *config.Config, interrupt <-chan struct{}) (*externalapi.DomainHash, error) {
	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		err := db.Close()
		if err != nil {
			log.Warnf("Failed closing the database: %s", err)
		}
	}()

	store, err := chainstore.New(db, cfg.HeaderCacheSize)
	if err != nil {
		return nil, err
	}
	return verifyStore(store, cfg.NetParams(), cfg.HorizonHeight, cfg.VerifyHeaders, cfg.Workers, interrupt)
}

func verifyStore(store *chainstore.Store, params *chainconfig.Params, horizonHeight int64,
	verifyHeaders bool, workers int, interrupt <-chan struct{}) (*externalapi.DomainHash, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "verifyStore")
	defer onEnd()

	tip, err := store.FetchTipHeader()
	if err != nil {
		return nil, err
	}
	horizon := tip.Height
	if horizonHeight != config.HorizonHeightTip {
		if uint64(horizonHeight) > tip.Height {
			return nil, errors.Errorf("horizon height %d is above the tip at height %d",
				horizonHeight, tip.Height)
		}
		horizon = uint64(horizonHeight)
	}
	log.Infof("Verifying the %s horizon state at height %d (tip at height %d)", params.Name, horizon, tip.Height)

	err = checkGenesis(store, params)
	if err != nil {
		return nil, err
	}

	if verifyHeaders {
		err = replayHeaderValidation(store, params, horizon, workers, interrupt)
		if err != nil {
			return nil, err
		}
	}
	if signal.InterruptRequested(interrupt) {
		return nil, errInterrupted
	}

	validators := horizonsync.New(store, params, commitment.NewFactory())
	err = validators.FinalState.Validate(horizon)
	if err != nil {
		return nil, err
	}

	return store.HorizonStateDigest()
}

func checkGenesis(store *chainstore.Store, params *chainconfig.Params) error {
	headers, err := store.FetchHeaders([]uint64{0})
	if err != nil {
		return err
	}
	if len(headers) == 0 {
		return errors.New("the database has no genesis header")
	}
	genesisHash := consensushashing.HeaderHash(headers[0])
	if !genesisHash.Equal(params.GenesisHash()) {
		return errors.Errorf("the stored genesis %s is not the %s genesis %s",
			genesisHash, params.Name, params.GenesisHash())
	}
	return nil
}

// replayHeaderValidation validates every header from height 1 up to and
// including maxHeight as it was validated when it arrived, against a view of
// the chain whose tip is its parent. Heights are handed out to workers
// goroutines, and the first failure stops the replay.
func replayHeaderValidation(store *chainstore.Store, params *chainconfig.Params, maxHeight uint64,
	workers int, interrupt <-chan struct{}) error {

	onEnd := logger.LogAndMeasureExecutionTime(log, "replayHeaderValidation")
	defer onEnd()

	heights := make(chan uint64)
	quit := make(chan struct{})
	var quitOnce sync.Once
	var firstErr error
	fail := func(err error) {
		quitOnce.Do(func() {
			firstErr = err
			close(quit)
		})
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		spawn("replayHeaderValidation-worker", func() {
			defer wg.Done()
			for height := range heights {
				err := validateHeaderAt(store, params, height)
				if err != nil {
					fail(err)
				}
			}
		})
	}

feed:
	for height := uint64(1); height <= maxHeight; height++ {
		select {
		case heights <- height:
		case <-quit:
			break feed
		case <-interrupt:
			fail(errInterrupted)
			break feed
		}
	}
	close(heights)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	log.Infof("Replayed header validation for %d headers", maxHeight)
	return nil
}

func validateHeaderAt(store *chainstore.Store, params *chainconfig.Params, height uint64) error {
	headers, err := store.FetchHeaders([]uint64{height})
	if err != nil {
		return err
	}
	if len(headers) == 0 {
		return errors.Errorf("missing header at height %d", height)
	}

	view := chainstore.NewHeightCappedView(store, height-1)
	validator := horizonsync.NewHeaderValidator(view, params, difficultymanager.LWMATargetDifficulty)
	err = validator.Validate(headers[0])
	if err != nil {
		return errors.Wrapf(err, "header at height %d", height)
	}
	return nil
}
