package chainstore

import (
	"sync"

	"github.com/Grrwahrr/tari/domain/consensus/model"
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/Grrwahrr/tari/domain/consensus/utils/lrucache"
	"github.com/Grrwahrr/tari/domain/consensus/utils/serialization"
	"github.com/Grrwahrr/tari/infrastructure/db/database"
	"github.com/pkg/errors"
)

// DefaultHeaderCacheSize is the number of headers Store keeps in memory
const DefaultHeaderCacheSize = 2000

// ErrNoTip is returned when the store holds no headers
var ErrNoTip = errors.New("the chain store has no tip")

// Store keeps a pruned node's headers, UTXO set and kernel set on a
// database.Database.
type Store struct {
	db    database.Database
	cache *lrucache.LRUCache

	// writeLock serializes writers so that the tip is always the
	// highest stored header
	writeLock sync.Mutex
}

var _ model.BlockchainDatabase = (*Store)(nil)

// New returns a Store on db with a header cache of cacheSize entries
func New(db database.Database, cacheSize int) (*Store, error) {
	cache, err := lrucache.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{
		db:    db,
		cache: cache,
	}, nil
}

// InsertHeaders stores headers and moves the tip to the highest of them if
// it is above the current tip. Either all headers and the tip are written
// or none are.
func (s *Store) InsertHeaders(headers []*externalapi.DomainBlockHeader) error {
	if len(headers) == 0 {
		return nil
	}
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	tipHeight, hasTip, err := s.tipHeight()
	if err != nil {
		return err
	}

	dbTx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	newTip := false
	for _, header := range headers {
		headerBytes, err := serialization.SerializeHeader(header)
		if err != nil {
			return err
		}
		err = dbTx.Put(heightAsKey(header.Height), headerBytes)
		if err != nil {
			return err
		}
		if !hasTip || header.Height > tipHeight {
			tipHeight = header.Height
			hasTip = true
			newTip = true
		}
	}
	if newTip {
		err = dbTx.Put(tipKey, serializeHeight(tipHeight))
		if err != nil {
			return err
		}
	}
	err = dbTx.Commit()
	if err != nil {
		return err
	}

	for _, header := range headers {
		s.cache.Add(header.Height, header.Clone())
	}
	log.Debugf("Inserted %d headers, tip is at height %d", len(headers), tipHeight)
	return nil
}

// InsertUTXOs adds utxos to the UTXO set, keyed by commitment
func (s *Store) InsertUTXOs(utxos []*externalapi.UTXO) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	dbTx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	digest, err := newDigestStaging(dbTx)
	if err != nil {
		return err
	}
	for _, utxo := range utxos {
		utxoBytes, err := serialization.SerializeUTXO(utxo)
		if err != nil {
			return err
		}
		err = digest.put(utxoDigestPrefix, commitmentAsKey(utxosBucket, &utxo.Commitment), utxoBytes)
		if err != nil {
			return err
		}
	}
	err = digest.commit()
	if err != nil {
		return err
	}
	return dbTx.Commit()
}

// RemoveUTXOs removes the UTXOs with the given commitments. Missing
// commitments are ignored.
func (s *Store) RemoveUTXOs(commitments []*externalapi.Commitment) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	dbTx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	digest, err := newDigestStaging(dbTx)
	if err != nil {
		return err
	}
	for _, commitment := range commitments {
		err = digest.delete(utxoDigestPrefix, commitmentAsKey(utxosBucket, commitment))
		if err != nil {
			return err
		}
	}
	err = digest.commit()
	if err != nil {
		return err
	}
	return dbTx.Commit()
}

// InsertKernels adds kernels to the kernel set, keyed by excess
func (s *Store) InsertKernels(kernels []*externalapi.Kernel) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	dbTx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	digest, err := newDigestStaging(dbTx)
	if err != nil {
		return err
	}
	for _, kernel := range kernels {
		kernelBytes, err := serialization.SerializeKernel(kernel)
		if err != nil {
			return err
		}
		err = digest.put(kernelDigestPrefix, commitmentAsKey(kernelsBucket, &kernel.Excess), kernelBytes)
		if err != nil {
			return err
		}
	}
	err = digest.commit()
	if err != nil {
		return err
	}
	return dbTx.Commit()
}

// FetchTipHeader returns the header at the tip of the stored chain
func (s *Store) FetchTipHeader() (*externalapi.DomainBlockHeader, error) {
	tipHeight, hasTip, err := s.tipHeight()
	if err != nil {
		return nil, err
	}
	if !hasTip {
		return nil, errors.WithStack(ErrNoTip)
	}
	header, found, err := s.header(tipHeight)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Errorf("tip header at height %d is missing", tipHeight)
	}
	return header, nil
}

// FetchHeaders returns the stored headers at heights, in the order given.
// Missing heights are skipped.
func (s *Store) FetchHeaders(heights []uint64) ([]*externalapi.DomainBlockHeader, error) {
	headers := make([]*externalapi.DomainBlockHeader, 0, len(heights))
	for _, height := range heights {
		header, found, err := s.header(height)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		headers = append(headers, header)
	}
	return headers, nil
}

// FetchAllUTXOs returns the entire UTXO set, ordered by commitment
func (s *Store) FetchAllUTXOs() ([]*externalapi.UTXO, error) {
	var utxos []*externalapi.UTXO
	err := s.forEach(utxosBucket, func(value []byte) error {
		utxo, err := serialization.DeserializeUTXO(value)
		if err != nil {
			return err
		}
		utxos = append(utxos, utxo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return utxos, nil
}

// FetchAllKernels returns the entire kernel set, ordered by excess
func (s *Store) FetchAllKernels() ([]*externalapi.Kernel, error) {
	var kernels []*externalapi.Kernel
	err := s.forEach(kernelsBucket, func(value []byte) error {
		kernel, err := serialization.DeserializeKernel(value)
		if err != nil {
			return err
		}
		kernels = append(kernels, kernel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return kernels, nil
}

// HorizonStateDigest returns an order independent hash of the UTXO and
// kernel sets. Two stores hold the same horizon state iff their digests
// match. The digest is kept up to date by every write to the UTXO and kernel
// sets.
func (s *Store) HorizonStateDigest() (*externalapi.DomainHash, error) {
	ms, err := loadDigest(s.db)
	if err != nil {
		return nil, err
	}
	return ms.Hash(), nil
}

func (s *Store) tipHeight() (height uint64, hasTip bool, err error) {
	tipBytes, err := s.db.Get(tipKey)
	if database.IsNotFoundError(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	height, err = deserializeHeight(tipBytes)
	if err != nil {
		return 0, false, err
	}
	return height, true, nil
}

func (s *Store) header(height uint64) (*externalapi.DomainBlockHeader, bool, error) {
	if header, ok := s.cache.Get(height); ok {
		return header.Clone(), true, nil
	}

	headerBytes, err := s.db.Get(heightAsKey(height))
	if database.IsNotFoundError(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	header, err := serialization.DeserializeHeader(headerBytes)
	if err != nil {
		return nil, false, errors.Wrapf(err, "corrupt header at height %d", height)
	}
	s.cache.Add(height, header.Clone())
	return header, true, nil
}

// forEach calls f with every value in bucket. f must not retain value.
func (s *Store) forEach(bucket *database.Bucket, f func(value []byte) error) error {
	cursor, err := s.db.Cursor(bucket)
	if err != nil {
		return err
	}
	defer cursor.Close()

	for ok := cursor.First(); ok; ok = cursor.Next() {
		value, err := cursor.Value()
		if err != nil {
			return err
		}
		err = f(value)
		if err != nil {
			return err
		}
	}
	return nil
}
