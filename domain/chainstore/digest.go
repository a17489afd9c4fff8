package chainstore

import (
	"github.com/Grrwahrr/tari/domain/consensus/model"
	"github.com/Grrwahrr/tari/domain/consensus/utils/multiset"
	"github.com/Grrwahrr/tari/infrastructure/db/database"
	"github.com/pkg/errors"
)

// Multiset element prefixes, keeping a UTXO and a kernel with the same
// encoding from cancelling out
const (
	utxoDigestPrefix   byte = 'u'
	kernelDigestPrefix byte = 'k'
)

func digestElement(prefix byte, value []byte) []byte {
	element := make([]byte, 0, len(value)+1)
	element = append(element, prefix)
	return append(element, value...)
}

// loadDigest reads the stored state multiset. A store that never held any
// state has the empty multiset.
func loadDigest(dataAccessor database.DataAccessor) (model.Multiset, error) {
	digestBytes, err := dataAccessor.Get(digestKey)
	if database.IsNotFoundError(err) {
		return multiset.New(), nil
	}
	if err != nil {
		return nil, err
	}
	ms, err := multiset.FromBytes(digestBytes)
	if err != nil {
		return nil, errors.Wrap(err, "corrupt horizon state digest")
	}
	return ms, nil
}

type stagedRecord struct {
	value  []byte
	exists bool
}

// digestStaging applies writes to the UTXO and kernel sets within a
// transaction and updates the state multiset to match. Records written
// earlier in the same transaction are tracked here since a transaction
// does not necessarily read its own writes.
type digestStaging struct {
	dbTx    database.Transaction
	ms      model.Multiset
	records map[string]stagedRecord
}

func newDigestStaging(dbTx database.Transaction) (*digestStaging, error) {
	ms, err := loadDigest(dbTx)
	if err != nil {
		return nil, err
	}
	return &digestStaging{
		dbTx:    dbTx,
		ms:      ms,
		records: make(map[string]stagedRecord),
	}, nil
}

func (ds *digestStaging) previous(key *database.Key) (stagedRecord, error) {
	if record, ok := ds.records[string(key.Bytes())]; ok {
		return record, nil
	}
	value, err := ds.dbTx.Get(key)
	if database.IsNotFoundError(err) {
		return stagedRecord{}, nil
	}
	if err != nil {
		return stagedRecord{}, err
	}
	return stagedRecord{value: value, exists: true}, nil
}

func (ds *digestStaging) put(prefix byte, key *database.Key, value []byte) error {
	previous, err := ds.previous(key)
	if err != nil {
		return err
	}
	if previous.exists {
		ds.ms.Remove(digestElement(prefix, previous.value))
	}
	err = ds.dbTx.Put(key, value)
	if err != nil {
		return err
	}
	ds.ms.Add(digestElement(prefix, value))
	ds.records[string(key.Bytes())] = stagedRecord{value: value, exists: true}
	return nil
}

func (ds *digestStaging) delete(prefix byte, key *database.Key) error {
	previous, err := ds.previous(key)
	if err != nil {
		return err
	}
	if !previous.exists {
		return nil
	}
	err = ds.dbTx.Delete(key)
	if err != nil {
		return err
	}
	ds.ms.Remove(digestElement(prefix, previous.value))
	ds.records[string(key.Bytes())] = stagedRecord{}
	return nil
}

// commit stages the updated multiset. The caller commits the transaction.
func (ds *digestStaging) commit() error {
	return ds.dbTx.Put(digestKey, ds.ms.Serialize())
}
