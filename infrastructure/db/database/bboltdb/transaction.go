package bboltdb

import (
	"github.com/Grrwahrr/tari/infrastructure/db/database"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

// BoltDBTransaction wraps a read-write bbolt transaction. Only one may be
// open at a time, others block in Begin until it is closed.
type BoltDBTransaction struct {
	tx       *bbolt.Tx
	isClosed bool
}

// Begin begins a new transaction.
func (db *BoltDB) Begin() (database.Transaction, error) {
	tx, err := db.db.Begin(true)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &BoltDBTransaction{tx: tx}, nil
}

// Commit commits whatever changes were made to the database
// within this transaction.
func (tx *BoltDBTransaction) Commit() error {
	if tx.isClosed {
		return errors.New("cannot commit a closed transaction")
	}
	tx.isClosed = true
	return errors.WithStack(tx.tx.Commit())
}

// Rollback rolls back whatever changes were made to the
// database within this transaction.
func (tx *BoltDBTransaction) Rollback() error {
	if tx.isClosed {
		return errors.New("cannot rollback a closed transaction")
	}
	tx.isClosed = true
	return errors.WithStack(tx.tx.Rollback())
}

// RollbackUnlessClosed rolls back changes that were made to
// the database within the transaction, unless the transaction
// had already been closed using either Rollback or Commit.
func (tx *BoltDBTransaction) RollbackUnlessClosed() error {
	if tx.isClosed {
		return nil
	}
	return tx.Rollback()
}

// Put sets the value for the given key. It overwrites
// any previous value for that key.
func (tx *BoltDBTransaction) Put(key *database.Key, value []byte) error {
	if tx.isClosed {
		return errors.New("cannot put into a closed transaction")
	}
	return errors.WithStack(put(tx.tx.Bucket(rootBucket), key, value))
}

// Get gets the value for the given key. It returns
// ErrNotFound if the given key does not exist.
func (tx *BoltDBTransaction) Get(key *database.Key) ([]byte, error) {
	if tx.isClosed {
		return nil, errors.New("cannot get from a closed transaction")
	}
	return get(tx.tx.Bucket(rootBucket), key)
}

// Has returns true if the database does contains the
// given key.
func (tx *BoltDBTransaction) Has(key *database.Key) (bool, error) {
	if tx.isClosed {
		return false, errors.New("cannot has from a closed transaction")
	}
	return tx.tx.Bucket(rootBucket).Get(key.Bytes()) != nil, nil
}

// Delete deletes the value for the given key. Will not
// return an error if the key doesn't exist.
func (tx *BoltDBTransaction) Delete(key *database.Key) error {
	if tx.isClosed {
		return errors.New("cannot delete from a closed transaction")
	}
	return errors.WithStack(tx.tx.Bucket(rootBucket).Delete(key.Bytes()))
}

// Cursor begins a new cursor over the given bucket.
func (tx *BoltDBTransaction) Cursor(bucket *database.Bucket) (database.Cursor, error) {
	if tx.isClosed {
		return nil, errors.New("cannot open a cursor from a closed transaction")
	}
	return newBoltDBCursor(tx.tx.Bucket(rootBucket), bucket), nil
}
