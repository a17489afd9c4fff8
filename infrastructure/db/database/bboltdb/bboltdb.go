package bboltdb

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Grrwahrr/tari/infrastructure/db/database"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

const dbFileName = "chain.db"

var rootBucket = []byte("kv")

// openTimeout bounds how long Open waits for the file lock held by
// another process.
var openTimeout = time.Second

// BoltDB is a database.Database backed by a single bbolt file. All keys
// live in one root bucket and database.Bucket paths are key prefixes
// within it, the same way the leveldb driver lays them out.
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB opens (creating if necessary) the bbolt file inside the
// directory at path.
func NewBoltDB(path string) (*BoltDB, error) {
	err := os.MkdirAll(path, 0700)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	dbPath := filepath.Join(path, dbFileName)
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, errors.Wrapf(err, "failed opening %s", dbPath)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(rootBucket)
		return err
	})
	if err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			log.Warnf("Failed closing %s: %s", dbPath, closeErr)
		}
		return nil, errors.WithStack(err)
	}
	log.Debugf("Opened bbolt database at %s", dbPath)
	return &BoltDB{db: db}, nil
}

// Close closes the bbolt file.
func (db *BoltDB) Close() error {
	return errors.WithStack(db.db.Close())
}

// Put sets the value for the given key. It overwrites
// any previous value for that key.
func (db *BoltDB) Put(key *database.Key, value []byte) error {
	return errors.WithStack(db.db.Update(func(tx *bbolt.Tx) error {
		return put(tx.Bucket(rootBucket), key, value)
	}))
}

// Get gets the value for the given key. It returns
// ErrNotFound if the given key does not exist.
func (db *BoltDB) Get(key *database.Key) ([]byte, error) {
	var value []byte
	err := db.db.View(func(tx *bbolt.Tx) error {
		var err error
		value, err = get(tx.Bucket(rootBucket), key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Has returns true if the database does contains the
// given key.
func (db *BoltDB) Has(key *database.Key) (bool, error) {
	var exists bool
	err := db.db.View(func(tx *bbolt.Tx) error {
		exists = tx.Bucket(rootBucket).Get(key.Bytes()) != nil
		return nil
	})
	return exists, errors.WithStack(err)
}

// Delete deletes the value for the given key. Will not
// return an error if the key doesn't exist.
func (db *BoltDB) Delete(key *database.Key) error {
	return errors.WithStack(db.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(rootBucket).Delete(key.Bytes())
	}))
}

// Cursor begins a new cursor over the given bucket.
func (db *BoltDB) Cursor(bucket *database.Bucket) (database.Cursor, error) {
	var cursor *BoltDBCursor
	err := db.db.View(func(tx *bbolt.Tx) error {
		cursor = newBoltDBCursor(tx.Bucket(rootBucket), bucket)
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return cursor, nil
}

func put(boltBucket *bbolt.Bucket, key *database.Key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	return boltBucket.Put(key.Bytes(), value)
}

// get copies the value out since bbolt only guarantees it for the
// lifetime of the transaction.
func get(boltBucket *bbolt.Bucket, key *database.Key) ([]byte, error) {
	value := boltBucket.Get(key.Bytes())
	if value == nil {
		return nil, errors.Wrapf(database.ErrNotFound, "key %s not found", key)
	}
	return append([]byte(nil), value...), nil
}
