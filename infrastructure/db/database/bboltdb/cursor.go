package bboltdb

import (
	"bytes"
	"sort"

	"github.com/Grrwahrr/tari/infrastructure/db/database"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

type entry struct {
	key   []byte
	value []byte
}

// BoltDBCursor iterates over a copy of one bucket's entries taken when
// the cursor was opened. bbolt cursors are only valid inside their
// transaction, and holding a read transaction open across writes made
// by the same goroutine can deadlock the mmap resize.
type BoltDBCursor struct {
	bucket  *database.Bucket
	entries []entry

	// position is -1 before First and len(entries) once exhausted
	position int
	isClosed bool
}

func newBoltDBCursor(boltBucket *bbolt.Bucket, bucket *database.Bucket) *BoltDBCursor {
	prefix := bucket.Path()
	var entries []entry
	boltCursor := boltBucket.Cursor()
	for key, value := boltCursor.Seek(prefix); key != nil && bytes.HasPrefix(key, prefix); key, value = boltCursor.Next() {
		entries = append(entries, entry{
			key:   append([]byte(nil), key...),
			value: append([]byte{}, value...),
		})
	}
	return &BoltDBCursor{
		bucket:   bucket,
		entries:  entries,
		position: -1,
	}
}

// Next moves the iterator to the next key/value pair. It returns whether the
// iterator is exhausted. Panics if the cursor is closed.
func (c *BoltDBCursor) Next() bool {
	if c.isClosed {
		panic("cannot call next on a closed cursor")
	}
	if c.position < len(c.entries) {
		c.position++
	}
	return c.position < len(c.entries)
}

// First moves the iterator to the first key/value pair. It returns false if
// such a pair does not exist. Panics if the cursor is closed.
func (c *BoltDBCursor) First() bool {
	if c.isClosed {
		panic("cannot call first on a closed cursor")
	}
	c.position = 0
	return len(c.entries) > 0
}

// Seek moves the iterator to the first key/value pair whose key is greater
// than or equal to the given key. It returns ErrNotFound if such pair does not
// exist.
func (c *BoltDBCursor) Seek(key *database.Key) error {
	if c.isClosed {
		return errors.New("cannot seek a closed cursor")
	}
	keyBytes := key.Bytes()
	c.position = sort.Search(len(c.entries), func(i int) bool {
		return bytes.Compare(c.entries[i].key, keyBytes) >= 0
	})
	if c.position == len(c.entries) || !bytes.Equal(c.entries[c.position].key, keyBytes) {
		return errors.Wrapf(database.ErrNotFound, "key %s not found", key)
	}
	return nil
}

func (c *BoltDBCursor) current() (entry, bool) {
	if c.position < 0 || c.position >= len(c.entries) {
		return entry{}, false
	}
	return c.entries[c.position], true
}

// Key returns the key of the current key/value pair, or ErrNotFound if done.
func (c *BoltDBCursor) Key() (*database.Key, error) {
	if c.isClosed {
		return nil, errors.New("cannot get the key of a closed cursor")
	}
	current, ok := c.current()
	if !ok {
		return nil, errors.Wrapf(database.ErrNotFound, "cannot get the "+
			"key of an exhausted cursor")
	}
	suffix := bytes.TrimPrefix(current.key, c.bucket.Path())
	return c.bucket.Key(suffix), nil
}

// Value returns the value of the current key/value pair, or ErrNotFound if done.
func (c *BoltDBCursor) Value() ([]byte, error) {
	if c.isClosed {
		return nil, errors.New("cannot get the value of a closed cursor")
	}
	current, ok := c.current()
	if !ok {
		return nil, errors.Wrapf(database.ErrNotFound, "cannot get the "+
			"value of an exhausted cursor")
	}
	return current.value, nil
}

// Close releases associated resources.
func (c *BoltDBCursor) Close() error {
	if c.isClosed {
		return errors.New("cannot close an already closed cursor")
	}
	c.isClosed = true
	c.entries = nil
	c.bucket = nil
	return nil
}
