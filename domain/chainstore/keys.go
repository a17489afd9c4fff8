package chainstore

import (
	"encoding/binary"

	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/Grrwahrr/tari/infrastructure/db/database"
	"github.com/pkg/errors"
)

var (
	headersBucket    = database.MakeBucket([]byte("headers"))
	utxosBucket      = database.MakeBucket([]byte("utxos"))
	kernelsBucket    = database.MakeBucket([]byte("kernels"))
	chainStateBucket = database.MakeBucket([]byte("chain-state"))
	tipKey           = chainStateBucket.Key([]byte("tip"))
	digestKey        = chainStateBucket.Key([]byte("digest"))
)

// heightAsKey encodes height big-endian so that cursor order is height order
func heightAsKey(height uint64) *database.Key {
	return headersBucket.Key(serializeHeight(height))
}

func serializeHeight(height uint64) []byte {
	var heightBytes [8]byte
	binary.BigEndian.PutUint64(heightBytes[:], height)
	return heightBytes[:]
}

func deserializeHeight(heightBytes []byte) (uint64, error) {
	if len(heightBytes) != 8 {
		return 0, errors.Errorf("height expected to be 8 bytes but got %d", len(heightBytes))
	}
	return binary.BigEndian.Uint64(heightBytes), nil
}

func commitmentAsKey(bucket *database.Bucket, commitment *externalapi.Commitment) *database.Key {
	return bucket.Key(append([]byte(nil), commitment[:]...))
}
