package chainstore

import (
	"fmt"
	"testing"

	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	"github.com/Grrwahrr/tari/infrastructure/db/database"
	"github.com/Grrwahrr/tari/infrastructure/db/database/bboltdb"
	"github.com/Grrwahrr/tari/infrastructure/db/database/ldb"
)

// testForAllDatabaseTypes runs testFunc against a fresh Store on every
// database driver
func testForAllDatabaseTypes(t *testing.T, testName string, testFunc func(t *testing.T, store *Store, testName string)) {
	drivers := []struct {
		name string
		open func(path string) (database.Database, error)
	}{
		{"ldb", func(path string) (database.Database, error) { return ldb.NewLevelDB(path, 8) }},
		{"bboltdb", func(path string) (database.Database, error) { return bboltdb.NewBoltDB(path) }},
	}

	for _, driver := range drivers {
		func() {
			testName := fmt.Sprintf("%s: %s", driver.name, testName)
			db, err := driver.open(t.TempDir())
			if err != nil {
				t.Fatalf("%s: open: %s", testName, err)
			}
			defer func() {
				err := db.Close()
				if err != nil {
					t.Fatalf("%s: Close: %s", testName, err)
				}
			}()

			store, err := New(db, 16)
			if err != nil {
				t.Fatalf("%s: New: %s", testName, err)
			}
			testFunc(t, store, testName)
		}()
	}
}

func makeHeaders(fromHeight, toHeight uint64) []*externalapi.DomainBlockHeader {
	var headers []*externalapi.DomainBlockHeader
	for height := fromHeight; height <= toHeight; height++ {
		headers = append(headers, &externalapi.DomainBlockHeader{
			Version:   1,
			Height:    height,
			Timestamp: 1000 + height*120,
			Nonce:     height * 7,
			Pow: externalapi.ProofOfWork{
				PowAlgo:          externalapi.PowAlgorithmSha3,
				TargetDifficulty: externalapi.Difficulty(height + 1),
				PowData:          []byte{byte(height)},
			},
		})
	}
	return headers
}
