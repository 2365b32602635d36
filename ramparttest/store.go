package ramparttest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/store/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// to persist the data. Use this instead of MemStore when a test needs the
// exact same storage implementation as a production registry.
func CommitKVStore(t testing.TB) (db rampart.CommitKVStore, cleanup func()) {
	t.Helper()
	dbpath, err := ioutil.TempDir("", "rampart-db")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	ldb, err := dbm.NewGoLevelDB("db", dbpath)
	if err != nil {
		os.RemoveAll(dbpath)
		t.Fatalf("cannot open database: %s", err)
	}
	return iavl.NewCommitStore(ldb), func() { os.RemoveAll(dbpath) }
}
