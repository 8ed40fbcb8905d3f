package weavetest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/store/iavl"
)

// CommitKVStore opens an iavl store in a temporary directory, the backend
// solpayd runs on. Use it over store.MemStore when a test needs commits or
// versions. cleanup removes the directory.
func CommitKVStore(t testing.TB) (db solpay.CommitKVStore, cleanup func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "solpay-store")
	if err != nil {
		t.Fatalf("temp dir: %s", err)
	}
	cleanup = func() { os.RemoveAll(dir) }

	if db, err = iavl.NewCommitStore(dir, "solpay"); err != nil {
		cleanup()
		t.Fatalf("open iavl store: %s", err)
	}
	return db, cleanup
}
