package app

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
)

// CommitStore wraps the committed state with one cache for DeliverTx and
// one for CheckTx. Only the deliver cache ever reaches the committed state,
// check results are thrown away on every Commit.
type CommitStore struct {
	committed solpay.CommitKVStore
	deliver   solpay.KVCacheWrap
	check     solpay.KVCacheWrap
}

// NewCommitStore loads the latest version of store.
func NewCommitStore(store solpay.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs, nil
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// LastCommit returns the version and hash of the latest committed block.
func (cs *CommitStore) LastCommit() (solpay.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit writes all delivered transactions, persists a new version and
// starts fresh caches on top of it.
func (cs *CommitStore) Commit() (solpay.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return solpay.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.reset()
	return id, nil
}

// Snapshot returns a read view of the committed state. Changes made to it
// are never persisted.
func (cs *CommitStore) Snapshot() solpay.KVCacheWrap {
	return cs.committed.CacheWrap()
}

func (cs *CommitStore) CheckStore() solpay.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() solpay.CacheableKVStore {
	return cs.deliver
}

// chainIDKey lives outside of any bucket or configuration prefix.
var chainIDKey = []byte("_sp:chainID")

// loadChainID returns the stored chain id or an empty string before
// genesis.
func loadChainID(kv solpay.ReadOnlyKVStore) (string, error) {
	raw, err := kv.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID writes the chain id once. A chain id cannot be changed after
// genesis.
func saveChainID(kv solpay.KVStore, chainID string) error {
	if !solpay.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch prev, err := loadChainID(kv); {
	case err != nil:
		return err
	case prev != "":
		return errors.Wrapf(errors.ErrImmutable, "chain id already set to %q", prev)
	}
	return errors.Wrap(kv.Set(chainIDKey, []byte(chainID)), "save chain id")
}
