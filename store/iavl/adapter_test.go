package iavl

import (
	"testing"

	"github.com/solpay/solpay/store"
	"github.com/solpay/solpay/weavetest/assert"
)

var iavlSuite = store.NewTestSuite(func() (store.CacheableKVStore, func()) {
	return MockCommitStore().CacheWrap(), func() {}
})

func TestIavlNestedCaches(t *testing.T)    { iavlSuite.NestedCaches(t) }
func TestIavlPrefixIteration(t *testing.T) { iavlSuite.PrefixIteration(t) }
func TestIavlRandomIteration(t *testing.T) { iavlSuite.RandomIteration(t) }

func TestCommitVersions(t *testing.T) {
	s := MockCommitStore()
	assert.Nil(t, s.LoadLatestVersion())

	id, err := s.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)

	k, v := []byte("escrow"), []byte("deposited")

	cache := s.CacheWrap()
	assert.Nil(t, cache.Set(k, v))
	// nothing is visible at the committed state before Write and Commit
	got, err := s.Get(k)
	assert.Nil(t, err)
	assert.Nil(t, got)

	assert.Nil(t, cache.Write())
	first, err := s.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), first.Version)
	got, err = s.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)

	// an empty block keeps the hash
	second, err := s.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), second.Version)
	assert.Equal(t, first.Hash, second.Hash)

	// a discarded cache changes nothing
	cache = s.CacheWrap()
	assert.Nil(t, cache.Delete(k))
	cache.Discard()
	third, err := s.Commit()
	assert.Nil(t, err)
	assert.Equal(t, first.Hash, third.Hash)

	latest, err := s.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, third, latest)
}
