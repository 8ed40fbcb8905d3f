package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/solpay/solpay/weavetest/assert"
)

// TestSuite runs the same contract checks against any CacheableKVStore
// implementation. Transactions run on a cache wrap of the block state and
// every message runs on another cache wrap nested in it, so most checks
// exercise two layers.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh, empty store and a function that
// releases it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// NestedCaches checks visibility of writes through a block cache and a
// message cache, and that Discard and Write affect only the parent layer.
func (s *TestSuite) NestedCaches(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	state, custody := []byte("esc:state"), []byte("tok:custody")
	assert.Nil(t, base.Set(state, []byte("deposited")))
	assert.Nil(t, base.Set(custody, []byte("100")))

	block := base.CacheWrap()
	assertGetHas(t, block, state, []byte("deposited"), true)

	// a failing message leaves no trace in the block
	msg := block.CacheWrap()
	assert.Nil(t, msg.Set(state, []byte("completed")))
	assert.Nil(t, msg.Delete(custody))
	assertGetHas(t, msg, state, []byte("completed"), true)
	assertGetHas(t, msg, custody, nil, false)
	msg.Discard()
	assertGetHas(t, block, state, []byte("deposited"), true)
	assertGetHas(t, block, custody, []byte("100"), true)

	// a successful one is visible in the block but not below it
	msg = block.CacheWrap()
	assert.Nil(t, msg.Set(state, []byte("pulled back")))
	assert.Nil(t, msg.Delete(custody))
	assert.Nil(t, msg.Write())
	assertGetHas(t, block, state, []byte("pulled back"), true)
	assertGetHas(t, block, custody, nil, false)
	assertGetHas(t, base, state, []byte("deposited"), true)
	assertGetHas(t, base, custody, []byte("100"), true)

	assert.Nil(t, block.Write())
	assertGetHas(t, base, state, []byte("pulled back"), true)
	assertGetHas(t, base, custody, nil, false)
}

// PrefixIteration checks that bucket style prefix ranges merge the pending
// writes of a cache with its parent, in both directions.
func (s *TestSuite) PrefixIteration(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	for _, k := range []string{"esc:a", "esc:b", "esc:c", "tok:a"} {
		assert.Nil(t, base.Set([]byte(k), []byte("base "+k)))
	}
	cache := base.CacheWrap()
	assert.Nil(t, cache.Set([]byte("esc:b"), []byte("cache esc:b")))
	assert.Nil(t, cache.Delete([]byte("esc:c")))
	assert.Nil(t, cache.Set([]byte("esc:d"), []byte("cache esc:d")))
	assert.Nil(t, cache.Delete([]byte("esc:zz")))

	want := []Model{
		{Key: []byte("esc:a"), Value: []byte("base esc:a")},
		{Key: []byte("esc:b"), Value: []byte("cache esc:b")},
		{Key: []byte("esc:d"), Value: []byte("cache esc:d")},
	}
	// ';' directly follows ':'
	start, end := []byte("esc:"), []byte("esc;")

	it, err := cache.Iterator(start, end)
	assert.Nil(t, err)
	assertIterates(t, it, want)

	it, err = cache.ReverseIterator(start, end)
	assert.Nil(t, err)
	assertIterates(t, it, reverseModels(want))

	it, err = cache.Iterator([]byte("esc:b"), []byte("esc:d"))
	assert.Nil(t, err)
	assertIterates(t, it, want[1:2])

	all := append(append([]Model{}, want...), Model{Key: []byte("tok:a"), Value: []byte("base tok:a")})
	it, err = cache.Iterator(nil, nil)
	assert.Nil(t, err)
	assertIterates(t, it, all)

	// the parent did not change
	it, err = base.Iterator(start, end)
	assert.Nil(t, err)
	assertIterates(t, it, []Model{
		{Key: []byte("esc:a"), Value: []byte("base esc:a")},
		{Key: []byte("esc:b"), Value: []byte("base esc:b")},
		{Key: []byte("esc:c"), Value: []byte("base esc:c")},
	})
}

// RandomIteration compares iteration over a cache holding random writes
// and deletes on top of a random parent with the expected sorted content.
func (s *TestSuite) RandomIteration(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	want := make(map[string][]byte)
	for i := 0; i < 40; i++ {
		k, v := randBytes(8), randBytes(32)
		assert.Nil(t, base.Set(k, v))
		want[string(k)] = v
	}
	cache := base.CacheWrap()
	i := 0
	for k := range want {
		switch i % 3 {
		case 0:
			assert.Nil(t, cache.Delete([]byte(k)))
			delete(want, k)
		case 1:
			v := randBytes(32)
			assert.Nil(t, cache.Set([]byte(k), v))
			want[k] = v
		}
		i++
	}
	for i := 0; i < 20; i++ {
		k, v := randBytes(8), randBytes(32)
		assert.Nil(t, cache.Set(k, v))
		want[string(k)] = v
	}

	expected := make([]Model, 0, len(want))
	for k, v := range want {
		expected = append(expected, Model{Key: []byte(k), Value: v})
	}
	sort.Slice(expected, func(i, j int) bool {
		return bytes.Compare(expected[i].Key, expected[j].Key) < 0
	})

	it, err := cache.Iterator(nil, nil)
	assert.Nil(t, err)
	assertIterates(t, it, expected)

	it, err = cache.ReverseIterator(nil, nil)
	assert.Nil(t, err)
	assertIterates(t, it, reverseModels(expected))

	it, err = cache.Iterator(expected[5].Key, expected[25].Key)
	assert.Nil(t, err)
	assertIterates(t, it, expected[5:25])
}

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func assertIterates(t testing.TB, it Iterator, want []Model) {
	t.Helper()
	got, err := ReadAll(it)
	assert.Nil(t, err)
	if len(got) != len(want) {
		t.Fatalf("want %d models, got %d", len(want), len(got))
	}
	for i := range want {
		if !bytes.Equal(want[i].Key, got[i].Key) {
			t.Fatalf("model %d: want key %X, got %X", i, want[i].Key, got[i].Key)
		}
		assert.Equal(t, want[i].Value, got[i].Value)
	}
}

func reverseModels(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}
