package store

import (
	"bytes"

	"github.com/google/btree"
)

// MemStore returns an empty in-memory store. Nothing is persisted.
func MemStore() CacheableKVStore {
	empty := EmptyKVStore{}
	return NewBTreeCacheWrap(empty, empty.NewBatch(), nil)
}

// BTreeCacheWrap buffers writes in a btree on top of a read only parent.
// Reads see the buffered writes first. Every write is also queued in batch,
// which carries it to the parent on Write.
type BTreeCacheWrap struct {
	pending *btree.BTree
	free    *btree.FreeList
	parent  ReadOnlyKVStore
	batch   Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap wraps parent. batch must write to the store parent
// reads from. free may be shared between nested wraps and is allocated when
// nil.
func NewBTreeCacheWrap(parent ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		pending: btree.NewWithFreeList(2, free),
		free:    free,
		parent:  parent,
		batch:   batch,
	}
}

// CacheWrap nests another wrap. Its writes land in this btree, which
// cannot fail, so a non-atomic batch is enough.
func (c BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(c, c.NewBatch(), c.free)
}

func (c BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Write flushes all pending writes to the parent and empties the wrap.
func (c BTreeCacheWrap) Write() error {
	err := c.batch.Write()
	c.Discard()
	return err
}

// Discard drops all pending writes. The nodes go back to the free list.
func (c BTreeCacheWrap) Discard() {
	for c.pending.DeleteMin() != nil {
	}
}

func (c BTreeCacheWrap) Set(key, value []byte) error {
	c.pending.ReplaceOrInsert(entry{key: key, value: value})
	return c.batch.Set(key, value)
}

func (c BTreeCacheWrap) Delete(key []byte) error {
	c.pending.ReplaceOrInsert(entry{key: key, deleted: true})
	return c.batch.Delete(key)
}

func (c BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := c.lookup(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return c.parent.Get(key)
}

func (c BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := c.lookup(key); ok {
		return !e.deleted, nil
	}
	return c.parent.Has(key)
}

func (c BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	item := c.pending.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

// Iterator returns the visible models in [start, end) in ascending order.
func (c BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	models, err := c.visible(start, end)
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(models), nil
}

// ReverseIterator returns the visible models in [start, end) in
// descending order.
func (c BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	models, err := c.visible(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return NewSliceIterator(models), nil
}

// visible merges the sorted parent range with the pending entries of the
// same range. A pending entry replaces a parent model with the same key and
// a deleted one hides it.
func (c BTreeCacheWrap) visible(start, end []byte) ([]Model, error) {
	it, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	below, err := ReadAll(it)
	if err != nil {
		return nil, err
	}
	pending := c.pendingRange(start, end)

	res := make([]Model, 0, len(below)+len(pending))
	for len(below) > 0 || len(pending) > 0 {
		if len(pending) == 0 || (len(below) > 0 && bytes.Compare(below[0].Key, pending[0].key) < 0) {
			res = append(res, below[0])
			below = below[1:]
			continue
		}
		if len(below) > 0 && bytes.Equal(below[0].Key, pending[0].key) {
			below = below[1:]
		}
		if e := pending[0]; !e.deleted {
			res = append(res, Model{Key: e.key, Value: e.value})
		}
		pending = pending[1:]
	}
	return res, nil
}

func (c BTreeCacheWrap) pendingRange(start, end []byte) []entry {
	var res []entry
	collect := func(item btree.Item) bool {
		res = append(res, item.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		c.pending.Ascend(collect)
	case start == nil:
		c.pending.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		c.pending.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		c.pending.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return res
}

// entry is a pending write ordered by key. Lookups use an entry holding
// only the key.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
