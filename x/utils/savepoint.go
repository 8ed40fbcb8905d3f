package utils

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
)

// Savepoint runs the rest of the chain on a cache wrap of the store. The
// cache is written back only if the chain succeeds, so an escrow message
// that fails halfway (ie. custody account created but the funding transfer
// rejected) leaves no partial state behind.
//
// A zero Savepoint is a pass through. Enable it per ABCI call with OnCheck
// and OnDeliver.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ solpay.Decorator = Savepoint{}

// NewSavepoint returns a disabled Savepoint.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver enables the savepoint for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx, next solpay.Checker) (*solpay.CheckResult, error) {
	var res *solpay.CheckResult
	err := atomically(s.onCheck, store, func(db solpay.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx, next solpay.Deliverer) (*solpay.DeliverResult, error) {
	var res *solpay.DeliverResult
	err := atomically(s.onDeliver, store, func(db solpay.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// atomically calls fn on a cache of store and writes the cache only when
// fn succeeds. Stores that cannot be cached are used directly.
func atomically(enabled bool, store solpay.KVStore, fn func(solpay.KVStore) error) error {
	cstore, ok := store.(solpay.CacheableKVStore)
	if !enabled || !ok {
		return fn(store)
	}

	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
