package utils

import (
	"context"
	"testing"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/store"
	"github.com/solpay/solpay/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// the escrow record exists before every transaction
	record, deposited := []byte("esc:record"), []byte("deposited")
	// the transaction creates a custody account and then fails or not
	custody, balance := []byte("tok:custody"), []byte("100")
	rejected := errors.Wrap(errors.ErrInsufficientAmount, "funding transfer")

	cases := map[string]struct {
		save    solpay.Decorator
		handler solpay.Handler
		check   bool
		wantErr *errors.Error

		kept    [][]byte
		dropped [][]byte
	}{
		"disabled savepoint keeps partial writes of a failed check": {
			save:    NewSavepoint(),
			handler: weavetest.WriteHandler{Key: custody, Value: balance, Err: rejected},
			check:   true,
			wantErr: errors.ErrInsufficientAmount,
			kept:    [][]byte{record, custody},
		},
		"failed check is rolled back": {
			save:    NewSavepoint().OnCheck(),
			handler: weavetest.WriteHandler{Key: custody, Value: balance, Err: rejected},
			check:   true,
			wantErr: errors.ErrInsufficientAmount,
			kept:    [][]byte{record},
			dropped: [][]byte{custody},
		},
		"failed deliver is rolled back": {
			save:    NewSavepoint().OnDeliver(),
			handler: weavetest.WriteHandler{Key: custody, Value: balance, Err: rejected},
			wantErr: errors.ErrInsufficientAmount,
			kept:    [][]byte{record},
			dropped: [][]byte{custody},
		},
		"check savepoint does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: weavetest.WriteHandler{Key: custody, Value: balance, Err: rejected},
			wantErr: errors.ErrInsufficientAmount,
			kept:    [][]byte{record, custody},
		},
		"enabling both is rolled back on check": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: weavetest.WriteHandler{Key: custody, Value: balance, Err: rejected},
			check:   true,
			wantErr: errors.ErrInsufficientAmount,
			kept:    [][]byte{record},
			dropped: [][]byte{custody},
		},
		"successful deliver is written": {
			save:    NewSavepoint().OnDeliver(),
			handler: weavetest.WriteHandler{Key: custody, Value: balance},
			kept:    [][]byte{record, custody},
		},
		"panic after a write is rolled back": {
			save:    NewSavepoint().OnDeliver(),
			handler: panicAfterWrite{key: custody, value: balance},
			wantErr: errors.ErrPanic,
			kept:    [][]byte{record},
			dropped: [][]byte{custody},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(record, deposited))

			// recovery wraps the savepoint, as in the application chain
			var err error
			if tc.check {
				_, err = NewRecovery().Check(ctx, kv, nil, checker(tc.save, tc.handler))
			} else {
				_, err = NewRecovery().Deliver(ctx, kv, nil, deliverer(tc.save, tc.handler))
			}
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
			}

			for _, k := range tc.kept {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%s", k)
			}
			for _, k := range tc.dropped {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%s", k)
			}
		})
	}
}

type panicAfterWrite struct {
	key, value []byte
}

func (p panicAfterWrite) Check(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	_ = db.Set(p.key, p.value)
	panic("boom")
}

func (p panicAfterWrite) Deliver(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	_ = db.Set(p.key, p.value)
	panic("boom")
}

type checkFn func(solpay.Context, solpay.KVStore, solpay.Tx) (*solpay.CheckResult, error)

func (f checkFn) Check(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	return f(ctx, db, tx)
}

type deliverFn func(solpay.Context, solpay.KVStore, solpay.Tx) (*solpay.DeliverResult, error)

func (f deliverFn) Deliver(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	return f(ctx, db, tx)
}

func checker(d solpay.Decorator, h solpay.Handler) solpay.Checker {
	return checkFn(func(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
		return d.Check(ctx, db, tx, h)
	})
}

func deliverer(d solpay.Decorator, h solpay.Handler) solpay.Deliverer {
	return deliverFn(func(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
		return d.Deliver(ctx, db, tx, h)
	})
}
