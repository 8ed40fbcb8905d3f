package utils

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
)

// Recovery turns a panic raised further down the chain into an ErrPanic
// and logs it. It must sit outside of Savepoint so the discarded cache of
// a panicking transaction is never written.
type Recovery struct{}

var _ solpay.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx, next solpay.Checker) (_ *solpay.CheckResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx, next solpay.Deliverer) (_ *solpay.DeliverResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

func logPanic(ctx solpay.Context, err *error) {
	if errors.ErrPanic.Is(*err) {
		solpay.GetLogger(ctx).Error("Recovered from panic", "err", *err)
	}
}
