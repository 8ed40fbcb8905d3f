package utils

import (
	"time"

	"github.com/solpay/solpay"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging logs the outcome and duration of every transaction. Failures are
// logged as errors. Successful deliveries are logged at info level and
// successful checks, which every node repeats, at debug level.
type Logging struct{}

var _ solpay.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx, next solpay.Checker) (*solpay.CheckResult, error) {
	started := time.Now()
	res, err := next.Check(ctx, store, tx)
	logger := outcomeLogger(ctx, started, err)
	switch {
	case err != nil:
		logger.Error("check failed")
	default:
		logger.Debug(res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx, next solpay.Deliverer) (*solpay.DeliverResult, error) {
	started := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	logger := outcomeLogger(ctx, started, err)
	switch {
	case err != nil:
		logger.Error("deliver failed")
	default:
		logger.Info(res.Log)
	}
	return res, err
}

func outcomeLogger(ctx solpay.Context, started time.Time, err error) log.Logger {
	logger := solpay.GetLogger(ctx).With("duration_us", int64(time.Since(started)/time.Microsecond))
	if err != nil {
		logger = logger.With("err", err)
	}
	return logger
}
