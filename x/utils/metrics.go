package utils

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
)

// Metrics is a decorator that counts transactions and measures their
// processing time, labelled by message path.
type Metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ solpay.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator and registers its collectors with
// given registerer. Collectors registered before are reused.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := Metrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solpay",
			Name:      "tx_total",
			Help:      "Number of processed transactions.",
		}, []string{"path", "call", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "solpay",
			Name:      "tx_duration_seconds",
			Help:      "Time spent processing a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"path", "call"}),
	}
	if err := reg.Register(m.total); err != nil {
		existing, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return Metrics{}, errors.Wrap(errors.ErrHuman, err.Error())
		}
		m.total = existing.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(m.duration); err != nil {
		existing, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return Metrics{}, errors.Wrap(errors.ErrHuman, err.Error())
		}
		m.duration = existing.ExistingCollector.(*prometheus.HistogramVec)
	}
	return m, nil
}

// Check measures the check call.
func (m Metrics) Check(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx, next solpay.Checker) (*solpay.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", solpay.GetPath(tx), start, err)
	return res, err
}

// Deliver measures the deliver call.
func (m Metrics) Deliver(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx, next solpay.Deliverer) (*solpay.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", solpay.GetPath(tx), start, err)
	return res, err
}

func (m Metrics) observe(call, path string, start time.Time, err error) {
	m.duration.WithLabelValues(path, call).Observe(time.Since(start).Seconds())
	m.total.WithLabelValues(path, call, result(err)).Inc()
}

// result is "ok" or the ABCI code of the error.
func result(err error) string {
	if err == nil {
		return "ok"
	}
	code, _ := errors.ABCIInfo(err, false)
	return strconv.FormatUint(uint64(code), 10)
}
