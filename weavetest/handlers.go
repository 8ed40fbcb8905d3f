package weavetest

import "github.com/solpay/solpay"

// Handler is a counting solpay.Handler returning the configured results,
// or the configured errors when set.
type Handler struct {
	calls
	CheckResult   solpay.CheckResult
	CheckErr      error
	DeliverResult solpay.DeliverResult
	DeliverErr    error
}

var _ solpay.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler writes Key and Value to the store and then returns Err,
// so tests can verify what is kept on failure.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ solpay.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &solpay.CheckResult{}, nil
}

func (h WriteHandler) Deliver(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &solpay.DeliverResult{}, nil
}

// PanicHandler always panics with Msg.
type PanicHandler struct {
	Msg string
}

var _ solpay.Handler = PanicHandler{}

func (h PanicHandler) Check(solpay.Context, solpay.KVStore, solpay.Tx) (*solpay.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(solpay.Context, solpay.KVStore, solpay.Tx) (*solpay.DeliverResult, error) {
	panic(h.Msg)
}
