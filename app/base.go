package app

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp decodes transactions and passes them to a handler, on top of the
// storage and query functionality of StoreApp. CheckTx runs against the
// check cache and DeliverTx against the deliver cache of the store.
type BaseApp struct {
	*StoreApp
	decoder solpay.TxDecoder
	handler solpay.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

func NewBaseApp(store *StoreApp, decoder solpay.TxDecoder, handler solpay.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return solpay.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(b.txContext("deliver_tx", tx), b.DeliverStore(), tx)
	return solpay.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return solpay.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(b.txContext("check_tx", tx), b.CheckStore(), tx)
	return solpay.CheckOrError(res, err, b.debug)
}

// txContext tags the block context logger with the ABCI call and the
// message path, ie. "escrow/open".
func (b BaseApp) txContext(call string, tx solpay.Tx) solpay.Context {
	return solpay.WithLogInfo(b.BlockContext(), "call", call, "path", solpay.GetPath(tx))
}

// decode turns a decoder panic into an ErrPanic so malformed bytes from
// the mempool can never stop the node.
func (b BaseApp) decode(txBytes []byte) (tx solpay.Tx, err error) {
	if len(txBytes) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty transaction")
	}
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}
