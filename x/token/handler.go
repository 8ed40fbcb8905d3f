package token

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/x"
)

const (
	transferCost         int64 = 100
	mintToCost           int64 = 100
	createAssociatedCost int64 = 200
	closeCost            int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r solpay.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathTransfer, TransferHandler{auth: auth, control: control})
	r.Handle(pathMintTo, MintToHandler{auth: auth, control: control})
	r.Handle(pathCreateAssociated, CreateAssociatedHandler{auth: auth, control: control})
	r.Handle(pathClose, CloseHandler{auth: auth, control: control})
}

// RegisterQuery will register the token buckets as "/tokens", "/mints"
// and "/lamports".
func RegisterQuery(qr solpay.QueryRouter) {
	NewAccountBucket().Register("tokens", qr)
	NewMintBucket().Register("mints", qr)
	NewLamportsBucket().Register("lamports", qr)
}

// TransferHandler moves funds between accounts.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ solpay.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &solpay.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(ctx, db, msg.From, msg.To, msg.Authority, msg.Amount); err != nil {
		return nil, err
	}
	return &solpay.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx solpay.Context, tx solpay.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := solpay.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Authority, "authority"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MintToHandler issues new units of a mint.
type MintToHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ solpay.Handler = MintToHandler{}

func (h MintToHandler) Check(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &solpay.CheckResult{GasAllocated: mintToCost}, nil
}

func (h MintToHandler) Deliver(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MintTo(ctx, db, msg.Mint, msg.Dest, msg.Authority, msg.Amount); err != nil {
		return nil, err
	}
	return &solpay.DeliverResult{}, nil
}

func (h MintToHandler) validate(ctx solpay.Context, tx solpay.Tx) (*MintToMsg, error) {
	var msg MintToMsg
	if err := solpay.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Authority, "mint authority"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CreateAssociatedHandler creates the associated account of an owner.
// The address of the account is returned as the result data.
type CreateAssociatedHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ solpay.Handler = CreateAssociatedHandler{}

func (h CreateAssociatedHandler) Check(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &solpay.CheckResult{GasAllocated: createAssociatedCost}, nil
}

func (h CreateAssociatedHandler) Deliver(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.control.GetOrCreateAssociated(ctx, db, msg.Owner, msg.Mint, msg.Payer)
	if err != nil {
		return nil, err
	}
	return &solpay.DeliverResult{Data: addr}, nil
}

func (h CreateAssociatedHandler) validate(ctx solpay.Context, tx solpay.Tx) (*CreateAssociatedMsg, error) {
	var msg CreateAssociatedMsg
	if err := solpay.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Payer, "payer"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CloseHandler deletes an empty account.
type CloseHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ solpay.Handler = CloseHandler{}

func (h CloseHandler) Check(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &solpay.CheckResult{GasAllocated: closeCost}, nil
}

func (h CloseHandler) Deliver(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.CloseAccount(ctx, db, msg.Account, msg.RentDestination, msg.Authority); err != nil {
		return nil, err
	}
	return &solpay.DeliverResult{}, nil
}

func (h CloseHandler) validate(ctx solpay.Context, tx solpay.Tx) (*CloseMsg, error) {
	var msg CloseMsg
	if err := solpay.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Authority, "authority"); err != nil {
		return nil, err
	}
	return &msg, nil
}
