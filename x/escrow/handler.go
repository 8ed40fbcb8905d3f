package escrow

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/orm"
	"github.com/solpay/solpay/x"
	"github.com/solpay/solpay/x/token"
)

const (
	openCost     int64 = 300
	completeCost int64 = 100
	pullbackCost int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r solpay.Registry, auth x.Authenticator, tokens token.Controller) {
	bucket := NewBucket()
	r.Handle(pathOpen, OpenHandler{auth: auth, bucket: bucket, tokens: tokens})
	r.Handle(pathComplete, CompleteHandler{auth: auth, bucket: bucket, tokens: tokens})
	r.Handle(pathPullback, PullbackHandler{auth: auth, bucket: bucket, tokens: tokens})
}

// RegisterQuery will register this bucket as "/escrows".
func RegisterQuery(qr solpay.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// OpenHandler creates an escrow and deposits the funds.
type OpenHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	tokens token.Controller
}

var _ solpay.Handler = OpenHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h OpenHandler) Check(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &solpay.CheckResult{GasAllocated: openCost}, nil
}

// Deliver creates the custody account owned by the state address, stores
// the escrow record and moves the funds into custody.
func (h OpenHandler) Deliver(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.tokens.CreateAccount(ctx, db, msg.EscrowWallet, msg.Mint, msg.EscrowState, msg.Sender); err != nil {
		return nil, errors.Wrap(err, "create custody account")
	}
	custody, err := h.tokens.Account(db, msg.EscrowWallet)
	if err != nil {
		return nil, err
	}
	if !custody.Owner.Equals(msg.EscrowState) || !custody.Mint.Equals(msg.Mint) {
		return nil, errors.Wrap(ErrDelegate, "custody account")
	}

	if err := h.tokens.Transfer(ctx, db, msg.FundingWallet, msg.EscrowWallet, msg.Sender, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}

	rec := Record{
		ID:        msg.EscrowID,
		Amount:    msg.Amount,
		Sender:    msg.Sender,
		Recipient: msg.Recipient,
		Mint:      msg.Mint,
		Custody:   msg.EscrowWallet,
		Stage:     StageDeposited,
	}
	if err := h.bucket.Put(db, msg.EscrowState, &rec); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	solpay.GetLogger(ctx).Info("initialized escrow",
		"escrow", msg.EscrowState.String(),
		"amount", msg.Amount)
	return &solpay.DeliverResult{Data: msg.EscrowState}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h OpenHandler) validate(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*OpenMsg, error) {
	var msg OpenMsg
	if err := solpay.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Sender, "sender"); err != nil {
		return nil, err
	}

	program, err := ProgramID(db)
	if err != nil {
		return nil, err
	}
	if err := checkAddresses(program, msg.ref()); err != nil {
		return nil, err
	}

	switch err := h.bucket.Has(db, msg.EscrowState); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "escrow %s", msg.EscrowState)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	switch _, err := h.tokens.Account(db, msg.EscrowWallet); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "custody account %s", msg.EscrowWallet)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	if _, err := h.tokens.Mint(db, msg.Mint); err != nil {
		return nil, err
	}
	if err := checkWallet(h.tokens, db, msg.FundingWallet, msg.Sender, msg.Mint); err != nil {
		return nil, errors.Wrap(err, "funding wallet")
	}
	return &msg, nil
}

// CompleteHandler releases the funds to the recipient.
type CompleteHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	tokens token.Controller
}

var _ solpay.Handler = CompleteHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h CompleteHandler) Check(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &solpay.CheckResult{GasAllocated: completeCost}, nil
}

// Deliver moves the escrowed funds to the associated wallet of the
// recipient, creating that wallet if needed.
func (h CompleteHandler) Deliver(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	msg, program, rec, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	dest, err := h.tokens.GetOrCreateAssociated(ctx, db, msg.Recipient, msg.Mint, msg.Recipient)
	if err != nil {
		return nil, errors.Wrap(err, "recipient wallet")
	}
	if err := releaseCustody(ctx, db, h.tokens, program, msg.EscrowState, rec, msg.StateBump, dest); err != nil {
		return nil, err
	}

	rec.Stage = StageCompleted
	if err := h.bucket.Put(db, msg.EscrowState, rec); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return &solpay.DeliverResult{Data: dest}, nil
}

func (h CompleteHandler) validate(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*CompleteMsg, solpay.Address, *Record, error) {
	var msg CompleteMsg
	if err := solpay.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	program, rec, err := loadEscrow(db, h.bucket, msg.ref())
	if err != nil {
		return nil, nil, nil, err
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Recipient, "recipient"); err != nil {
		return nil, nil, nil, err
	}
	if err := requireDeposited(ctx, msg.EscrowState, rec); err != nil {
		return nil, nil, nil, err
	}
	return &msg, program, rec, nil
}

// PullbackHandler returns the funds to the sender.
type PullbackHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	tokens token.Controller
}

var _ solpay.Handler = PullbackHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h PullbackHandler) Check(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &solpay.CheckResult{GasAllocated: pullbackCost}, nil
}

// Deliver moves the escrowed funds to the refund wallet.
func (h PullbackHandler) Deliver(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	msg, program, rec, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := releaseCustody(ctx, db, h.tokens, program, msg.EscrowState, rec, msg.StateBump, msg.RefundWallet); err != nil {
		return nil, err
	}

	rec.Stage = StagePulledBack
	if err := h.bucket.Put(db, msg.EscrowState, rec); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return &solpay.DeliverResult{}, nil
}

func (h PullbackHandler) validate(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx) (*PullbackMsg, solpay.Address, *Record, error) {
	var msg PullbackMsg
	if err := solpay.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	program, rec, err := loadEscrow(db, h.bucket, msg.ref())
	if err != nil {
		return nil, nil, nil, err
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Sender, "sender"); err != nil {
		return nil, nil, nil, err
	}
	if err := checkWallet(h.tokens, db, msg.RefundWallet, msg.Sender, msg.Mint); err != nil {
		return nil, nil, nil, errors.Wrap(err, "refund wallet")
	}
	if err := requireDeposited(ctx, msg.EscrowState, rec); err != nil {
		return nil, nil, nil, err
	}
	return &msg, program, rec, nil
}

// loadEscrow checks the supplied addresses and returns the escrow record
// they point to. The record must belong to the supplied parties.
func loadEscrow(db solpay.ReadOnlyKVStore, bucket orm.ModelBucket, ref escrowRef) (solpay.Address, *Record, error) {
	program, err := ProgramID(db)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAddresses(program, ref); err != nil {
		return nil, nil, err
	}

	var rec Record
	if err := bucket.One(db, ref.EscrowState, &rec); err != nil {
		return nil, nil, errors.Wrap(err, "escrow")
	}
	switch {
	case rec.ID != ref.EscrowID,
		!rec.Sender.Equals(ref.Sender),
		!rec.Recipient.Equals(ref.Recipient),
		!rec.Mint.Equals(ref.Mint),
		!rec.Custody.Equals(ref.EscrowWallet):
		return nil, nil, errors.Wrap(ErrInvalidStateIdx, "escrow does not match the parties")
	}
	return program, &rec, nil
}

func requireDeposited(ctx solpay.Context, state solpay.Address, rec *Record) error {
	if rec.Stage != StageDeposited {
		solpay.GetLogger(ctx).Info("stage is invalid",
			"escrow", state.String(),
			"stage", rec.Stage.String())
		return errors.Wrapf(ErrStage, "escrow is %s", rec.Stage)
	}
	return nil
}

// checkWallet requires that wallet is a token account of owner holding
// mint.
func checkWallet(tokens token.Controller, db solpay.ReadOnlyKVStore, wallet, owner, mint solpay.Address) error {
	acc, err := tokens.Account(db, wallet)
	if err != nil {
		return err
	}
	if !acc.Owner.Equals(owner) {
		return errors.Wrapf(ErrWalletInvalid, "owner is %s", acc.Owner)
	}
	if !acc.Mint.Equals(mint) {
		return errors.Wrapf(ErrWalletInvalid, "mint is %s", acc.Mint)
	}
	return nil
}

// releaseCustody moves the escrowed amount from the custody account to
// dest, signing as the state address. The custody account is closed once
// empty and its rent goes back to the sender.
func releaseCustody(
	ctx solpay.Context,
	db solpay.KVStore,
	tokens token.Controller,
	program solpay.Address,
	state solpay.Address,
	rec *Record,
	stateBump uint8,
	dest solpay.Address,
) error {
	signer, err := signState(program, rec, stateBump)
	if err != nil {
		return err
	}
	if !signer.Address().Equals(state) {
		return errors.Wrap(ErrInvalidStateIdx, "state signer")
	}

	custody, err := tokens.Account(db, rec.Custody)
	if err != nil {
		return errors.Wrap(err, "custody account")
	}
	if !custody.Owner.Equals(state) {
		return errors.Wrapf(ErrDelegate, "custody account owned by %s", custody.Owner)
	}

	signed := signer.Sign(ctx)
	if err := tokens.Transfer(signed, db, rec.Custody, dest, state, rec.Amount); err != nil {
		return errors.Wrap(err, "release")
	}

	custody, err = tokens.Account(db, rec.Custody)
	if err != nil {
		return errors.Wrap(err, "custody account")
	}
	if custody.Amount == 0 {
		if err := tokens.CloseAccount(signed, db, rec.Custody, rec.Sender, state); err != nil {
			return errors.Wrap(err, "close custody account")
		}
		solpay.GetLogger(ctx).Debug("closed custody account",
			"escrow", state.String(),
			"custody", rec.Custody.String())
	}
	return nil
}
