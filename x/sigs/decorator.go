/*
Package sigs authenticates transactions by their ed25519 signatures.

Every signature commits to the chain id and to the signer's sequence,
which is incremented on each use, so a signed transaction cannot be
replayed. Verified signers are added to the context and read back with
Authenticate. Program derived addresses never have a key and can only be
authorized by the owning program, never through this package.
*/
package sigs

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
)

// signatureVerifyCost is the gas charged in CheckTx per valid signature.
const signatureVerifyCost = 500

// RegisterQuery exposes signer sequences under "/auth".
func RegisterQuery(qr solpay.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a SignedTx, consumes the signers'
// sequences and puts the signers into the context. Transactions that do
// not carry signatures are passed through unchanged.
type Decorator struct {
	allowMissingSigs bool
}

var _ solpay.Decorator = Decorator{}

// NewDecorator returns a decorator that rejects transactions without a
// valid signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a decorator that accepts unsigned transactions.
// Handlers must then do their own authorization.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx, next solpay.Checker) (*solpay.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(n * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx, next solpay.Deliverer) (*solpay.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

// authenticate returns the context extended with the verified signers of
// tx and their count.
func (d Decorator) authenticate(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx) (solpay.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(store, stx, solpay.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
