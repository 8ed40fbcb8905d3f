package sigs

import (
	"context"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx solpay.Context, signers []solpay.Address) solpay.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reports the keys that signed the current transaction.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetSigners returns who signed the current Context.
// May be empty
func (a Authenticate) GetSigners(ctx solpay.Context) []solpay.Address {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]solpay.Address)
	return val
}

// HasAddress returns true if addr signed the current Context.
func (a Authenticate) HasAddress(ctx solpay.Context, addr solpay.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
