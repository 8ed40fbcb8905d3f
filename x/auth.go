package x

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
)

// Authenticator tells which addresses authorized the current transaction.
// Handlers receive one in their constructor. Keys are authorized by
// x/sigs and program derived addresses by solpay.ProgramSigners.
type Authenticator interface {
	GetSigners(solpay.Context) []solpay.Address
	HasAddress(solpay.Context, solpay.Address) bool
}

var _ Authenticator = solpay.ProgramSigners{}

// ChainAuth returns an Authenticator that accepts an address if any of
// auths does.
func ChainAuth(auths ...Authenticator) Authenticator {
	return chained(auths)
}

type chained []Authenticator

// GetSigners lists the signers of all authenticators in order, each address
// once.
func (c chained) GetSigners(ctx solpay.Context) []solpay.Address {
	var res []solpay.Address
	seen := make(map[string]bool)
	for _, auth := range c {
		for _, s := range auth.GetSigners(ctx) {
			if !seen[string(s)] {
				seen[string(s)] = true
				res = append(res, s)
			}
		}
	}
	return res
}

func (c chained) HasAddress(ctx solpay.Context, addr solpay.Address) bool {
	for _, auth := range c {
		if auth.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// RequireSigner returns ErrUnauthorized unless addr authorized the
// transaction. role names addr in the error, like "sender" or "payer".
func RequireSigner(ctx solpay.Context, auth Authenticator, addr solpay.Address, role string) error {
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature missing", role)
	}
	return nil
}
