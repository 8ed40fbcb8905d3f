package app

import (
	"reflect"

	"github.com/solpay/solpay"
)

// Decorators is an ordered list of decorators waiting for the final
// handler. The first decorator sees a transaction first. The solpayd stack
// looks like
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     utils.NewSavepoint().OnCheck(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(router)
//
// so a failing escrow message is rolled back after its signer sequence
// was consumed.
type Decorators struct {
	chain []solpay.Decorator
}

// ChainDecorators returns the decorators in given order. Nil values,
// including typed nil pointers, are skipped so optional decorators can be
// passed unconditionally.
func ChainDecorators(chain ...solpay.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a copy of d extended with more decorators.
func (d Decorators) Chain(chain ...solpay.Decorator) Decorators {
	all := make([]solpay.Decorator, len(d.chain), len(d.chain)+len(chain))
	copy(all, d.chain)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			all = append(all, dec)
		}
	}
	return Decorators{chain: all}
}

func isNilDecorator(d solpay.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the chain with h.
func (d Decorators) WithHandler(h solpay.Handler) solpay.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decorated{dec: d.chain[i], next: h}
	}
	return h
}

// decorated runs one decorator around the rest of the chain.
type decorated struct {
	dec  solpay.Decorator
	next solpay.Handler
}

var _ solpay.Handler = decorated{}

func (s decorated) Check(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	return s.dec.Check(ctx, store, tx, s.next)
}

func (s decorated) Deliver(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	return s.dec.Deliver(ctx, store, tx, s.next)
}
