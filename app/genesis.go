package app

import (
	"github.com/solpay/solpay"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...solpay.Initializer) solpay.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []solpay.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts solpay.Options, kv solpay.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
