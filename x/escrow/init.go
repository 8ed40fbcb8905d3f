package escrow

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/gconf"
)

// Initializer stores the escrow configuration found in the genesis file.
// Without one the default program id is used.
type Initializer struct{}

var _ solpay.Initializer = Initializer{}

func (Initializer) FromGenesis(opts solpay.Options, db solpay.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, confPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "init config")
	}
}
