package token

import (
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/gconf"
)

const confPkg = "token"

// Configuration of the token program.
type Configuration struct {
	// AccountRent is the lamport deposit charged to the payer of every
	// created account.
	AccountRent uint64 `json:"account_rent"`
}

func (c *Configuration) Marshal() ([]byte, error)   { return gconf.Marshal(c) }
func (c *Configuration) Unmarshal(raw []byte) error { return gconf.Unmarshal(raw, c) }
func (c *Configuration) Validate() error            { return nil }

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case errors.ErrNotFound.Is(err):
		return Configuration{}, nil
	case err != nil:
		return Configuration{}, err
	}
	return conf, nil
}
