package token

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/gconf"
)

const optKey = "token"

// Genesis is the "token" section of the genesis file.
type Genesis struct {
	Mints []struct {
		Address   solpay.Address `json:"address"`
		Authority solpay.Address `json:"authority"`
		Decimals  uint8          `json:"decimals"`
	} `json:"mints"`
	Accounts []struct {
		Address solpay.Address `json:"address"`
		Account
	} `json:"accounts"`
	Lamports []struct {
		Address solpay.Address `json:"address"`
		Amount  uint64         `json:"amount"`
	} `json:"lamports"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ solpay.Initializer = Initializer{}

// FromGenesis will parse initial mints, accounts and native balances from
// genesis and save them to the database. Mint supply is the sum of all
// genesis accounts of that mint.
func (Initializer) FromGenesis(opts solpay.Options, db solpay.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, confPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "init config")
	}

	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(err, "read genesis")
	}

	mints := NewMintBucket()
	for _, m := range gen.Mints {
		if err := CreateMint(db, m.Address, m.Authority, m.Decimals); err != nil {
			return errors.Wrapf(err, "mint %s", m.Address)
		}
	}

	accounts := NewAccountBucket()
	for _, a := range gen.Accounts {
		var m Mint
		if err := mints.One(db, a.Mint, &m); err != nil {
			return errors.Wrapf(err, "account %s mint", a.Address)
		}
		if err := accounts.Has(db, a.Address); err == nil {
			return errors.Wrapf(errors.ErrDuplicate, "account %s", a.Address)
		}
		acc := a.Account
		if err := accounts.Put(db, a.Address, &acc); err != nil {
			return errors.Wrapf(err, "account %s", a.Address)
		}
		supply, err := add(m.Supply, acc.Amount)
		if err != nil {
			return errors.Wrapf(err, "mint %s supply", a.Mint)
		}
		m.Supply = supply
		if err := mints.Put(db, a.Mint, &m); err != nil {
			return errors.Wrapf(err, "mint %s", a.Mint)
		}
	}

	lamports := NewLamportsBucket()
	for _, l := range gen.Lamports {
		if err := l.Address.Validate(); err != nil {
			return errors.Wrap(err, "lamports address")
		}
		if err := lamports.Put(db, l.Address, &Lamports{Amount: l.Amount}); err != nil {
			return errors.Wrapf(err, "lamports %s", l.Address)
		}
	}
	return nil
}
