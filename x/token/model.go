package token

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/orm"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// Mint defines an asset.
type Mint struct {
	// Authority may issue new units.
	Authority solpay.Address `json:"authority"`
	Decimals  uint8          `json:"decimals"`
	Supply    uint64         `json:"supply"`
}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Marshal() ([]byte, error)   { return cdc.MarshalBinaryLengthPrefixed(m) }
func (m *Mint) Unmarshal(raw []byte) error { return cdc.UnmarshalBinaryLengthPrefixed(raw, m) }

// Validate ensures the mint has an authority.
func (m *Mint) Validate() error {
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	return nil
}

// Account holds a balance of a single asset.
type Account struct {
	Mint   solpay.Address `json:"mint"`
	Owner  solpay.Address `json:"owner"`
	Amount uint64         `json:"amount"`
	// Rent is the lamport deposit returned when the account is closed.
	Rent uint64 `json:"rent"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error)   { return cdc.MarshalBinaryLengthPrefixed(a) }
func (a *Account) Unmarshal(raw []byte) error { return cdc.UnmarshalBinaryLengthPrefixed(raw, a) }

// Validate ensures mint and owner are set.
func (a *Account) Validate() error {
	if err := a.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// Lamports is the native balance of an address, used to pay account rent.
type Lamports struct {
	Amount uint64 `json:"amount"`
}

var _ orm.Model = (*Lamports)(nil)

func (l *Lamports) Marshal() ([]byte, error)   { return cdc.MarshalBinaryLengthPrefixed(l) }
func (l *Lamports) Unmarshal(raw []byte) error { return cdc.UnmarshalBinaryLengthPrefixed(raw, l) }
func (l *Lamports) Validate() error            { return nil }

// NewMintBucket returns the bucket of mints, keyed by mint address.
func NewMintBucket() orm.ModelBucket {
	return orm.NewModelBucket("mints", &Mint{})
}

// NewAccountBucket returns the bucket of token accounts, keyed by account
// address.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokens", &Account{})
}

// NewLamportsBucket returns the bucket of native balances.
func NewLamportsBucket() orm.ModelBucket {
	return orm.NewModelBucket("lamports", &Lamports{})
}

func add(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, errors.Wrap(errors.ErrOverflow, "amount")
	}
	return sum, nil
}
