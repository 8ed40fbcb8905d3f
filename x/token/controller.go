package token

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/orm"
	"github.com/solpay/solpay/x"
)

// Controller exposes the token operations other extensions can compose.
// Authority checks use the authenticator the controller was built with,
// so program derived addresses can spend when their program signed for
// them.
type Controller interface {
	// CreateAccount creates an empty account for mint at addr, spendable
	// by owner. The account rent is taken from payer.
	CreateAccount(ctx solpay.Context, db solpay.KVStore, addr, mint, owner, payer solpay.Address) error

	// GetOrCreateAssociated returns the associated account of owner for
	// mint, creating it with payer funding the rent if needed.
	GetOrCreateAssociated(ctx solpay.Context, db solpay.KVStore, owner, mint, payer solpay.Address) (solpay.Address, error)

	// Transfer moves amount from one account to another. Authority must
	// own the source account.
	Transfer(ctx solpay.Context, db solpay.KVStore, from, to, authority solpay.Address, amount uint64) error

	// CloseAccount removes an empty account and credits its rent to
	// rentDestination.
	CloseAccount(ctx solpay.Context, db solpay.KVStore, account, rentDestination, authority solpay.Address) error

	// MintTo issues new units of mint into dest.
	MintTo(ctx solpay.Context, db solpay.KVStore, mint, dest, authority solpay.Address, amount uint64) error

	Account(db solpay.ReadOnlyKVStore, addr solpay.Address) (*Account, error)
	Mint(db solpay.ReadOnlyKVStore, addr solpay.Address) (*Mint, error)
	Lamports(db solpay.ReadOnlyKVStore, addr solpay.Address) (uint64, error)
}

// NewController returns a token controller authorizing operations with
// given authenticator.
func NewController(auth x.Authenticator) Controller {
	return &controller{
		auth:     auth,
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
		lamports: NewLamportsBucket(),
	}
}

type controller struct {
	auth     x.Authenticator
	mints    orm.ModelBucket
	accounts orm.ModelBucket
	lamports orm.ModelBucket
}

var _ Controller = (*controller)(nil)

func (c *controller) CreateAccount(ctx solpay.Context, db solpay.KVStore, addr, mint, owner, payer solpay.Address) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "account address")
	}
	if err := c.accounts.Has(db, addr); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "account %s", addr)
	} else if !errors.ErrNotFound.Is(err) {
		return err
	}
	if _, err := c.Mint(db, mint); err != nil {
		return err
	}
	if err := x.RequireSigner(ctx, c.auth, payer, "payer"); err != nil {
		return err
	}

	conf, err := loadConf(db)
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}
	if err := c.debitLamports(db, payer, conf.AccountRent); err != nil {
		return errors.Wrap(err, "account rent")
	}

	acc := Account{
		Mint:  mint,
		Owner: owner,
		Rent:  conf.AccountRent,
	}
	if err := c.accounts.Put(db, addr, &acc); err != nil {
		return errors.Wrap(err, "save account")
	}
	return nil
}

func (c *controller) GetOrCreateAssociated(ctx solpay.Context, db solpay.KVStore, owner, mint, payer solpay.Address) (solpay.Address, error) {
	addr, err := AssociatedAddress(owner, mint)
	if err != nil {
		return nil, errors.Wrap(err, "associated address")
	}
	acc, err := c.Account(db, addr)
	switch {
	case err == nil:
		if !acc.Mint.Equals(mint) || !acc.Owner.Equals(owner) {
			return nil, errors.Wrapf(errors.ErrState, "associated account %s is not owned by %s", addr, owner)
		}
		return addr, nil
	case errors.ErrNotFound.Is(err):
		if err := c.CreateAccount(ctx, db, addr, mint, owner, payer); err != nil {
			return nil, err
		}
		return addr, nil
	default:
		return nil, err
	}
}

func (c *controller) Transfer(ctx solpay.Context, db solpay.KVStore, from, to, authority solpay.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "transfer amount must be positive")
	}
	src, err := c.Account(db, from)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	dst, err := c.Account(db, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !src.Mint.Equals(dst.Mint) {
		return errors.Wrapf(ErrMintMismatch, "%s and %s", src.Mint, dst.Mint)
	}
	if err := c.authorize(ctx, src.Owner, authority); err != nil {
		return err
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, want %d", src.Amount, amount)
	}
	if from.Equals(to) {
		return nil
	}

	balance, err := add(dst.Amount, amount)
	if err != nil {
		return err
	}
	src.Amount -= amount
	dst.Amount = balance

	if err := c.accounts.Put(db, from, src); err != nil {
		return errors.Wrap(err, "save source")
	}
	if err := c.accounts.Put(db, to, dst); err != nil {
		return errors.Wrap(err, "save destination")
	}
	return nil
}

func (c *controller) CloseAccount(ctx solpay.Context, db solpay.KVStore, account, rentDestination, authority solpay.Address) error {
	acc, err := c.Account(db, account)
	if err != nil {
		return err
	}
	if err := c.authorize(ctx, acc.Owner, authority); err != nil {
		return err
	}
	if acc.Amount != 0 {
		return errors.Wrapf(errors.ErrState, "account holds %d", acc.Amount)
	}
	if err := rentDestination.Validate(); err != nil {
		return errors.Wrap(err, "rent destination")
	}
	if err := c.creditLamports(db, rentDestination, acc.Rent); err != nil {
		return err
	}
	return c.accounts.Delete(db, account)
}

func (c *controller) MintTo(ctx solpay.Context, db solpay.KVStore, mint, dest, authority solpay.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "mint amount must be positive")
	}
	m, err := c.Mint(db, mint)
	if err != nil {
		return err
	}
	if err := c.authorize(ctx, m.Authority, authority); err != nil {
		return err
	}
	acc, err := c.Account(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !acc.Mint.Equals(mint) {
		return errors.Wrapf(ErrMintMismatch, "account holds %s", acc.Mint)
	}
	if m.Supply, err = add(m.Supply, amount); err != nil {
		return errors.Wrap(err, "supply")
	}
	if acc.Amount, err = add(acc.Amount, amount); err != nil {
		return errors.Wrap(err, "balance")
	}
	if err := c.mints.Put(db, mint, m); err != nil {
		return errors.Wrap(err, "save mint")
	}
	return c.accounts.Put(db, dest, acc)
}

func (c *controller) Account(db solpay.ReadOnlyKVStore, addr solpay.Address) (*Account, error) {
	var acc Account
	if err := c.accounts.One(db, addr, &acc); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acc, nil
}

func (c *controller) Mint(db solpay.ReadOnlyKVStore, addr solpay.Address) (*Mint, error) {
	var m Mint
	if err := c.mints.One(db, addr, &m); err != nil {
		return nil, errors.Wrapf(err, "mint %s", addr)
	}
	return &m, nil
}

func (c *controller) Lamports(db solpay.ReadOnlyKVStore, addr solpay.Address) (uint64, error) {
	var l Lamports
	switch err := c.lamports.One(db, addr, &l); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return l.Amount, nil
}

// authorize requires that the owner is the declared authority and that the
// authority approved the current call.
func (c *controller) authorize(ctx solpay.Context, owner, authority solpay.Address) error {
	if !owner.Equals(authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the owner", authority)
	}
	if !c.auth.HasAddress(ctx, authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", authority)
	}
	return nil
}

func (c *controller) debitLamports(db solpay.KVStore, addr solpay.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	balance, err := c.Lamports(db, addr)
	if err != nil {
		return err
	}
	if balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "lamports %d, want %d", balance, amount)
	}
	return c.lamports.Put(db, addr, &Lamports{Amount: balance - amount})
}

func (c *controller) creditLamports(db solpay.KVStore, addr solpay.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	balance, err := c.Lamports(db, addr)
	if err != nil {
		return err
	}
	if balance, err = add(balance, amount); err != nil {
		return err
	}
	return c.lamports.Put(db, addr, &Lamports{Amount: balance})
}

// CreateMint stores a new mint. It is used by the genesis initializer and
// by the CLI tooling.
func CreateMint(db solpay.KVStore, addr, authority solpay.Address, decimals uint8) error {
	b := NewMintBucket()
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "mint address")
	}
	if err := b.Has(db, addr); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "mint %s", addr)
	} else if !errors.ErrNotFound.Is(err) {
		return err
	}
	return b.Put(db, addr, &Mint{Authority: authority, Decimals: decimals})
}
