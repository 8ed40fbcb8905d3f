package token

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	amino "github.com/tendermint/go-amino"
)

const (
	pathTransfer         = "token/transfer"
	pathMintTo           = "token/mint_to"
	pathCreateAssociated = "token/create_associated"
	pathClose            = "token/close"
)

// RegisterCodec registers all messages of this package with the
// transaction codec.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterConcrete(&TransferMsg{}, pathTransfer, nil)
	cdc.RegisterConcrete(&MintToMsg{}, pathMintTo, nil)
	cdc.RegisterConcrete(&CreateAssociatedMsg{}, pathCreateAssociated, nil)
	cdc.RegisterConcrete(&CloseMsg{}, pathClose, nil)
}

// TransferMsg moves funds between two accounts of the same mint.
type TransferMsg struct {
	From      solpay.Address `json:"from"`
	To        solpay.Address `json:"to"`
	Authority solpay.Address `json:"authority"`
	Amount    uint64         `json:"amount"`
}

var _ solpay.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string { return pathTransfer }

func (m *TransferMsg) Validate() error {
	if err := m.From.Validate(); err != nil {
		return errors.Wrap(err, "from")
	}
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	return nil
}

// MintToMsg issues new units of a mint.
type MintToMsg struct {
	Mint      solpay.Address `json:"mint"`
	Dest      solpay.Address `json:"dest"`
	Authority solpay.Address `json:"authority"`
	Amount    uint64         `json:"amount"`
}

var _ solpay.Msg = (*MintToMsg)(nil)

func (MintToMsg) Path() string { return pathMintTo }

func (m *MintToMsg) Validate() error {
	if err := m.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := m.Dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	return nil
}

// CreateAssociatedMsg creates the associated account of owner for mint.
// Creating an account that already exists is not an error.
type CreateAssociatedMsg struct {
	Owner solpay.Address `json:"owner"`
	Mint  solpay.Address `json:"mint"`
	Payer solpay.Address `json:"payer"`
}

var _ solpay.Msg = (*CreateAssociatedMsg)(nil)

func (CreateAssociatedMsg) Path() string { return pathCreateAssociated }

func (m *CreateAssociatedMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := m.Payer.Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	return nil
}

// CloseMsg deletes an empty account and returns its rent.
type CloseMsg struct {
	Account         solpay.Address `json:"account"`
	RentDestination solpay.Address `json:"rent_destination"`
	Authority       solpay.Address `json:"authority"`
}

var _ solpay.Msg = (*CloseMsg)(nil)

func (CloseMsg) Path() string { return pathClose }

func (m *CloseMsg) Validate() error {
	if err := m.Account.Validate(); err != nil {
		return errors.Wrap(err, "account")
	}
	if err := m.RentDestination.Validate(); err != nil {
		return errors.Wrap(err, "rent destination")
	}
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	return nil
}
