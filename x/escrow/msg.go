package escrow

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	amino "github.com/tendermint/go-amino"
)

const (
	pathOpen     = "escrow/open"
	pathComplete = "escrow/complete"
	pathPullback = "escrow/pullback"
)

// RegisterCodec registers all messages of this package with the
// transaction codec.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterConcrete(&OpenMsg{}, pathOpen, nil)
	cdc.RegisterConcrete(&CompleteMsg{}, pathComplete, nil)
	cdc.RegisterConcrete(&PullbackMsg{}, pathPullback, nil)
}

// escrowRef are the values every escrow message uses to locate an escrow.
type escrowRef struct {
	EscrowID     uint64
	StateBump    uint8
	WalletBump   uint8
	Sender       solpay.Address
	Recipient    solpay.Address
	Mint         solpay.Address
	EscrowState  solpay.Address
	EscrowWallet solpay.Address
}

func (r escrowRef) validate() error {
	if err := r.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := r.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := r.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := r.EscrowState.Validate(); err != nil {
		return errors.Wrap(err, "escrow state")
	}
	if err := r.EscrowWallet.Validate(); err != nil {
		return errors.Wrap(err, "escrow wallet")
	}
	return nil
}

// OpenMsg creates an escrow and moves Amount from the funding wallet of
// the sender into custody.
type OpenMsg struct {
	EscrowID      uint64         `json:"escrow_id"`
	StateBump     uint8          `json:"state_bump"`
	WalletBump    uint8          `json:"wallet_bump"`
	Amount        uint64         `json:"amount"`
	Sender        solpay.Address `json:"sender"`
	Recipient     solpay.Address `json:"recipient"`
	Mint          solpay.Address `json:"mint"`
	EscrowState   solpay.Address `json:"escrow_state"`
	EscrowWallet  solpay.Address `json:"escrow_wallet"`
	FundingWallet solpay.Address `json:"funding_wallet"`
}

var _ solpay.Msg = (*OpenMsg)(nil)

func (OpenMsg) Path() string { return pathOpen }

func (m *OpenMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	if err := m.ref().validate(); err != nil {
		return err
	}
	if err := m.FundingWallet.Validate(); err != nil {
		return errors.Wrap(err, "funding wallet")
	}
	return nil
}

func (m *OpenMsg) ref() escrowRef {
	return escrowRef{
		EscrowID:     m.EscrowID,
		StateBump:    m.StateBump,
		WalletBump:   m.WalletBump,
		Sender:       m.Sender,
		Recipient:    m.Recipient,
		Mint:         m.Mint,
		EscrowState:  m.EscrowState,
		EscrowWallet: m.EscrowWallet,
	}
}

// CompleteMsg releases the escrowed funds to the associated wallet of the
// recipient.
type CompleteMsg struct {
	EscrowID     uint64         `json:"escrow_id"`
	StateBump    uint8          `json:"state_bump"`
	WalletBump   uint8          `json:"wallet_bump"`
	Sender       solpay.Address `json:"sender"`
	Recipient    solpay.Address `json:"recipient"`
	Mint         solpay.Address `json:"mint"`
	EscrowState  solpay.Address `json:"escrow_state"`
	EscrowWallet solpay.Address `json:"escrow_wallet"`
}

var _ solpay.Msg = (*CompleteMsg)(nil)

func (CompleteMsg) Path() string { return pathComplete }

func (m *CompleteMsg) Validate() error {
	return m.ref().validate()
}

func (m *CompleteMsg) ref() escrowRef {
	return escrowRef(*m)
}

// PullbackMsg returns the escrowed funds to a wallet of the sender.
type PullbackMsg struct {
	EscrowID     uint64         `json:"escrow_id"`
	StateBump    uint8          `json:"state_bump"`
	WalletBump   uint8          `json:"wallet_bump"`
	Sender       solpay.Address `json:"sender"`
	Recipient    solpay.Address `json:"recipient"`
	Mint         solpay.Address `json:"mint"`
	EscrowState  solpay.Address `json:"escrow_state"`
	EscrowWallet solpay.Address `json:"escrow_wallet"`
	RefundWallet solpay.Address `json:"refund_wallet"`
}

var _ solpay.Msg = (*PullbackMsg)(nil)

func (PullbackMsg) Path() string { return pathPullback }

func (m *PullbackMsg) Validate() error {
	if err := m.ref().validate(); err != nil {
		return err
	}
	if err := m.RefundWallet.Validate(); err != nil {
		return errors.Wrap(err, "refund wallet")
	}
	return nil
}

func (m *PullbackMsg) ref() escrowRef {
	return escrowRef{
		EscrowID:     m.EscrowID,
		StateBump:    m.StateBump,
		WalletBump:   m.WalletBump,
		Sender:       m.Sender,
		Recipient:    m.Recipient,
		Mint:         m.Mint,
		EscrowState:  m.EscrowState,
		EscrowWallet: m.EscrowWallet,
	}
}
