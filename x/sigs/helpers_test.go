package sigs

import (
	"github.com/solpay/solpay"
)

// StdTx implements SignedTx for the tests.
type StdTx struct {
	Raw        []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ solpay.Tx = (*StdTx)(nil)

func NewStdTx(raw []byte) *StdTx {
	return &StdTx{Raw: raw}
}

func (tx StdTx) GetMsg() (solpay.Msg, error) {
	return nil, nil
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	return tx.Raw, nil
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []solpay.Address
}

var _ solpay.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &solpay.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &solpay.DeliverResult{}, nil
}
