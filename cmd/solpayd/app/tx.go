package app

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/x/escrow"
	"github.com/solpay/solpay/x/sigs"
	"github.com/solpay/solpay/x/token"
	amino "github.com/tendermint/go-amino"
)

// TxCodec is the codec of all transactions this application accepts.
var TxCodec = amino.NewCodec()

func init() {
	TxCodec.RegisterInterface((*solpay.Msg)(nil), nil)
	token.RegisterCodec(TxCodec)
	escrow.RegisterCodec(TxCodec)
}

// Tx is a single message together with the signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature `json:"signatures"`
	Msg        solpay.Msg           `json:"msg"`
}

// make sure tx fulfills all interfaces
var _ solpay.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (solpay.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// Marshal serializes the transaction with the amino codec.
func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := TxCodec.MarshalBinaryLengthPrefixed(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Unmarshal loads an amino serialized transaction.
func (tx *Tx) Unmarshal(bz []byte) error {
	if err := TxCodec.UnmarshalBinaryLengthPrefixed(bz, tx); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (solpay.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "missing message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// the sign bytes should only come from the data itself, not
	// previous signatures
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}
