package sigs

import (
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/orm"
	amino "github.com/tendermint/go-amino"
)

// BucketName is where we store the nonces
const BucketName = "sigs"

var cdc = amino.NewCodec()

// UserData keeps the replay protection nonce of a single key.
type UserData struct {
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

// Marshal implements solpay.Persistent.
func (u *UserData) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryLengthPrefixed(u)
}

// Unmarshal implements solpay.Persistent.
func (u *UserData) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryLengthPrefixed(raw, u)
}

// Validate returns an error for a negative sequence.
func (u *UserData) Validate() error {
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
// Before incrementing the sequence, this function is testing for a value
// overflow.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}

	next := u.Sequence + 1

	// Clients cannot represent integers above 2^53 - 1.
	const maxSequenceValue = (1 << 53) - 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// NewBucket returns the bucket holding nonces, keyed by public key.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}
