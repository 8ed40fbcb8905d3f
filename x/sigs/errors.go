package sigs

import "github.com/solpay/solpay/errors"

var (
	// ErrInvalidSequence is returned when a signature sequence does not
	// match the signer nonce.
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)
