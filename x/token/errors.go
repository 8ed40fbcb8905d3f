package token

import "github.com/solpay/solpay/errors"

var (
	// ErrMintMismatch is returned when two accounts taking part in an
	// operation hold different assets.
	ErrMintMismatch = errors.Register(5000, "mint mismatch")
)
