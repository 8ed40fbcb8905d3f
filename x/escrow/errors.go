package escrow

import (
	"github.com/solpay/solpay/errors"
)

var (
	// ErrWalletInvalid is returned when a funding or refund wallet is not
	// owned by the sender or holds another asset.
	ErrWalletInvalid = errors.Register(6000, "wallet to withdraw from is not owned by owner")

	// ErrInvalidStateIdx is returned when supplied addresses, their bump
	// seeds or the stored record do not match each other.
	ErrInvalidStateIdx = errors.Register(6001, "state index is inconsistent")

	// ErrDelegate is returned when the custody account is not controlled
	// by the state address.
	ErrDelegate = errors.Register(6002, "delegate is not set correctly")

	// ErrStage is returned when an escrow is not in a stage that allows
	// the requested operation.
	ErrStage = errors.Register(6003, "stage is invalid")
)
