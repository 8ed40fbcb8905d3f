package token

import (
	"github.com/solpay/solpay"
)

var (
	// ProgramID identifies the token program. It is part of the
	// associated account derivation.
	ProgramID = solpay.MustParseAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

	// AssociatedProgramID owns the associated account addresses.
	AssociatedProgramID = solpay.MustParseAddress("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
)

// AssociatedAddress returns the conventional account address of owner for
// given mint.
func AssociatedAddress(owner, mint solpay.Address) (solpay.Address, error) {
	addr, _, err := solpay.FindProgramAddress([][]byte{owner, ProgramID, mint}, AssociatedProgramID)
	return addr, err
}
