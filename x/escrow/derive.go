package escrow

import (
	"encoding/binary"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
)

const (
	stateTag   = "escrow_state"
	custodyTag = "escrow_wallet"
)

func seeds(tag string, sender, recipient, mint solpay.Address, id uint64) [][]byte {
	var rawID [8]byte
	binary.LittleEndian.PutUint64(rawID[:], id)
	return [][]byte{[]byte(tag), sender, recipient, mint, rawID[:]}
}

// StateAddress returns the address the escrow record is stored at.
func StateAddress(program, sender, recipient, mint solpay.Address, id uint64, bump uint8) (solpay.Address, error) {
	s := append(seeds(stateTag, sender, recipient, mint, id), []byte{bump})
	return solpay.CreateProgramAddress(s, program)
}

// CustodyAddress returns the address of the token account holding the
// escrowed funds.
func CustodyAddress(program, sender, recipient, mint solpay.Address, id uint64, bump uint8) (solpay.Address, error) {
	s := append(seeds(custodyTag, sender, recipient, mint, id), []byte{bump})
	return solpay.CreateProgramAddress(s, program)
}

// Addresses groups both derived addresses of an escrow together with the
// bump seeds that produce them.
type Addresses struct {
	State       solpay.Address `json:"state"`
	StateBump   uint8          `json:"state_bump"`
	Custody     solpay.Address `json:"custody"`
	CustodyBump uint8          `json:"custody_bump"`
}

// FindAddresses computes the addresses a client must send with the escrow
// messages.
func FindAddresses(program, sender, recipient, mint solpay.Address, id uint64) (Addresses, error) {
	var a Addresses
	var err error
	a.State, a.StateBump, err = solpay.FindProgramAddress(seeds(stateTag, sender, recipient, mint, id), program)
	if err != nil {
		return Addresses{}, errors.Wrap(err, "state address")
	}
	a.Custody, a.CustodyBump, err = solpay.FindProgramAddress(seeds(custodyTag, sender, recipient, mint, id), program)
	if err != nil {
		return Addresses{}, errors.Wrap(err, "custody address")
	}
	return a, nil
}

// checkAddresses requires that both supplied addresses are reproduced by
// their bump seeds.
func checkAddresses(program solpay.Address, ref escrowRef) error {
	state, err := StateAddress(program, ref.Sender, ref.Recipient, ref.Mint, ref.EscrowID, ref.StateBump)
	if err != nil {
		return errors.Wrapf(ErrInvalidStateIdx, "state address: %s", err)
	}
	if !state.Equals(ref.EscrowState) {
		return errors.Wrap(ErrInvalidStateIdx, "state address mismatch")
	}
	custody, err := CustodyAddress(program, ref.Sender, ref.Recipient, ref.Mint, ref.EscrowID, ref.WalletBump)
	if err != nil {
		return errors.Wrapf(ErrInvalidStateIdx, "custody address: %s", err)
	}
	if !custody.Equals(ref.EscrowWallet) {
		return errors.Wrap(ErrInvalidStateIdx, "custody address mismatch")
	}
	return nil
}

// signState returns the capability to act as the state address of given
// record.
func signState(program solpay.Address, rec *Record, bump uint8) (solpay.SigningCapability, error) {
	s := seeds(stateTag, rec.Sender, rec.Recipient, rec.Mint, rec.ID)
	c, err := solpay.DeriveAndSign(program, s, bump)
	if err != nil {
		return solpay.SigningCapability{}, errors.Wrapf(ErrInvalidStateIdx, "state signer: %s", err)
	}
	return c, nil
}
