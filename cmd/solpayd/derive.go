package main

import (
	"encoding/json"
	"flag"
	"io"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/x/escrow"
	"github.com/solpay/solpay/x/token"
)

type derived struct {
	escrow.Addresses
	// SenderWallet funds the escrow and receives a refund on pullback.
	SenderWallet solpay.Address `json:"sender_wallet"`
	// RecipientWallet receives the funds on completion.
	RecipientWallet solpay.Address `json:"recipient_wallet"`
}

// deriveCmd prints all addresses a client needs to send the escrow
// messages.
func deriveCmd(out io.Writer, args []string) error {
	var (
		program, sender, recipient, mint string
		id                               uint64
	)
	fl := flag.NewFlagSet("derive", flag.ContinueOnError)
	fl.StringVar(&program, "program", escrow.DefaultProgramID.String(), "escrow program id")
	fl.StringVar(&sender, "sender", "", "address of the sender")
	fl.StringVar(&recipient, "recipient", "", "address of the recipient")
	fl.StringVar(&mint, "mint", "", "address of the escrowed asset")
	fl.Uint64Var(&id, "id", 0, "escrow id chosen by the sender")
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	addrs := make(map[string]solpay.Address, 4)
	for name, raw := range map[string]string{
		"program":   program,
		"sender":    sender,
		"recipient": recipient,
		"mint":      mint,
	} {
		a, err := solpay.ParseAddress(raw)
		if err != nil {
			return errors.Wrapf(err, "-%s", name)
		}
		addrs[name] = a
	}

	res := derived{}
	var err error
	res.Addresses, err = escrow.FindAddresses(addrs["program"], addrs["sender"], addrs["recipient"], addrs["mint"], id)
	if err != nil {
		return err
	}
	if res.SenderWallet, err = token.AssociatedAddress(addrs["sender"], addrs["mint"]); err != nil {
		return errors.Wrap(err, "sender wallet")
	}
	if res.RecipientWallet, err = token.AssociatedAddress(addrs["recipient"], addrs["mint"]); err != nil {
		return errors.Wrap(err, "recipient wallet")
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
