package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"io"

	"github.com/solpay/solpay"
	solpayd "github.com/solpay/solpay/cmd/solpayd/app"
	"github.com/solpay/solpay/errors"
)

type keyOutput struct {
	Address solpay.Address `json:"address"`
	Path    string         `json:"path"`
	Seed    string         `json:"seed"`
}

// keysCmd derives a key from a hex encoded wallet seed, or from a
// fresh random seed if none is given, and prints its address.
func keysCmd(out io.Writer, args []string) error {
	var seedHex, path string
	fl := flag.NewFlagSet("keys", flag.ContinueOnError)
	fl.StringVar(&seedHex, "seed", "", "hex encoded wallet seed, random if empty")
	fl.StringVar(&path, "path", solpayd.DerivationPath, "derivation path")
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var seed []byte
	if seedHex == "" {
		_, fresh, err := solpayd.GenerateKey()
		if err != nil {
			return err
		}
		seed = fresh
	} else {
		raw, err := hex.DecodeString(seedHex)
		if err != nil {
			return errors.Wrap(errors.ErrInput, "seed is not hex")
		}
		seed = raw
	}

	key, err := solpayd.DeriveKey(seed, path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(keyOutput{
		Address: solpayd.KeyAddress(key),
		Path:    path,
		Seed:    hex.EncodeToString(seed),
	})
}
