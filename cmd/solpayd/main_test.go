package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/weavetest"
	"github.com/solpay/solpay/weavetest/assert"
	"github.com/solpay/solpay/x/escrow"
	"github.com/solpay/solpay/x/token"
)

func TestDeriveCmd(t *testing.T) {
	sender, recipient, mint := weavetest.NewAddress(), weavetest.NewAddress(), weavetest.NewAddress()

	var out bytes.Buffer
	err := deriveCmd(&out, []string{
		"-sender", sender.String(),
		"-recipient", recipient.String(),
		"-mint", mint.String(),
		"-id", "42",
	})
	assert.Nil(t, err)

	var got derived
	assert.Nil(t, json.Unmarshal(out.Bytes(), &got))

	want, err := escrow.FindAddresses(escrow.DefaultProgramID, sender, recipient, mint, 42)
	assert.Nil(t, err)
	assert.Equal(t, want, got.Addresses)

	wallet, err := token.AssociatedAddress(recipient, mint)
	assert.Nil(t, err)
	assert.Equal(t, wallet, got.RecipientWallet)
}

func TestDeriveCmdInvalidInput(t *testing.T) {
	var out bytes.Buffer
	err := deriveCmd(&out, []string{"-sender", "not-an-address"})
	assert.IsErr(t, errors.ErrInput, err)

	err = deriveCmd(&out, []string{"-unknown"})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestKeysCmd(t *testing.T) {
	seed := "000102030405060708090a0b0c0d0e0f"

	var first, second bytes.Buffer
	assert.Nil(t, keysCmd(&first, []string{"-seed", seed}))
	assert.Nil(t, keysCmd(&second, []string{"-seed", seed}))
	// the same seed always derives the same key
	assert.Equal(t, first.String(), second.String())

	var k keyOutput
	assert.Nil(t, json.Unmarshal(first.Bytes(), &k))
	assert.Equal(t, seed, k.Seed)
	assert.Equal(t, "m/44'/501'/0'/0'", k.Path)
	assert.Nil(t, k.Address.Validate())

	var other bytes.Buffer
	assert.Nil(t, keysCmd(&other, []string{"-seed", seed, "-path", "m/44'/501'/1'/0'"}))
	var o keyOutput
	assert.Nil(t, json.Unmarshal(other.Bytes(), &o))
	if o.Address.Equals(k.Address) {
		t.Fatal("different paths must derive different keys")
	}

	var random bytes.Buffer
	assert.Nil(t, keysCmd(&random, nil))

	assert.IsErr(t, errors.ErrInput, keysCmd(&random, []string{"-seed", "zz"}))
	assert.IsErr(t, errors.ErrInput, keysCmd(&random, []string{"-seed", "0001"}))
}
