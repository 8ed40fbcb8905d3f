package app

import (
	"crypto/rand"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

// DerivationPath is the SLIP-0010 path wallets use for the first account.
const DerivationPath = "m/44'/501'/0'/0'"

// DeriveKey returns the ed25519 key at path for given wallet seed.
func DeriveKey(seed []byte, path string) (ed25519.PrivateKey, error) {
	if len(seed) < 16 {
		return nil, errors.Wrap(errors.ErrInput, "seed must be at least 16 bytes")
	}
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return ed25519.NewKeyFromSeed(k.Key), nil
}

// GenerateKey creates a key from a fresh random seed. The seed is
// returned, as it is the only way to recover the key.
func GenerateKey() (ed25519.PrivateKey, []byte, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	key, err := DeriveKey(seed, DerivationPath)
	if err != nil {
		return nil, nil, err
	}
	return key, seed, nil
}

// KeyAddress returns the address of the public part of given key.
func KeyAddress(key ed25519.PrivateKey) solpay.Address {
	return solpay.Address(key.Public().(ed25519.PublicKey))
}
