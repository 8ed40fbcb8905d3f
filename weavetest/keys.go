package weavetest

import (
	"crypto/sha256"
	"testing"

	"github.com/solpay/solpay"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

// DerivationPath is the path wallets use for ed25519 ledger keys.
const DerivationPath = "m/44'/501'/0'/0'"

// NewKey returns a random ed25519 private key.
func NewKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return priv
}

// KeyFromPhrase deterministically derives a private key from given phrase
// using the wallet derivation path. Use it to get stable test fixtures.
func KeyFromPhrase(t testing.TB, phrase string) ed25519.PrivateKey {
	t.Helper()

	seed := sha256.Sum256([]byte(phrase))
	k, err := derivation.DeriveForPath(DerivationPath, seed[:])
	if err != nil {
		t.Fatalf("cannot derive key for %q: %s", phrase, err)
	}
	return ed25519.NewKeyFromSeed(k.Key)
}

// PubAddress returns the address of given private key.
func PubAddress(priv ed25519.PrivateKey) solpay.Address {
	return solpay.Address(priv.Public().(ed25519.PublicKey))
}

// NewAddress returns the address of a fresh random key.
func NewAddress() solpay.Address {
	return PubAddress(NewKey())
}
