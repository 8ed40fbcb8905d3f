package weavetest

import (
	"crypto/rand"
	"testing"

	"github.com/solpay/solpay"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation.
func ParseAddress(t testing.TB, encodedAddress string) solpay.Address {
	t.Helper()

	addr, err := solpay.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// RandomAddr returns 32 random bytes. The result is not guaranteed to be
// on or off the ed25519 curve.
func RandomAddr(t testing.TB) solpay.Address {
	t.Helper()

	a := make(solpay.Address, solpay.AddressLength)
	if _, err := rand.Read(a); err != nil {
		t.Fatalf("cannot read random data: %s", err)
	}
	return a
}
