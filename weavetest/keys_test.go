package weavetest

import (
	"testing"

	"github.com/solpay/solpay"
)

func TestKeyFromPhrase(t *testing.T) {
	a := KeyFromPhrase(t, "alice")
	again := KeyFromPhrase(t, "alice")
	b := KeyFromPhrase(t, "bob")

	if !PubAddress(a).Equals(PubAddress(again)) {
		t.Fatal("derivation is not deterministic")
	}
	if PubAddress(a).Equals(PubAddress(b)) {
		t.Fatal("different phrases derive the same key")
	}
	if err := PubAddress(a).Validate(); err != nil {
		t.Fatalf("invalid address: %s", err)
	}
	if !solpay.IsOnCurve(PubAddress(b)) {
		t.Fatal("public key must be on the curve")
	}
}
