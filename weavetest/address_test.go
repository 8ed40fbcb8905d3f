package weavetest

import (
	"bytes"
	"testing"

	"github.com/solpay/solpay"
)

func TestParseAddress(t *testing.T) {
	addr := ParseAddress(t, "11111111111111111111111111111111")
	if !bytes.Equal(addr, make([]byte, solpay.AddressLength)) {
		t.Fatalf("unexpected address: %x", []byte(addr))
	}

	random := RandomAddr(t)
	if err := random.Validate(); err != nil {
		t.Fatalf("invalid random address: %s", err)
	}
	if got := ParseAddress(t, random.String()); !got.Equals(random) {
		t.Fatalf("want %s, got %s", random, got)
	}
}
