package solpay

import (
	"crypto/sha256"

	"github.com/agl/ed25519/edwards25519"
	"github.com/solpay/solpay/errors"
)

const (
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32
	// MaxSeeds is the maximum number of seeds, discriminator included.
	MaxSeeds = 16
)

var programDerivedMarker = []byte("ProgramDerivedAddress")

// CreateProgramAddress derives the address owned by program for given seeds.
// The last seed is usually the discriminator (bump) found with
// FindProgramAddress.
//
// Derivation fails if the digest is a valid ed25519 point, because such an
// address could have a private key.
func CreateProgramAddress(seeds [][]byte, program Address) (Address, error) {
	addr, onCurve, err := createProgramAddress(seeds, program)
	if err != nil {
		return nil, err
	}
	if onCurve {
		return nil, errors.Wrap(errors.ErrInput, "derived address is on the ed25519 curve")
	}
	return addr, nil
}

func createProgramAddress(seeds [][]byte, program Address) (Address, bool, error) {
	if len(seeds) > MaxSeeds {
		return nil, false, errors.Wrapf(errors.ErrInput, "%d seeds, max %d", len(seeds), MaxSeeds)
	}
	if err := program.Validate(); err != nil {
		return nil, false, errors.Wrap(err, "program")
	}

	h := sha256.New()
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return nil, false, errors.Wrapf(errors.ErrInput, "seed %d is %d bytes, max %d", i, len(s), MaxSeedLength)
		}
		h.Write(s)
	}
	h.Write(program)
	h.Write(programDerivedMarker)
	digest := h.Sum(nil)
	return Address(digest), IsOnCurve(digest), nil
}

// FindProgramAddress searches for the first discriminator, starting at 255
// and counting down, that produces an address off the ed25519 curve. It
// returns the address and the discriminator.
//
// The search is meant to happen off-chain. Programs receive the
// discriminator as input and verify it with CreateProgramAddress.
func FindProgramAddress(seeds [][]byte, program Address) (Address, uint8, error) {
	if len(seeds)+1 > MaxSeeds {
		return nil, 0, errors.Wrapf(errors.ErrInput, "%d seeds, max %d", len(seeds), MaxSeeds-1)
	}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for i := 255; i >= 0; i-- {
		bump := uint8(i)
		withBump[len(seeds)] = []byte{bump}
		addr, onCurve, err := createProgramAddress(withBump, program)
		if err != nil {
			return nil, 0, err
		}
		if !onCurve {
			return addr, bump, nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrState, "no viable discriminator")
}

// IsOnCurve returns true if given bytes decode into a valid ed25519 point.
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	var enc [32]byte
	copy(enc[:], b)
	var p edwards25519.ExtendedGroupElement
	return p.FromBytes(&enc)
}

// SigningCapability allows a program to act as the signer of one of its
// derived addresses. It can only be produced by re-deriving the address from
// its seeds, so holding one proves the derivation.
type SigningCapability struct {
	program Address
	addr    Address
}

// DeriveAndSign re-derives the address for program from seeds and bump and
// returns the capability to sign for it.
func DeriveAndSign(program Address, seeds [][]byte, bump uint8) (SigningCapability, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	withBump[len(seeds)] = []byte{bump}
	addr, err := CreateProgramAddress(withBump, program)
	if err != nil {
		return SigningCapability{}, err
	}
	return SigningCapability{program: program.Clone(), addr: addr}, nil
}

// Address returns the derived address this capability signs for.
func (c SigningCapability) Address() Address {
	return c.addr
}

// Program returns the id of the program that owns the derived address.
func (c SigningCapability) Program() Address {
	return c.program
}

// Sign returns a context in which the derived address is an authorized
// signer. The authorization is visible to everything called with the
// returned context and nothing else.
func (c SigningCapability) Sign(ctx Context) Context {
	if len(c.addr) == 0 {
		return ctx
	}
	return withProgramSigner(ctx, c.addr)
}
