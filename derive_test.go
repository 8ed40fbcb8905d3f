package solpay

import (
	"encoding/binary"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/crypto/ed25519"
)

func TestProgramAddressDerivation(t *testing.T) {
	Convey("Given a program and escrow seeds", t, func() {
		program := MustParseAddress("6qZM5m4H6ZspdKraMmJKCLNbFmw6hdWt6z3h71gScQmq")
		sender, _, _ := ed25519.GenerateKey(nil)
		recipient, _, _ := ed25519.GenerateKey(nil)
		id := func(n uint64) []byte {
			b := make([]byte, 8)
			binary.LittleEndian.PutUint64(b, n)
			return b
		}
		seeds := func(n uint64) [][]byte {
			return [][]byte{[]byte("escrow_state"), sender, recipient, id(n)}
		}

		Convey("Search is deterministic", func() {
			a1, b1, err := FindProgramAddress(seeds(1), program)
			So(err, ShouldBeNil)
			a2, b2, err := FindProgramAddress(seeds(1), program)
			So(err, ShouldBeNil)
			So(a1, ShouldResemble, a2)
			So(b1, ShouldEqual, b2)
			So(len(a1), ShouldEqual, AddressLength)

			Convey("and the result is off the curve", func() {
				So(IsOnCurve(a1), ShouldBeFalse)
			})

			Convey("and can be re-created from its discriminator", func() {
				again, err := CreateProgramAddress(append(seeds(1), []byte{b1}), program)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, a1)
			})

			Convey("and a wrong discriminator gives another address or fails", func() {
				other, err := CreateProgramAddress(append(seeds(1), []byte{b1 - 1}), program)
				if err == nil {
					So(other, ShouldNotResemble, a1)
				}
			})
		})

		Convey("Different ids do not collide", func() {
			seen := make(map[string]uint64)
			for n := uint64(0); n < 64; n++ {
				addr, _, err := FindProgramAddress(seeds(n), program)
				So(err, ShouldBeNil)
				_, dup := seen[string(addr)]
				So(dup, ShouldBeFalse)
				seen[string(addr)] = n
			}
		})

		Convey("A different program derives a different address", func() {
			a1, _, err := FindProgramAddress(seeds(1), program)
			So(err, ShouldBeNil)
			otherProgram := make([]byte, AddressLength)
			a2, _, err := FindProgramAddress(seeds(1), otherProgram)
			So(err, ShouldBeNil)
			So(a1, ShouldNotResemble, a2)
		})

		Convey("Invalid input is rejected", func() {
			_, err := CreateProgramAddress([][]byte{make([]byte, MaxSeedLength+1)}, program)
			So(err, ShouldNotBeNil)

			tooMany := make([][]byte, MaxSeeds)
			_, _, err = FindProgramAddress(tooMany, program)
			So(err, ShouldNotBeNil)

			_, _, err = FindProgramAddress(seeds(1), Address("short"))
			So(err, ShouldNotBeNil)
		})

		Convey("Public keys are on the curve", func() {
			So(IsOnCurve(sender), ShouldBeTrue)
			So(IsOnCurve([]byte("short")), ShouldBeFalse)
		})

		Convey("A signing capability requires a matching discriminator", func() {
			addr, bump, err := FindProgramAddress(seeds(7), program)
			So(err, ShouldBeNil)
			capability, err := DeriveAndSign(program, seeds(7), bump)
			So(err, ShouldBeNil)
			So(capability.Address(), ShouldResemble, addr)
			So(capability.Program(), ShouldResemble, program)
		})
	})
}
