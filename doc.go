/*
Package solpay defines the common interfaces that tie the ledger together
(handlers, decorators, transactions, stores and context helpers), along with
the two primitives every program builds on: 32 byte addresses and program
derived addresses.

A program derived address is computed from a list of seeds and the id of
the program that owns it. The derivation only accepts digests that are not
valid ed25519 points, so no private key can exist for such an address and
only the owning program, re-deriving the address at execution time, can act
as its signer (see DeriveAndSign).

We pass context through context.Context between app, middleware and
handlers. For every value XYZ of type T kept in the context there are two
functions:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set, to avoid lower-level
modules overwriting the value (eg. chain id).
*/
package solpay
