/*
Package escrow implements a two party escrow.

A sender locks an amount of a token in a custody account. The recipient can
complete the escrow and receive the funds, or the sender can pull them back
while the escrow is still funded.

Every escrow is identified by its sender, recipient, mint and a numeric id.
Two addresses are derived from those values and the escrow program id: the
state address where the escrow record is stored, and the custody address
holding the funds. The state address owns the custody account. No private
key exists for either of them, so the funds can only leave the custody
account through this package, which signs for the state address with
solpay.DeriveAndSign.

Stages:

	(none) --open--> Deposited --complete--> Completed
	                      \
	                       `-----pullback--> PulledBack

Completed and PulledBack are terminal. The record is kept after reaching a
terminal stage and every further request for it fails with ErrStage.
*/
package escrow
