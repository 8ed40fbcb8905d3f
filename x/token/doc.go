/*
Package token implements fungible assets.

A mint defines an asset and the authority allowed to issue it. Balances are
held in token accounts, each bound to one mint and spendable only by its
owner. The owner can be a key or a program derived address, in which case
the owning program authorizes spending with a signing capability.

Creating an account deposits a configurable rent, paid in lamports by the
payer. Closing an empty account returns the rent to a chosen destination.
*/
package token
