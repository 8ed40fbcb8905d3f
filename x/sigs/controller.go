package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"golang.org/x/crypto/ed25519"
)

// signDomain separates transaction signatures from any other message signed
// with the same key.
var signDomain = []byte("solpay/tx/v1")

// VerifyTxSignatures verifies every signature of tx and consumes the
// sequence of each signer. It returns the signers in signature order.
func VerifyTxSignatures(store solpay.KVStore, tx SignedTx, chainID string) ([]solpay.Address, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]solpay.Address, len(sigs))
	for i, sig := range sigs {
		if signers[i], err = VerifySignature(store, sig, raw, chainID); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
	}
	return signers, nil
}

// VerifySignature verifies sig over the raw transaction bytes and
// increments the signer's sequence. A signature is valid only for the
// signer's current sequence on chainID.
func VerifySignature(db solpay.KVStore, sig *StdSignature, raw []byte, chainID string) (solpay.Address, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(raw, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !ed25519.Verify(ed25519.PublicKey(sig.Pubkey), digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	user, err := loadUser(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := NewBucket().Put(db, sig.Pubkey, &user); err != nil {
		return nil, errors.Wrap(err, "save sequence")
	}
	return sig.Pubkey, nil
}

// BuildSignBytes returns the sha512 digest a signer signs:
//
//	domain | len(chainID) as uint8 | chainID | seq as uint64 big endian | raw
func BuildSignBytes(raw []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !solpay.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	h := sha512.New()
	h.Write(signDomain)
	h.Write([]byte{uint8(len(chainID))})
	h.Write([]byte(chainID))
	var seqBytes [8]byte
	binary.BigEndian.PutUint64(seqBytes[:], uint64(seq))
	h.Write(seqBytes[:])
	h.Write(raw)
	return h.Sum(nil), nil
}

// SignTx signs tx with key for the given chain and sequence.
func SignTx(key ed25519.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(raw, chainID, seq)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    solpay.Address(key.Public().(ed25519.PublicKey)),
		Signature: ed25519.Sign(key, digest),
		Sequence:  seq,
	}, nil
}

// NextSequence returns the sequence the next signature of pubkey must use.
func NextSequence(db solpay.ReadOnlyKVStore, pubkey solpay.Address) (int64, error) {
	user, err := loadUser(db, pubkey)
	return user.Sequence, err
}

// loadUser returns the stored data of pubkey, or zero data for a key that
// never signed.
func loadUser(db solpay.ReadOnlyKVStore, pubkey solpay.Address) (UserData, error) {
	var user UserData
	switch err := NewBucket().One(db, pubkey, &user); {
	case errors.ErrNotFound.Is(err):
		return UserData{}, nil
	case err != nil:
		return UserData{}, err
	}
	return user, nil
}
