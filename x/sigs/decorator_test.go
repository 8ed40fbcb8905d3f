package sigs

import (
	"context"
	"testing"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/store"
	"github.com/solpay/solpay/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"
)

func TestDecorator(t *testing.T) {
	const chainID = "sigs-chain"
	ctx := solpay.WithChainID(context.Background(), chainID)
	payer := weavetest.NewKey()
	payerAddr := weavetest.PubAddress(payer)

	signed := func(seq int64) *StdTx {
		tx := NewStdTx([]byte("open escrow"))
		sig, err := SignTx(payer, tx, chainID, seq)
		require.NoError(t, err)
		tx.Signatures = []*StdSignature{sig}
		return tx
	}

	// steps run in order on one store, so sequences carry over
	steps := []struct {
		name        string
		dec         Decorator
		tx          *StdTx
		wantErr     *errors.Error
		wantSigners []solpay.Address
	}{
		{"unsigned is rejected", NewDecorator(), NewStdTx([]byte("open escrow")), errors.ErrUnauthorized, nil},
		{"first signature", NewDecorator(), signed(0), nil, []solpay.Address{payerAddr}},
		{"replay is rejected", NewDecorator(), signed(0), ErrInvalidSequence, nil},
		{"skipped sequence is rejected", NewDecorator(), signed(2), ErrInvalidSequence, nil},
		{"unsigned allowed", NewDecorator().AllowMissingSigs(), NewStdTx([]byte("query")), nil, []solpay.Address{}},
		{"next signature", NewDecorator().AllowMissingSigs(), signed(1), nil, []solpay.Address{payerAddr}},
	}

	modes := map[string]func(solpay.Decorator, solpay.KVStore, solpay.Tx, *SigCheckHandler) error{
		"check": func(d solpay.Decorator, db solpay.KVStore, tx solpay.Tx, h *SigCheckHandler) error {
			_, err := d.Check(ctx, db, tx, h)
			return err
		},
		"deliver": func(d solpay.Decorator, db solpay.KVStore, tx solpay.Tx, h *SigCheckHandler) error {
			_, err := d.Deliver(ctx, db, tx, h)
			return err
		},
	}
	for mode, run := range modes {
		t.Run(mode, func(t *testing.T) {
			db := store.MemStore()
			for _, s := range steps {
				h := new(SigCheckHandler)
				err := run(s.dec, db, s.tx, h)
				if s.wantErr != nil {
					require.True(t, s.wantErr.Is(err), "%s: %+v", s.name, err)
					assert.Nil(t, h.Signers, s.name)
					continue
				}
				require.NoError(t, err, s.name)
				assert.Equal(t, s.wantSigners, h.Signers, s.name)
			}
		})
	}
}

func TestDecoratorChargesGas(t *testing.T) {
	const chainID = "gas-chain"
	ctx := solpay.WithChainID(context.Background(), chainID)

	tx := NewStdTx([]byte("complete escrow"))
	for i, key := range []ed25519.PrivateKey{weavetest.NewKey(), weavetest.NewKey()} {
		sig, err := SignTx(key, tx, chainID, 0)
		require.NoError(t, err, "signer %d", i)
		tx.Signatures = append(tx.Signatures, sig)
	}

	res, err := NewDecorator().Check(ctx, store.MemStore(), tx, new(SigCheckHandler))
	require.NoError(t, err)
	assert.Equal(t, int64(2*signatureVerifyCost), res.GasPayment)
}
