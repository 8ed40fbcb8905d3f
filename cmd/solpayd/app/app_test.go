package app

import (
	"encoding/json"
	"testing"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/app"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/weavetest"
	"github.com/solpay/solpay/x/escrow"
	"github.com/solpay/solpay/x/sigs"
	"github.com/solpay/solpay/x/token"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"golang.org/x/crypto/ed25519"
)

const chainID = "solpay-test-1"

type testChain struct {
	t      *testing.T
	app    app.BaseApp
	height int64
	seq    map[string]int64
}

func newTestChain(t *testing.T, genesis []byte) *testChain {
	t.Helper()

	myApp, err := Application("solpay", Stack(nil), TxDecoder, "", false)
	require.NoError(t, err)
	myApp.WithInit(Initializers())
	myApp.InitChain(abci.RequestInitChain{
		ChainId:       chainID,
		AppStateBytes: genesis,
	})
	// queries read committed state only
	myApp.Commit()
	return &testChain{t: t, app: myApp, seq: make(map[string]int64)}
}

// deliver puts a transaction signed by signer into its own block.
func (c *testChain) deliver(signer ed25519.PrivateKey, msg solpay.Msg) abci.ResponseDeliverTx {
	c.t.Helper()

	tx := &Tx{Msg: msg}
	pub := KeyAddress(signer).String()
	sig, err := sigs.SignTx(signer, tx, chainID, c.seq[pub])
	require.NoError(c.t, err)
	tx.Signatures = append(tx.Signatures, sig)
	bz, err := tx.Marshal()
	require.NoError(c.t, err)

	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: chainID, Height: c.height},
	})
	check := c.app.CheckTx(bz)
	res := c.app.DeliverTx(bz)
	require.Equal(c.t, check.Code, res.Code, "check and deliver disagree: %s", res.Log)
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()

	// a valid signature consumes the sequence even if the message fails
	c.seq[pub]++
	return res
}

func (c *testChain) query(path string, key []byte, obj solpay.Persistent) {
	c.t.Helper()

	res := c.app.Query(abci.RequestQuery{Path: path, Data: key})
	require.Equal(c.t, uint32(0), res.Code, res.Log)
	var values app.ResultSet
	require.NoError(c.t, values.Unmarshal(res.Value))
	require.Len(c.t, values.Results, 1, "%s %s", path, key)
	require.NoError(c.t, obj.Unmarshal(values.Results[0]))
}

func devGenesis(t *testing.T, owner, mint, recipient solpay.Address) []byte {
	t.Helper()

	raw, err := GenInitOptions([]string{owner.String(), mint.String()})
	require.NoError(t, err)

	// the recipient pays the rent of its wallet
	var state genesisState
	require.NoError(t, json.Unmarshal(raw, &state))
	state.Token.Lamports = append(state.Token.Lamports, genesisLamports{
		Address: recipient,
		Amount:  devAccountRent,
	})
	raw, err = json.Marshal(state)
	require.NoError(t, err)
	return raw
}

func TestEscrowLifecycle(t *testing.T) {
	senderKey := weavetest.KeyFromPhrase(t, "sender")
	recipientKey := weavetest.KeyFromPhrase(t, "recipient")
	sender, recipient := KeyAddress(senderKey), KeyAddress(recipientKey)
	mint := weavetest.NewAddress()

	chain := newTestChain(t, devGenesis(t, sender, mint, recipient))

	senderWallet, err := token.AssociatedAddress(sender, mint)
	require.NoError(t, err)
	recipientWallet, err := token.AssociatedAddress(recipient, mint)
	require.NoError(t, err)

	var acc token.Account
	chain.query("/tokens", senderWallet, &acc)
	require.Equal(t, uint64(devSupply), acc.Amount)

	const id = 7
	addrs, err := escrow.FindAddresses(escrow.DefaultProgramID, sender, recipient, mint, id)
	require.NoError(t, err)

	open := &escrow.OpenMsg{
		EscrowID:      id,
		StateBump:     addrs.StateBump,
		WalletBump:    addrs.CustodyBump,
		Amount:        5000,
		Sender:        sender,
		Recipient:     recipient,
		Mint:          mint,
		EscrowState:   addrs.State,
		EscrowWallet:  addrs.Custody,
		FundingWallet: senderWallet,
	}

	// only the sender may open the escrow
	res := chain.deliver(recipientKey, open)
	require.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code, res.Log)

	res = chain.deliver(senderKey, open)
	require.Equal(t, uint32(0), res.Code, res.Log)
	require.Equal(t, []byte(addrs.State), res.Data)

	var rec escrow.Record
	chain.query("/escrows", addrs.State, &rec)
	require.Equal(t, escrow.StageDeposited, rec.Stage)
	require.Equal(t, uint64(5000), rec.Amount)

	chain.query("/tokens", addrs.Custody, &acc)
	require.Equal(t, uint64(5000), acc.Amount)
	require.Equal(t, addrs.State, acc.Owner)

	complete := &escrow.CompleteMsg{
		EscrowID:     id,
		StateBump:    addrs.StateBump,
		WalletBump:   addrs.CustodyBump,
		Sender:       sender,
		Recipient:    recipient,
		Mint:         mint,
		EscrowState:  addrs.State,
		EscrowWallet: addrs.Custody,
	}

	// the sender cannot release the funds
	res = chain.deliver(senderKey, complete)
	require.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code, res.Log)

	res = chain.deliver(recipientKey, complete)
	require.Equal(t, uint32(0), res.Code, res.Log)
	require.Equal(t, []byte(recipientWallet), res.Data)

	chain.query("/escrows", addrs.State, &rec)
	require.Equal(t, escrow.StageCompleted, rec.Stage)

	chain.query("/tokens", recipientWallet, &acc)
	require.Equal(t, uint64(5000), acc.Amount)
	chain.query("/tokens", senderWallet, &acc)
	require.Equal(t, uint64(devSupply-5000), acc.Amount)

	// the emptied custody account is closed
	q := chain.app.Query(abci.RequestQuery{Path: "/tokens", Data: addrs.Custody})
	require.Equal(t, uint32(0), q.Code, q.Log)
	var values app.ResultSet
	require.NoError(t, values.Unmarshal(q.Value))
	require.Empty(t, values.Results)

	// a completed escrow cannot be pulled back
	pullback := &escrow.PullbackMsg{
		EscrowID:     id,
		StateBump:    addrs.StateBump,
		WalletBump:   addrs.CustodyBump,
		Sender:       sender,
		Recipient:    recipient,
		Mint:         mint,
		EscrowState:  addrs.State,
		EscrowWallet: addrs.Custody,
		RefundWallet: senderWallet,
	}
	res = chain.deliver(senderKey, pullback)
	require.Equal(t, escrow.ErrStage.ABCICode(), res.Code, res.Log)
}

func TestConfigurationQuery(t *testing.T) {
	owner, mint := weavetest.NewAddress(), weavetest.NewAddress()
	chain := newTestChain(t, devGenesis(t, owner, mint, weavetest.NewAddress()))

	var conf token.Configuration
	chain.query("/config", []byte("token"), &conf)
	require.Equal(t, uint64(devAccountRent), conf.AccountRent)
}

func TestTxCodec(t *testing.T) {
	key := weavetest.KeyFromPhrase(t, "codec")
	msg := &token.TransferMsg{
		From:      weavetest.NewAddress(),
		To:        weavetest.NewAddress(),
		Authority: KeyAddress(key),
		Amount:    12,
	}
	tx := &Tx{Msg: msg}
	unsigned, err := tx.GetSignBytes()
	require.NoError(t, err)

	sig, err := sigs.SignTx(key, tx, chainID, 3)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	// signatures are never part of the signed bytes
	signBytes, err := tx.GetSignBytes()
	require.NoError(t, err)
	require.Equal(t, unsigned, signBytes)

	bz, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := TxDecoder(bz)
	require.NoError(t, err)

	got, err := decoded.GetMsg()
	require.NoError(t, err)
	require.Equal(t, msg, got)
	require.Equal(t, tx.Signatures, decoded.(*Tx).GetSignatures())

	_, err = TxDecoder([]byte("garbage"))
	require.True(t, errors.ErrInput.Is(err))

	_, err = (&Tx{}).GetMsg()
	require.True(t, errors.ErrMsg.Is(err))
}
