package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/x/escrow"
	"github.com/solpay/solpay/x/token"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// devSupply is minted to the owner of a dev chain.
	devSupply = 1000000000000
	// devLamports is the native balance of the owner of a dev chain.
	devLamports = 100000000000
	// devAccountRent is the deposit of every created token account.
	devAccountRent = 2039280
	// devDecimals of the dev mint.
	devDecimals = 6
)

type genesisMint struct {
	Address   solpay.Address `json:"address"`
	Authority solpay.Address `json:"authority"`
	Decimals  uint8          `json:"decimals"`
}

type genesisAccount struct {
	Address solpay.Address `json:"address"`
	token.Account
}

type genesisLamports struct {
	Address solpay.Address `json:"address"`
	Amount  uint64         `json:"amount"`
}

type genesisToken struct {
	Mints    []genesisMint     `json:"mints"`
	Accounts []genesisAccount  `json:"accounts"`
	Lamports []genesisLamports `json:"lamports"`
}

type genesisState struct {
	Token genesisToken `json:"token"`
	Conf  struct {
		Token  token.Configuration  `json:"token"`
		Escrow escrow.Configuration `json:"escrow"`
	} `json:"conf"`
}

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// You can set the owner address as the first argument and the mint
// address as the second. Missing addresses are generated and the
// owner seed is printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var owner, mint solpay.Address
	var err error

	if len(args) > 0 {
		if owner, err = solpay.ParseAddress(args[0]); err != nil {
			return nil, errors.Wrap(err, "owner")
		}
	} else {
		// if no address provided, auto-generate one
		// and print out the recovery seed
		key, seed, err := GenerateKey()
		if err != nil {
			return nil, err
		}
		owner = KeyAddress(key)
		fmt.Printf("owner %s seed %s\n", owner, hex.EncodeToString(seed))
	}

	if len(args) > 1 {
		if mint, err = solpay.ParseAddress(args[1]); err != nil {
			return nil, errors.Wrap(err, "mint")
		}
	} else {
		key, _, err := GenerateKey()
		if err != nil {
			return nil, err
		}
		mint = KeyAddress(key)
	}

	wallet, err := token.AssociatedAddress(owner, mint)
	if err != nil {
		return nil, errors.Wrap(err, "owner wallet")
	}

	var state genesisState
	state.Token = genesisToken{
		Mints: []genesisMint{
			{Address: mint, Authority: owner, Decimals: devDecimals},
		},
		Accounts: []genesisAccount{
			{Address: wallet, Account: token.Account{Mint: mint, Owner: owner, Amount: devSupply}},
		},
		Lamports: []genesisLamports{
			{Address: owner, Amount: devLamports},
		},
	}
	state.Conf.Token.AccountRent = devAccountRent
	state.Conf.Escrow.ProgramID = escrow.DefaultProgramID

	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "solpay.db")
	}

	metrics, err := newMetrics()
	if err != nil {
		return nil, err
	}

	application, err := Application("solpay", Stack(metrics), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}
