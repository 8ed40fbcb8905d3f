package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/solpay/solpay"
	solpayd "github.com/solpay/solpay/cmd/solpayd/app"
	"github.com/solpay/solpay/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".solpay")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("solpayd")
	fmt.Println("          Two-party escrow node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("derive    Print the addresses of an escrow")
	fmt.Println("keys      Derive an ed25519 key from a wallet seed")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.solpay")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "solpay")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(solpayd.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(solpayd.GenerateApp, logger, *varHome, rest)
	case "derive":
		err = deriveCmd(os.Stdout, rest)
	case "keys":
		err = keysCmd(os.Stdout, rest)
	case "version":
		fmt.Println(solpay.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
