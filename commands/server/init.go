package server

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"

	"github.com/solpay/solpay/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// AppStateKey is the key in the genesis file that holds the
	// application initial state.
	AppStateKey = "app_state"
	// GenesisTimeKey is the key in the genesis file that holds the
	// chain creation time.
	GenesisTimeKey = "genesis_time"
	// DirConfig is the directory under home holding the tendermint
	// configuration files.
	DirConfig = "config"
	// GenesisFile is the name of the genesis file inside DirConfig.
	GenesisFile = "genesis.json"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// InitCmd will initialize the app_state of a genesis file created
// by `tendermint init`.
// The application passes in a function to generate the state and
// may use the arguments to set up initial accounts.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	genFile := filepath.Join(home, DirConfig, GenesisFile)

	bz, err := ioutil.ReadFile(genFile)
	if err != nil {
		return errors.Wrap(errors.ErrNotFound, err.Error())
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if raw, ok := doc[AppStateKey]; ok && len(raw) > 0 && string(raw) != "null" {
		return errors.Wrap(errors.ErrState, "app_state already set")
	}

	options, err := gen(args)
	if err != nil {
		return err
	}
	doc[AppStateKey] = options

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(genFile, out, 0600); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}

	logger.Info("Updated genesis file", "path", genFile)
	return nil
}
