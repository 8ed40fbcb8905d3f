package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/weavetest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

// setupConfig creates a home directory holding a genesis file the way
// `tendermint init` leaves it.
func setupConfig(t *testing.T) string {
	t.Helper()

	home, err := ioutil.TempDir("", "solpay-init")
	assert.Nil(t, err)
	assert.Nil(t, os.Mkdir(filepath.Join(home, DirConfig), 0755))

	genesis := `{
  "genesis_time": "2019-05-01T10:00:00Z",
  "chain_id": "test-chain-Zq8bQp",
  "validators": [],
  "app_hash": ""
}`
	err = ioutil.WriteFile(filepath.Join(home, DirConfig, GenesisFile), []byte(genesis), 0600)
	assert.Nil(t, err)
	return home
}

func TestInit(t *testing.T) {
	home := setupConfig(t)
	defer os.RemoveAll(home)

	var gotArgs []string
	gen := func(args []string) (json.RawMessage, error) {
		gotArgs = args
		return json.RawMessage(`{"escrow":{"program_id":"abc"}}`), nil
	}

	logger := log.NewNopLogger()
	args := []string{"mint", "owner"}
	assert.Nil(t, InitCmd(gen, logger, home, args))
	assert.Equal(t, args, gotArgs)

	bz, err := ioutil.ReadFile(filepath.Join(home, DirConfig, GenesisFile))
	assert.Nil(t, err)
	var doc GenesisDoc
	assert.Nil(t, json.Unmarshal(bz, &doc))

	// keep old values, and add our values
	assert.Equal(t, json.RawMessage(`"test-chain-Zq8bQp"`), doc["chain_id"])
	assert.Equal(t, json.RawMessage(`"2019-05-01T10:00:00Z"`), doc[GenesisTimeKey])

	var state map[string]map[string]string
	assert.Nil(t, json.Unmarshal(doc[AppStateKey], &state))
	assert.Equal(t, "abc", state["escrow"]["program_id"])

	// app state can be set only once
	err = InitCmd(gen, logger, home, args)
	assert.IsErr(t, errors.ErrState, err)
}

func TestInitFailures(t *testing.T) {
	logger := log.NewNopLogger()
	noop := func([]string) (json.RawMessage, error) { return json.RawMessage(`{}`), nil }

	missing, err := ioutil.TempDir("", "solpay-init")
	assert.Nil(t, err)
	defer os.RemoveAll(missing)
	assert.IsErr(t, errors.ErrNotFound, InitCmd(noop, logger, missing, nil))

	home := setupConfig(t)
	defer os.RemoveAll(home)
	failing := func([]string) (json.RawMessage, error) { return nil, errors.ErrInput }
	assert.IsErr(t, errors.ErrInput, InitCmd(failing, logger, home, nil))
}
