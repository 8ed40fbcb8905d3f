/*
Package app links together all the various components
to construct the solpay escrow application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/app"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/gconf"
	"github.com/solpay/solpay/orm"
	"github.com/solpay/solpay/store/iavl"
	"github.com/solpay/solpay/x"
	"github.com/solpay/solpay/x/escrow"
	"github.com/solpay/solpay/x/sigs"
	"github.com/solpay/solpay/x/token"
	"github.com/solpay/solpay/x/utils"
)

// Authenticator returns the typical authentication, public key
// signatures together with the addresses a program signs for
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, solpay.ProgramSigners{})
}

// Chain returns a chain of decorators, to handle authentication,
// metrics, logging, and recovery. Metrics are optional.
func Chain(metrics *utils.Metrics) app.Decorators {
	var m solpay.Decorator
	if metrics != nil {
		m = *metrics
	}
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		m,
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the token and escrow programs
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	tokens := token.NewController(authFn)
	token.RegisterRoutes(r, authFn, tokens)
	escrow.RegisterRoutes(r, authFn, tokens)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/escrows", "/tokens", "/mints", "/lamports",
// "/auth", "/config" and "/"
func QueryRouter() solpay.QueryRouter {
	r := solpay.NewQueryRouter()
	r.RegisterAll(
		escrow.RegisterQuery,
		token.RegisterQuery,
		sigs.RegisterQuery,
		gconf.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(metrics *utils.Metrics) solpay.Handler {
	authFn := Authenticator()
	return Chain(metrics).WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h solpay.Handler, tx solpay.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (solpay.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}

// Initializers returns the genesis loaders of every program.
func Initializers() solpay.Initializer {
	return app.ChainInitializers(
		token.Initializer{},
		escrow.Initializer{},
	)
}

// newMetrics registers the transaction metrics with the default
// registry, reusing collectors if they are registered already.
func newMetrics() (*utils.Metrics, error) {
	m, err := utils.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
