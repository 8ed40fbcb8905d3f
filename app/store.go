package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the state part of abci.Application: genesis, block
// boundaries, commits and queries. Embed it to add CheckTx and DeliverTx,
// see BaseApp.
//
// ABCI calls that carry no user input (Info, InitChain, Commit) have no way
// to report an error. A failure there means the node state is broken and
// they panic.
type StoreApp struct {
	name        string
	logger      log.Logger
	store       *CommitStore
	initializer solpay.Initializer
	queryRouter solpay.QueryRouter

	// chainID is empty until genesis is loaded.
	chainID string

	// baseContext lives as long as the app and carries the chain id and
	// logger. blockContext is rebuilt from it by every BeginBlock.
	baseContext  solpay.Context
	blockContext solpay.Context
}

// NewStoreApp loads the latest committed state of store, including the
// chain id when the chain was already initialized. It panics if the state
// cannot be read.
func NewStoreApp(name string, store solpay.CommitKVStore, queryRouter solpay.QueryRouter, baseContext solpay.Context) *StoreApp {
	cs, err := NewCommitStore(store)
	if err != nil {
		panic(err)
	}
	s := &StoreApp{
		name:        name,
		store:       cs,
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s.WithLogger(log.NewNopLogger())

	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		panic(err)
	}
	if chainID != "" {
		s.setChainID(chainID)
	}

	last, err := cs.LastCommit()
	if err != nil {
		panic(err)
	}
	s.blockContext = solpay.WithHeight(s.baseContext, last.Version)
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

func (s *StoreApp) setChainID(chainID string) {
	s.chainID = chainID
	s.baseContext = solpay.WithChainID(s.baseContext, chainID)
}

// WithInit sets the initializer called with the genesis app_state.
func (s *StoreApp) WithInit(init solpay.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger of the app and of every context it creates.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = solpay.WithLogger(s.baseContext, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() solpay.Context {
	return s.blockContext
}

func (s *StoreApp) DeliverStore() solpay.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() solpay.CacheableKVStore {
	return s.store.CheckStore()
}

// loadGenesis stores the chain id and passes the app_state to the
// initializer. It runs once in the lifetime of a chain.
func (s *StoreApp) loadGenesis(chainID string, appState []byte) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %q", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state missing in genesis, run init first")
	}
	var opts solpay.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}

	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.setChainID(chainID)

	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, s.DeliverStore())
}

// Info returns the name, version, height and app hash of the last
// committed block.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	last, err := s.store.LastCommit()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", last.Version, "hash", fmt.Sprintf("%X", last.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          solpay.Version(),
		LastBlockHeight:  last.Version,
		LastBlockAppHash: last.Hash,
	}
}

// SetOption is not supported.
func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// Query reads the last committed state. The path selects a registered
// query handler ("/", "/escrows", "/tokens", "/config" ...) and an
// optional "?prefix" suffix selects a prefix query over Data instead of a
// single key lookup. The requested height is ignored.
//
// Key and Value of the response are ResultSets of equal length, so one
// response format serves zero to many results.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(req.Path)
	h := s.queryRouter.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}
	last, err := s.store.LastCommit()
	if err != nil {
		return queryError(err)
	}

	db := s.store.Snapshot()
	defer db.Discard()
	models, err := h.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}

	res := abci.ResponseQuery{Height: last.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return queryError(err)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return queryError(err)
	}
	return res
}

// splitPath returns the path and the query modifier following "?".
func splitPath(path string) (string, string) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}

// Commit persists all delivered transactions of the block.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// InitChain loads the genesis app_state. It panics when called on an
// already initialized chain.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock sets the header and height used by all transactions of the
// block.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := solpay.WithHeader(s.baseContext, req.Header)
	s.blockContext = solpay.WithHeight(ctx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
