package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp contains a data store and all info needed to perform queries
// and to initialize the state from the genesis.
//
// All public methods are serialized by a single lock, so that a query
// never observes a transaction or a commit half way through.
//
// It should be embedded in another struct for CheckTx and DeliverTx.
type StoreApp struct {
	mu sync.Mutex

	logger log.Logger

	// name is returned by Info
	name string

	// Database state (committed, check, deliver....)
	store *CommitStore

	// Code to initialize from a genesis file
	initializer barter.Initializer

	// How to handle queries
	queryRouter barter.QueryRouter

	// chainID is loaded from db in initialization
	// saved once in InitChain
	chainID string

	// baseContext contains context info that is valid for
	// lifetime of this app (eg. chainID)
	baseContext barter.Context
}

// NewStoreApp initializes this app into a ready state with some defaults.
func NewStoreApp(name string, store barter.CommitKVStore, queryRouter barter.QueryRouter, baseContext barter.Context) (*StoreApp, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, errors.Wrap(err, "commit store")
	}
	s := &StoreApp{
		name:        name,
		store:       cs,
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	chainID, err := loadChainID(s.store.DeliverStore())
	if err != nil {
		return nil, err
	}
	if chainID != "" {
		s.chainID = chainID
		s.baseContext = barter.WithChainID(s.baseContext, chainID)
	}
	return s, nil
}

// GetChainID returns the current chainID
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit is used to set the init function we call
func (s *StoreApp) WithInit(init barter.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger on the StoreApp and returns it,
// to make it easy to chain in initialization
//
// also sets baseContext logger
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = barter.WithLogger(s.baseContext, logger)
	s.logger = logger
	return s
}

// Logger returns the application base logger
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// blockContext returns the context of the next transaction. Its height is
// the one the next commit will create.
func (s *StoreApp) blockContext() (barter.Context, error) {
	info, err := s.store.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	return barter.WithHeight(s.baseContext, info.Version+1), nil
}

// Info returns the name of the application and the last committed
// version.
func (s *StoreApp) Info() (string, barter.CommitID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.store.CommitInfo()
	return s.name, info, err
}

// InitChain stores the chain id and runs the initializer over the genesis
// application state. It can be called only once in the lifetime of a
// database. The state is persisted with the next Commit.
func (s *StoreApp) InitChain(chainID string, appState []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain %q", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app state not set in genesis")
	}
	var opts barter.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse app state: %s", err)
	}

	db := s.store.DeliverStore().CacheWrap()
	if err := saveChainID(db, chainID); err != nil {
		db.Discard()
		return err
	}
	if s.initializer != nil {
		if err := s.initializer.FromGenesis(opts, db); err != nil {
			db.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := db.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}

	s.chainID = chainID
	s.baseContext = barter.WithChainID(s.baseContext, chainID)
	s.logger.Info("chain initialized", "chain_id", chainID)
	return nil
}

// Commit persists all delivered transactions as a new version.
func (s *StoreApp) Commit() (barter.CommitID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.store.Commit()
	if err != nil {
		return info, errors.Wrap(err, "commit")
	}
	s.logger.Debug("commit synced",
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))
	return info, nil
}

// QueryResult is the response of a query.
type QueryResult struct {
	// Height is the version of the state the query was made against.
	Height int64
	Models []barter.Model
}

/*
Query reads data from the last committed state.

Path may be "/", "/<bucket>", or "/<bucket>/<index>" and it may be
followed by "?prefix" to make a prefix query. Data is interpreted by the
query handler registered for the path, usually it is the key or the
indexed value.
*/
func (s *StoreApp) Query(path string, data []byte) (*QueryResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, mod := splitPath(path)
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", path)
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	db := s.store.CommittedStore()
	defer db.Discard()

	models, err := qh.Query(db, mod, data)
	if err != nil {
		return nil, err
	}
	return &QueryResult{Height: info.Version, Models: models}, nil
}

// View calls fn with the last committed state. Writes made by fn are
// discarded.
func (s *StoreApp) View(fn func(db barter.ReadOnlyKVStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.store.CommittedStore()
	defer db.Discard()
	return fn(db)
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}
