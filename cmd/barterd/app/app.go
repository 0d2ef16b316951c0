/*
Package app links together all the various components
to construct the barter application.
*/
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/app"
	"github.com/iov-one/barter/store/iavl"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/offer"
	"github.com/iov-one/barter/x/sigs"
	"github.com/iov-one/barter/x/vault"
)

// Name is returned by the application Info.
const Name = "barter"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		app.NewLogging(),
		app.NewRecovery(),
		sigs.NewDecorator(),
	)
}

// Router returns a router dispatching to the offer, vault and sigs
// handlers. All of them share one vault controller, so that assets
// moved by the offers are the same the vault sends.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	bank := vault.NewController(vault.NewBucket())
	vault.RegisterRoutes(r, authFn, bank)
	offer.RegisterRoutes(r, authFn, bank)
	sigs.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/offers", "/holdings" and "/auth"
func QueryRouter() barter.QueryRouter {
	r := barter.NewQueryRouter()
	r.RegisterAll(
		offer.RegisterQuery,
		vault.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() barter.Initializer {
	return barter.ChainInitializers(
		vault.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() barter.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic application with the given arguments.
// If you are not sure what to use for the Handler, just use Stack().
func Application(name string, h barter.Handler,
	tx barter.TxDecoder, kv barter.CommitKVStore, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	store, err := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	if err != nil {
		return app.BaseApp{}, err
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (iavl.CommitStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return iavl.CommitStore{}, fmt.Errorf("invalid database name: %s", path)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
