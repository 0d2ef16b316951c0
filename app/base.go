package app

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// BaseApp adds DeliverTx and CheckTx to the storage and query
// functionality of StoreApp.
//
// Exactly one transaction is executed at a time. Each transaction runs
// in its own cache wrap that is written only when the handler succeeds,
// so a failed transaction leaves no trace in the state.
type BaseApp struct {
	*StoreApp
	decoder barter.TxDecoder
	handler barter.Handler
	debug   bool
}

// NewBaseApp constructs a basic application
func NewBaseApp(store *StoreApp, decoder barter.TxDecoder, handler barter.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx executes the transaction. Changes become visible to queries
// after the next Commit.
func (b BaseApp) DeliverTx(txBytes []byte) (*barter.DeliverResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.loadTx(txBytes)
	if err != nil {
		return nil, b.logError("deliver_tx", err)
	}
	ctx, err := b.blockContext()
	if err != nil {
		return nil, err
	}
	ctx = barter.WithLogInfo(ctx,
		"call", "deliver_tx",
		"path", barter.GetPath(tx))

	db := b.store.DeliverStore().CacheWrap()
	res, err := b.handler.Deliver(ctx, db, tx)
	if err != nil {
		db.Discard()
		return nil, b.logError("deliver_tx", err)
	}
	if err := db.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}

// CheckTx verifies the transaction against the check state. Successful
// transactions are kept in the check state until the next Commit, so that
// signature sequences of consecutive transactions can be verified.
func (b BaseApp) CheckTx(txBytes []byte) (*barter.CheckResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.loadTx(txBytes)
	if err != nil {
		return nil, b.logError("check_tx", err)
	}
	ctx, err := b.blockContext()
	if err != nil {
		return nil, err
	}
	ctx = barter.WithLogInfo(ctx,
		"call", "check_tx",
		"path", barter.GetPath(tx))

	db := b.store.CheckStore().CacheWrap()
	res, err := b.handler.Check(ctx, db, tx)
	if err != nil {
		db.Discard()
		return nil, b.logError("check_tx", err)
	}
	if err := db.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}

// logError writes the error with its code and returns it unchanged. In
// debug mode the log contains the stack trace.
func (b BaseApp) logError(call string, err error) error {
	code, log := errors.ABCIInfo(err, b.debug)
	b.logger.Debug("transaction failed", "call", call, "code", code, "log", log)
	return err
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx barter.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	if err != nil {
		err = errors.Wrap(errors.ErrInput, err.Error())
	}
	return
}
