package main

import (
	"os"
	"path/filepath"

	"github.com/iov-one/barter"
	bapp "github.com/iov-one/barter/app"
	"github.com/iov-one/barter/cmd/barterd/app"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store/iavl"
	"github.com/iov-one/barter/x/sigs"
	"github.com/tendermint/tendermint/libs/log"
)

// node is the application opened over the database in the home directory.
type node struct {
	conf   *Config
	logger log.Logger
	store  iavl.CommitStore
	app    bapp.BaseApp
}

func openNode(conf *Config) (*node, error) {
	logger, err := newLogger(conf)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(conf.Home, 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "cannot create home: %s", err)
	}
	kv, err := app.CommitKVStore(filepath.Join(conf.Home, dbFileName))
	if err != nil {
		return nil, err
	}
	base, err := app.Application(app.Name, app.Stack(), app.TxDecoder, kv, conf.Debug)
	if err != nil {
		kv.Close()
		return nil, err
	}
	base.WithLogger(logger.With("module", "state"))
	return &node{
		conf:   conf,
		logger: logger.With("module", "main"),
		store:  kv,
		app:    base,
	}, nil
}

func (n *node) Close() {
	n.store.Close()
}

// submit signs the message with the private key, checks it and delivers
// it in a new block.
func (n *node) submit(key *crypto.PrivateKey, msg barter.Msg) (*barter.DeliverResult, error) {
	chainID := n.app.GetChainID()
	if chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized, run init first")
	}

	tx := &app.Tx{}
	if err := tx.SetMsg(msg); err != nil {
		return nil, err
	}
	nonce, err := n.nonce(key.PublicKey().Address())
	if err != nil {
		return nil, err
	}
	sig, err := sigs.SignTx(key, tx, chainID, nonce)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	tx.Signatures = []*sigs.StdSignature{sig}
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}

	if _, err := n.app.CheckTx(raw); err != nil {
		return nil, errors.Wrap(err, "check")
	}
	res, err := n.app.DeliverTx(raw)
	if err != nil {
		return nil, errors.Wrap(err, "deliver")
	}
	info, err := n.app.Commit()
	if err != nil {
		return nil, err
	}
	n.logger.Info("transaction committed", "path", msg.Path(), "height", info.Version)
	return res, nil
}

func (n *node) nonce(addr barter.Address) (int64, error) {
	res, err := n.app.Query("/auth", addr)
	if err != nil {
		return 0, errors.Wrap(err, "query nonce")
	}
	if len(res.Models) == 0 {
		return 0, nil
	}
	var user sigs.UserData
	if err := user.Unmarshal(res.Models[0].Value); err != nil {
		return 0, errors.Wrap(errors.ErrModel, err.Error())
	}
	return user.Sequence, nil
}
