package offer

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/app"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/x/vault"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type action struct {
	signer barter.Condition
	msg    barter.Msg
}

func (a action) tx() barter.Tx {
	return &weavetest.Tx{Msg: a.msg}
}

func TestHandlers(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	carol := weavetest.NewCondition()

	nft := asset.NFT("X-01", 5)
	price := asset.NewAsset("Y-01", 3, 100)
	meta := &barter.Metadata{Schema: 1}

	create := action{
		signer: alice,
		msg:    &CreateMsg{Metadata: meta, Deposit: &nft, Requested: &price, Counterparty: bob.Address()},
	}

	cases := map[string]struct {
		prep           []action
		do             action
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantData       []byte
		wantAlice      []asset.Asset
		wantBob        []asset.Asset
		wantCarol      []asset.Asset
	}{
		"create": {
			do:        create,
			wantData:  IDKey(1),
			wantCarol: []asset.Asset{price},
			wantBob:   []asset.Asset{price},
		},
		"create without signature": {
			do:             action{msg: create.msg},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantAlice:      []asset.Asset{nft},
			wantBob:        []asset.Asset{price},
			wantCarol:      []asset.Asset{price},
		},
		"create depositing someone else's asset": {
			do:             action{signer: bob, msg: create.msg},
			wantDeliverErr: errors.ErrAmount,
			wantAlice:      []asset.Asset{nft},
			wantBob:        []asset.Asset{price},
			wantCarol:      []asset.Asset{price},
		},
		"cancel": {
			prep:      []action{create},
			do:        action{signer: alice, msg: &CancelMsg{Metadata: meta, OfferID: 1}},
			wantAlice: []asset.Asset{nft},
			wantBob:   []asset.Asset{price},
			wantCarol: []asset.Asset{price},
		},
		"cancel by counterparty": {
			prep:           []action{create},
			do:             action{signer: bob, msg: &CancelMsg{Metadata: meta, OfferID: 1}},
			wantDeliverErr: errors.ErrUnauthorized,
			wantBob:        []asset.Asset{price},
			wantCarol:      []asset.Asset{price},
		},
		"cancel missing offer": {
			do:             action{signer: alice, msg: &CancelMsg{Metadata: meta, OfferID: 1}},
			wantDeliverErr: errors.ErrNotFound,
			wantAlice:      []asset.Asset{nft},
			wantBob:        []asset.Asset{price},
			wantCarol:      []asset.Asset{price},
		},
		"accept by counterparty": {
			prep:      []action{create},
			do:        action{signer: bob, msg: &AcceptMsg{Metadata: meta, OfferID: 1, Payment: &price}},
			wantAlice: []asset.Asset{price},
			wantBob:   []asset.Asset{nft},
			wantCarol: []asset.Asset{price},
		},
		"accept by anyone paying": {
			prep:      []action{create},
			do:        action{signer: carol, msg: &AcceptMsg{Metadata: meta, OfferID: 1, Payment: &price}},
			wantAlice: []asset.Asset{price},
			wantBob:   []asset.Asset{price},
			wantCarol: []asset.Asset{nft},
		},
		"accept with wrong payment": {
			prep: []action{create},
			do: action{signer: bob, msg: &AcceptMsg{
				Metadata: meta,
				OfferID:  1,
				Payment:  &asset.Asset{Ticker: "Y-01", Nonce: 3, Quantity: 99},
			}},
			wantDeliverErr: ErrPaymentMismatch,
			wantBob:        []asset.Asset{price},
			wantCarol:      []asset.Asset{price},
		},
		"accept twice": {
			prep: []action{
				create,
				{signer: bob, msg: &AcceptMsg{Metadata: meta, OfferID: 1, Payment: &price}},
			},
			do:             action{signer: carol, msg: &AcceptMsg{Metadata: meta, OfferID: 1, Payment: &price}},
			wantDeliverErr: errors.ErrNotFound,
			wantAlice:      []asset.Asset{price},
			wantBob:        []asset.Asset{nft},
			wantCarol:      []asset.Asset{price},
		},
		"unknown message": {
			do:             action{signer: alice, msg: &weavetest.Msg{RoutePath: "offer/create"}},
			wantCheckErr:   errors.ErrType,
			wantDeliverErr: errors.ErrType,
			wantAlice:      []asset.Asset{nft},
			wantBob:        []asset.Asset{price},
			wantCarol:      []asset.Asset{price},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			bank := vault.NewController(vault.NewBucket())
			require.NoError(t, bank.Issue(db, alice.Address(), nft))
			require.NoError(t, bank.Issue(db, bob.Address(), price))
			require.NoError(t, bank.Issue(db, carol.Address(), price))

			auth := &weavetest.CtxAuth{Key: "auth"}
			rt := app.NewRouter()
			RegisterRoutes(rt, auth, bank)

			for i, p := range tc.prep {
				ctx := auth.SetConditions(context.Background(), p.signer)
				_, err := rt.Deliver(ctx, db, p.tx())
				require.NoErrorf(t, err, "prep %d", i)
			}

			ctx := context.Background()
			if tc.do.signer != nil {
				ctx = auth.SetConditions(ctx, tc.do.signer)
			}

			cache := db.CacheWrap()
			_, err := rt.Check(ctx, cache, tc.do.tx())
			assert.True(t, tc.wantCheckErr.Is(err), "check: %+v", err)
			cache.Discard()

			res, err := rt.Deliver(ctx, db, tc.do.tx())
			assert.True(t, tc.wantDeliverErr.Is(err), "deliver: %+v", err)
			if err == nil && tc.wantData != nil {
				assert.Equal(t, tc.wantData, res.Data)
			}

			for name, want := range map[string]struct {
				addr barter.Address
				want []asset.Asset
			}{
				"alice": {alice.Address(), tc.wantAlice},
				"bob":   {bob.Address(), tc.wantBob},
				"carol": {carol.Address(), tc.wantCarol},
			} {
				got, err := bank.Balance(db, want.addr)
				require.NoError(t, err)
				assert.Equal(t, want.want, got, name)
			}
		})
	}
}

func TestHandlerMetrics(t *testing.T) {
	alice := weavetest.NewCondition()
	nft := asset.NFT("X-01", 5)
	price := asset.NewAsset("Y-01", 3, 100)
	meta := &barter.Metadata{Schema: 1}

	db := store.MemStore()
	bank := vault.NewController(vault.NewBucket())
	require.NoError(t, bank.Issue(db, alice.Address(), nft))

	auth := &weavetest.Auth{Signer: alice}
	ctrl := NewController(NewBucket(), bank)
	createH := CreateOfferHandler{auth: auth, ctrl: ctrl}
	cancelH := CancelOfferHandler{auth: auth, ctrl: ctrl}

	created := testutil.ToFloat64(offersCreated)
	cancelled := testutil.ToFloat64(offersCancelled)
	rejected := testutil.ToFloat64(offersRejected.WithLabelValues(pathCancelMsg))

	ctx := context.Background()
	createTx := &weavetest.Tx{Msg: &CreateMsg{Metadata: meta, Deposit: &nft, Requested: &price, Counterparty: alice.Address()}}
	_, err := createH.Deliver(ctx, db, createTx)
	require.NoError(t, err)
	assert.Equal(t, created+1, testutil.ToFloat64(offersCreated))
	require.NoError(t, ObserveActive(db))
	assert.Equal(t, float64(1), testutil.ToFloat64(offersActive))

	cancelTx := &weavetest.Tx{Msg: &CancelMsg{Metadata: meta, OfferID: 1}}
	_, err = cancelH.Deliver(ctx, db, cancelTx)
	require.NoError(t, err)
	_, err = cancelH.Deliver(ctx, db, cancelTx)
	require.Error(t, err)

	assert.Equal(t, cancelled+1, testutil.ToFloat64(offersCancelled))
	require.NoError(t, ObserveActive(db))
	assert.Equal(t, float64(0), testutil.ToFloat64(offersActive))
	assert.Equal(t, rejected+1, testutil.ToFloat64(offersRejected.WithLabelValues(pathCancelMsg)))
}

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterMetrics(reg))
	require.Error(t, RegisterMetrics(reg))
}
