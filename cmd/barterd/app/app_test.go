package app

import (
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/app"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/offer"
	"github.com/iov-one/barter/x/sigs"
	"github.com/iov-one/barter/x/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chainID = "barter-test"

type node struct {
	t   *testing.T
	app app.BaseApp
}

func newNode(t *testing.T, holdings map[string][]asset.Asset) *node {
	t.Helper()
	kv, err := CommitKVStore("")
	require.NoError(t, err)
	base, err := Application(Name, Stack(), TxDecoder, kv, true)
	require.NoError(t, err)

	state, err := GenInitOptions(holdings)
	require.NoError(t, err)
	require.NoError(t, base.InitChain(chainID, state))
	_, err = base.Commit()
	require.NoError(t, err)
	return &node{t: t, app: base}
}

// signedTx returns a serialized transaction signed with the next nonce
// of the signer.
func (n *node) signedTx(signer *crypto.PrivateKey, msg barter.Msg) []byte {
	n.t.Helper()
	tx := &Tx{}
	require.NoError(n.t, tx.SetMsg(msg))
	if signer != nil {
		sig, err := sigs.SignTx(signer, tx, chainID, n.nonce(signer.PublicKey().Address()))
		require.NoError(n.t, err)
		tx.Signatures = []*sigs.StdSignature{sig}
	}
	raw, err := tx.Marshal()
	require.NoError(n.t, err)
	return raw
}

// deliver executes and commits a single transaction.
func (n *node) deliver(raw []byte) (*barter.DeliverResult, error) {
	n.t.Helper()
	res, err := n.app.DeliverTx(raw)
	_, cerr := n.app.Commit()
	require.NoError(n.t, cerr)
	return res, err
}

func (n *node) nonce(addr barter.Address) int64 {
	n.t.Helper()
	res, err := n.app.Query("/auth", addr)
	require.NoError(n.t, err)
	if len(res.Models) == 0 {
		return 0
	}
	var user sigs.UserData
	require.NoError(n.t, user.Unmarshal(res.Models[0].Value))
	return user.Sequence
}

func (n *node) holdings(addr barter.Address) []asset.Asset {
	n.t.Helper()
	res, err := n.app.Query("/holdings", addr)
	require.NoError(n.t, err)
	if len(res.Models) == 0 {
		return nil
	}
	var h vault.Holdings
	require.NoError(n.t, h.Unmarshal(res.Models[0].Value))
	var assets []asset.Asset
	for _, a := range h.Assets {
		assets = append(assets, *a)
	}
	return assets
}

func (n *node) count(path string, data []byte) int {
	n.t.Helper()
	res, err := n.app.Query(path, data)
	require.NoError(n.t, err)
	return len(res.Models)
}

func TestOfferLifecycle(t *testing.T) {
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()
	aliceAddr := alice.PublicKey().Address()
	bobAddr := bob.PublicKey().Address()

	punk := asset.NFT("PUNK-2a4f", 7)
	price := asset.NewAsset("IOV", 0, 100)

	n := newNode(t, map[string][]asset.Asset{
		aliceAddr.String(): {punk},
		bobAddr.String():   {asset.NewAsset("IOV", 0, 1000)},
	})

	create := n.signedTx(alice, &offer.CreateMsg{
		Metadata:     &barter.Metadata{Schema: 1},
		Deposit:      &punk,
		Requested:    &price,
		Counterparty: bobAddr,
	})
	res, err := n.deliver(create)
	require.NoError(t, err)
	assert.Equal(t, offer.IDKey(1), res.Data)

	// replaying the same bytes fails on the signature sequence
	_, err = n.deliver(create)
	assert.True(t, sigs.ErrInvalidSequence.Is(err))

	assert.Equal(t, 1, n.count("/offers", offer.IDKey(1)))
	assert.Equal(t, 1, n.count("/offers/creator", aliceAddr))
	assert.Equal(t, 1, n.count("/offers/wanted", bobAddr))
	assert.Empty(t, n.holdings(aliceAddr))
	assert.Equal(t, []asset.Asset{punk}, n.holdings(offer.CustodyAddress(1)))

	cheap := asset.NewAsset("IOV", 0, 99)
	_, err = n.deliver(n.signedTx(bob, &offer.AcceptMsg{
		Metadata: &barter.Metadata{Schema: 1},
		OfferID:  1,
		Payment:  &cheap,
	}))
	assert.True(t, offer.ErrPaymentMismatch.Is(err))
	assert.Equal(t, []asset.Asset{asset.NewAsset("IOV", 0, 1000)}, n.holdings(bobAddr))
	assert.Equal(t, 1, n.count("/offers", offer.IDKey(1)))

	// a failed transaction does not consume the nonce
	assert.Equal(t, int64(0), n.nonce(bobAddr))

	_, err = n.deliver(n.signedTx(bob, &offer.AcceptMsg{
		Metadata: &barter.Metadata{Schema: 1},
		OfferID:  1,
		Payment:  &price,
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.nonce(bobAddr))

	assert.Equal(t, []asset.Asset{price}, n.holdings(aliceAddr))
	assert.Equal(t, []asset.Asset{asset.NewAsset("IOV", 0, 900), punk}, n.holdings(bobAddr))
	assert.Empty(t, n.holdings(offer.CustodyAddress(1)))
	assert.Equal(t, 0, n.count("/offers", offer.IDKey(1)))
	assert.Equal(t, 0, n.count("/offers/creator", aliceAddr))
	assert.Equal(t, 0, n.count("/offers/wanted", bobAddr))
}

func TestCancelThroughApplication(t *testing.T) {
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()
	aliceAddr := alice.PublicKey().Address()

	punk := asset.NFT("PUNK-2a4f", 7)
	price := asset.NewAsset("IOV", 0, 100)
	n := newNode(t, map[string][]asset.Asset{
		aliceAddr.String(): {punk},
	})

	_, err := n.deliver(n.signedTx(alice, &offer.CreateMsg{
		Metadata:     &barter.Metadata{Schema: 1},
		Deposit:      &punk,
		Requested:    &price,
		Counterparty: bob.PublicKey().Address(),
	}))
	require.NoError(t, err)
	assert.Empty(t, n.holdings(aliceAddr))
	assert.Equal(t, []asset.Asset{punk}, n.holdings(offer.CustodyAddress(1)))

	cancel := &offer.CancelMsg{Metadata: &barter.Metadata{Schema: 1}, OfferID: 1}

	_, err = n.deliver(n.signedTx(nil, cancel))
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = n.deliver(n.signedTx(bob, cancel))
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 1, n.count("/offers", offer.IDKey(1)))

	_, err = n.deliver(n.signedTx(alice, cancel))
	require.NoError(t, err)
	assert.Equal(t, []asset.Asset{punk}, n.holdings(aliceAddr))
	assert.Empty(t, n.holdings(offer.CustodyAddress(1)))
	assert.Equal(t, 0, n.count("/offers/creator", aliceAddr))
	assert.Equal(t, 0, n.count("/offers/wanted", bob.PublicKey().Address()))

	_, err = n.deliver(n.signedTx(alice, cancel))
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestSendAndCheck(t *testing.T) {
	alice := crypto.GenPrivKeyEd25519()
	aliceAddr := alice.PublicKey().Address()
	bobAddr := crypto.GenPrivKeyEd25519().PublicKey().Address()

	n := newNode(t, map[string][]asset.Asset{
		aliceAddr.String(): {asset.NewAsset("IOV", 0, 10)},
	})

	ten := asset.NewAsset("IOV", 0, 10)
	send := n.signedTx(alice, &vault.SendMsg{
		Metadata:    &barter.Metadata{Schema: 1},
		Source:      aliceAddr,
		Destination: bobAddr,
		Asset:       &ten,
	})

	// check does not touch the delivered state
	_, err := n.app.CheckTx(send)
	require.NoError(t, err)
	assert.Equal(t, []asset.Asset{ten}, n.holdings(aliceAddr))

	_, err = n.deliver(send)
	require.NoError(t, err)
	assert.Equal(t, []asset.Asset{ten}, n.holdings(bobAddr))
	assert.Empty(t, n.holdings(aliceAddr))

	_, err = n.app.CheckTx([]byte("not a transaction"))
	assert.True(t, errors.ErrInput.Is(err))
}

func TestTxMessages(t *testing.T) {
	var tx Tx
	_, err := tx.GetMsg()
	assert.True(t, errors.ErrState.Is(err))

	create := &offer.CreateMsg{Metadata: &barter.Metadata{Schema: 1}}
	require.NoError(t, tx.SetMsg(create))
	msg, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, create, msg)

	bump := &sigs.BumpSequenceMsg{Metadata: &barter.Metadata{Schema: 1}, Increment: 2}
	require.NoError(t, tx.SetMsg(bump))
	msg, err = tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, bump, msg)

	tx.CreateOfferMsg = create
	_, err = tx.GetMsg()
	assert.True(t, errors.ErrInput.Is(err))

	raw, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := TxDecoder(raw)
	require.NoError(t, err)
	_, err = decoded.GetMsg()
	assert.True(t, errors.ErrInput.Is(err))

	assert.True(t, errors.ErrType.Is(tx.SetMsg(nil)))
}

func TestGenInitOptions(t *testing.T) {
	_, err := GenInitOptions(map[string][]asset.Asset{"1234": nil})
	assert.True(t, errors.ErrInput.Is(err))

	_, err = GenInitOptions(map[string][]asset.Asset{"": nil})
	assert.True(t, errors.ErrEmpty.Is(err))

	raw, err := GenInitOptions(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"vault": []}`, string(raw))
}
