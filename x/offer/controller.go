package offer

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
	"github.com/iov-one/barter/x/vault"
)

// Listing is an active offer together with its id.
type Listing struct {
	ID    uint32 `json:"id"`
	Offer *Offer `json:"offer"`
}

// Controller manages the offer lifecycle. Each operation either completes
// or fails before modifying the store, except for failures of the
// underlying store itself which are left to the surrounding transaction.
type Controller interface {
	// Create stores a new offer and moves the deposit from the creator into
	// the offer custody. It returns the id of the new offer.
	Create(db barter.KVStore, creator barter.Address, deposit, requested asset.Asset, counterparty barter.Address) (uint32, error)

	// Cancel removes the offer and returns the deposit to the creator.
	// Only the creator can cancel an offer.
	Cancel(db barter.KVStore, caller barter.Address, id uint32) (*Offer, error)

	// Accept removes the offer, moves the deposit to the fulfiller and
	// the payment to the creator. Payment must equal the requested asset.
	Accept(db barter.KVStore, fulfiller barter.Address, id uint32, payment asset.Asset) (*Offer, error)

	// Get returns the offer with given id or errors.ErrNotFound.
	Get(db barter.ReadOnlyKVStore, id uint32) (*Offer, error)
}

// NewController returns a Controller storing offers in given bucket and
// moving assets with given vault.
func NewController(b orm.ModelBucket, bank vault.Controller) Controller {
	return controller{bucket: b, bank: bank}
}

type controller struct {
	bucket orm.ModelBucket
	bank   vault.Controller
}

var _ Controller = controller{}

func (c controller) Create(db barter.KVStore, creator barter.Address, deposit, requested asset.Asset, counterparty barter.Address) (uint32, error) {
	if err := validateDeposit(&deposit); err != nil {
		return 0, errors.Wrap(err, "deposit")
	}
	if err := validateRequested(&requested); err != nil {
		return 0, errors.Wrap(err, "requested")
	}
	if err := creator.Validate(); err != nil {
		return 0, errors.Wrap(err, "creator")
	}
	if err := counterparty.Validate(); err != nil {
		return 0, errors.Wrap(err, "counterparty")
	}
	if err := c.holds(db, creator, deposit); err != nil {
		return 0, err
	}

	id, err := nextID(db)
	if err != nil {
		return 0, err
	}
	offer := &Offer{
		Metadata:     &barter.Metadata{Schema: 1},
		Creator:      creator,
		Offered:      &deposit,
		Requested:    &requested,
		Counterparty: counterparty,
	}
	if _, err := c.bucket.Put(db, IDKey(id), offer); err != nil {
		return 0, errors.Wrap(err, "cannot store offer")
	}
	if err := c.bank.MoveAsset(db, creator, CustodyAddress(id), deposit); err != nil {
		return 0, errors.Wrap(err, "cannot deposit")
	}
	return id, nil
}

// holds returns errors.ErrAmount unless addr owns the asset.
func (c controller) holds(db barter.ReadOnlyKVStore, addr barter.Address, a asset.Asset) error {
	balance, err := c.bank.Balance(db, addr)
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	for _, b := range balance {
		if b.SameType(&a) {
			if b.Quantity >= a.Quantity {
				return nil
			}
			break
		}
	}
	return errors.Wrapf(errors.ErrAmount, "%s does not hold %s", addr, a.Format())
}

func (c controller) Cancel(db barter.KVStore, caller barter.Address, id uint32) (*Offer, error) {
	offer, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	if !offer.Creator.Equals(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "offer %d can be cancelled only by its creator", id)
	}

	if err := c.bucket.Delete(db, IDKey(id)); err != nil {
		return nil, errors.Wrap(err, "cannot delete offer")
	}
	if err := c.bank.MoveAsset(db, CustodyAddress(id), offer.Creator, *offer.Offered); err != nil {
		return nil, errors.Wrap(err, "cannot return deposit")
	}
	return offer, nil
}

func (c controller) Accept(db barter.KVStore, fulfiller barter.Address, id uint32, payment asset.Asset) (*Offer, error) {
	offer, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	if !offer.Requested.Equals(&payment) {
		return nil, errors.Wrapf(ErrPaymentMismatch, "offer %d requests %s, got %s",
			id, offer.Requested.Format(), payment.Format())
	}
	if err := fulfiller.Validate(); err != nil {
		return nil, errors.Wrap(err, "fulfiller")
	}

	// The payment is the only move that can fail on user input, so it
	// goes first.
	if err := c.bank.MoveAsset(db, fulfiller, offer.Creator, payment); err != nil {
		return nil, errors.Wrap(err, "cannot pay")
	}
	if err := c.bucket.Delete(db, IDKey(id)); err != nil {
		return nil, errors.Wrap(err, "cannot delete offer")
	}
	if err := c.bank.MoveAsset(db, CustodyAddress(id), fulfiller, *offer.Offered); err != nil {
		return nil, errors.Wrap(err, "cannot release deposit")
	}
	return offer, nil
}

func (c controller) Get(db barter.ReadOnlyKVStore, id uint32) (*Offer, error) {
	var offer Offer
	if err := c.bucket.One(db, IDKey(id), &offer); err != nil {
		return nil, errors.Wrapf(err, "offer %d", id)
	}
	return &offer, nil
}

// CreatedOffers returns all active offers created by given address,
// ordered by id.
func CreatedOffers(db barter.ReadOnlyKVStore, addr barter.Address) ([]Listing, error) {
	return listByIndex(db, NewBucket(), CreatorIndex, addr)
}

// WantedOffers returns all active offers made for given counterparty
// address, ordered by id.
func WantedOffers(db barter.ReadOnlyKVStore, addr barter.Address) ([]Listing, error) {
	return listByIndex(db, NewBucket(), WantedIndex, addr)
}

func listByIndex(db barter.ReadOnlyKVStore, b orm.ModelBucket, index string, addr barter.Address) ([]Listing, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	var offers []*Offer
	keys, err := b.ByIndex(db, index, addr, &offers)
	if err != nil {
		return nil, errors.Wrapf(err, "%s index", index)
	}
	res := make([]Listing, len(keys))
	for i, key := range keys {
		id, err := ParseID(key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrModel, err.Error())
		}
		res[i] = Listing{ID: id, Offer: offers[i]}
	}
	return res, nil
}
