package offer

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

const (
	// BucketName is where the offers are stored.
	BucketName = "offer"

	// CreatorIndex lists offers by the address that created them.
	CreatorIndex = "creator"
	// WantedIndex lists offers by the counterparty they were made for.
	WantedIndex = "wanted"
)

var _ orm.Model = (*Offer)(nil)

// Validate ensures the offer is valid
func (o *Offer) Validate() error {
	if err := o.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := o.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if err := validateDeposit(o.Offered); err != nil {
		return errors.Wrap(err, "offered")
	}
	if err := validateRequested(o.Requested); err != nil {
		return errors.Wrap(err, "requested")
	}
	if err := o.Counterparty.Validate(); err != nil {
		return errors.Wrap(err, "counterparty")
	}
	return nil
}

// Copy returns a deep copy of the offer.
func (o *Offer) Copy() orm.CloneableData {
	return &Offer{
		Metadata:     o.Metadata.Copy(),
		Creator:      o.Creator.Clone(),
		Offered:      copyAsset(o.Offered),
		Requested:    copyAsset(o.Requested),
		Counterparty: o.Counterparty.Clone(),
	}
}

func copyAsset(a *asset.Asset) *asset.Asset {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}

// validateDeposit accepts only a single unit of a non fungible asset.
func validateDeposit(a *asset.Asset) error {
	if a == nil {
		return errors.Wrap(ErrInvalidDeposit, "missing")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.IsNFT() {
		return errors.Wrapf(ErrInvalidDeposit, "%s is not a single non fungible asset", a.Format())
	}
	return nil
}

func validateRequested(a *asset.Asset) error {
	if a == nil {
		return errors.Wrap(errors.ErrEmpty, "missing")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if a.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero quantity")
	}
	return nil
}

// IDKey returns the database key of the offer with given id.
func IDKey(id uint32) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, id)
	return key
}

// ParseID is the inverse of IDKey.
func ParseID(key []byte) (uint32, error) {
	if len(key) != 4 {
		return 0, errors.Wrapf(errors.ErrInput, "offer key is %d bytes, expected 4", len(key))
	}
	return binary.BigEndian.Uint32(key), nil
}

// Condition returns the condition owning the deposit of the offer stored
// under given key.
func Condition(key []byte) barter.Condition {
	return barter.NewCondition(BucketName, "seq", key)
}

// CustodyAddress returns the address holding the deposit of given offer.
func CustodyAddress(id uint32) barter.Address {
	return Condition(IDKey(id)).Address()
}

func toOffer(obj orm.Object) (*Offer, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot index nil")
	}
	o, ok := obj.Value().(*Offer)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "can only index offer, got %T", obj.Value())
	}
	return o, nil
}

func idxCreator(obj orm.Object) ([]byte, error) {
	o, err := toOffer(obj)
	if err != nil {
		return nil, err
	}
	return o.Creator, nil
}

func idxWanted(obj orm.Object) ([]byte, error) {
	o, err := toOffer(obj)
	if err != nil {
		return nil, err
	}
	return o.Counterparty, nil
}

// NewBucket returns a bucket storing offers under their IDKey, indexed by
// creator and counterparty.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Offer{},
		orm.WithIndex(CreatorIndex, idxCreator),
		orm.WithIndex(WantedIndex, idxWanted),
	)
}

// CountOffers returns the number of active offers.
func CountOffers(db barter.ReadOnlyKVStore) (int, error) {
	// ';' follows ':' so the range covers exactly the bucket prefix.
	it, err := db.Iterator([]byte(BucketName+":"), []byte(BucketName+";"))
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Release()

	var n int
	for {
		switch _, _, err := it.Next(); {
		case err == nil:
			n++
		case errors.ErrIteratorDone.Is(err):
			return n, nil
		default:
			return 0, errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
}

// idSequence returns the counter of offer ids. It starts at zero and is
// incremented before use, so the first offer has id 1.
func idSequence() orm.Sequence {
	return orm.NewSequence(BucketName, orm.SeqID)
}

// nextID allocates a new offer id. Ids are never reused.
func nextID(db barter.KVStore) (uint32, error) {
	seq := idSequence()
	n, err := seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "id sequence")
	}
	if n > math.MaxUint32 {
		return 0, errors.Wrap(errors.ErrOverflow, "offer id")
	}
	return uint32(n), nil
}
