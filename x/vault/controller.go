package vault

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// Controller is the custody functionality other extensions depend on.
type Controller interface {
	// Balance returns all assets held by given address, sorted by ticker
	// and nonce.
	Balance(db barter.ReadOnlyKVStore, addr barter.Address) ([]asset.Asset, error)

	// MoveAsset transfers the asset from src to dst. It fails with
	// errors.ErrAmount if src does not hold enough of it.
	MoveAsset(db barter.KVStore, src, dst barter.Address, a asset.Asset) error

	// Issue creates a new asset owned by dst.
	Issue(db barter.KVStore, dst barter.Address, a asset.Asset) error
}

// NewController returns a Controller storing holdings in given bucket.
func NewController(b orm.ModelBucket) Controller {
	return controller{bucket: b}
}

type controller struct {
	bucket orm.ModelBucket
}

var _ Controller = controller{}

func (c controller) Balance(db barter.ReadOnlyKVStore, addr barter.Address) ([]asset.Asset, error) {
	h, err := c.load(db, addr)
	if err != nil {
		return nil, err
	}
	if len(h.Assets) == 0 {
		return nil, nil
	}
	res := make([]asset.Asset, len(h.Assets))
	for i, a := range h.Assets {
		res[i] = *a
	}
	return res, nil
}

func (c controller) MoveAsset(db barter.KVStore, src, dst barter.Address, a asset.Asset) error {
	if err := checkAsset(a); err != nil {
		return err
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dst.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	from, err := c.load(db, src)
	if err != nil {
		return err
	}
	if err := from.Subtract(a); err != nil {
		return errors.Wrapf(err, "source %s", src)
	}
	if src.Equals(dst) {
		return nil
	}

	// Both sides are updated in memory before anything is written.
	to, err := c.load(db, dst)
	if err != nil {
		return err
	}
	if err := to.Add(a); err != nil {
		return errors.Wrapf(err, "destination %s", dst)
	}
	if err := c.save(db, src, from); err != nil {
		return err
	}
	return c.save(db, dst, to)
}

func (c controller) Issue(db barter.KVStore, dst barter.Address, a asset.Asset) error {
	if err := checkAsset(a); err != nil {
		return err
	}
	if err := dst.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	to, err := c.load(db, dst)
	if err != nil {
		return err
	}
	if err := to.Add(a); err != nil {
		return err
	}
	return c.save(db, dst, to)
}

func checkAsset(a asset.Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero quantity")
	}
	return nil
}

// load returns the holdings of given address, or empty holdings if none
// are stored.
func (c controller) load(db barter.ReadOnlyKVStore, addr barter.Address) (*Holdings, error) {
	var h Holdings
	switch err := c.bucket.One(db, addr, &h); {
	case err == nil:
		return &h, nil
	case errors.ErrNotFound.Is(err):
		return &Holdings{Metadata: &barter.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "cannot load holdings")
	}
}

// save stores the holdings, deleting the entry once nothing is held.
func (c controller) save(db barter.KVStore, addr barter.Address, h *Holdings) error {
	if len(h.Assets) == 0 {
		err := c.bucket.Delete(db, addr)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	if _, err := c.bucket.Put(db, addr, h); err != nil {
		return errors.Wrap(err, "cannot save holdings")
	}
	return nil
}
