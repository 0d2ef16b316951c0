package vault

import (
	"sort"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// BucketName is where the holdings are stored.
const BucketName = "vault"

var _ orm.Model = (*Holdings)(nil)

// Validate requires all assets to be valid, positive and sorted without
// duplicates.
func (h *Holdings) Validate() error {
	if err := h.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	for i, a := range h.Assets {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "asset %d", i)
		}
		if a.IsZero() {
			return errors.Wrapf(errors.ErrAmount, "asset %d: zero quantity", i)
		}
		if i > 0 && h.Assets[i-1].Compare(*a) >= 0 {
			return errors.Wrapf(errors.ErrState, "asset %d: not sorted", i)
		}
	}
	return nil
}

// Copy returns a deep copy of the holdings.
func (h *Holdings) Copy() orm.CloneableData {
	assets := make([]*asset.Asset, len(h.Assets))
	for i, a := range h.Assets {
		cpy := *a
		assets[i] = &cpy
	}
	return &Holdings{
		Metadata: h.Metadata.Copy(),
		Assets:   assets,
	}
}

// find returns the position where the ticker and nonce of a are or should
// be, and whether they are present.
func (h *Holdings) find(a asset.Asset) (int, bool) {
	i := sort.Search(len(h.Assets), func(i int) bool {
		return h.Assets[i].Compare(a) >= 0
	})
	return i, i < len(h.Assets) && h.Assets[i].Compare(a) == 0
}

// Add puts the asset into the holdings, summing the quantity with any
// existing asset of the same ticker and nonce.
func (h *Holdings) Add(a asset.Asset) error {
	if a.IsZero() {
		return nil
	}
	i, ok := h.find(a)
	if ok {
		sum, err := h.Assets[i].Add(a)
		if err != nil {
			return err
		}
		h.Assets[i] = &sum
		return nil
	}
	h.Assets = append(h.Assets, nil)
	copy(h.Assets[i+1:], h.Assets[i:])
	h.Assets[i] = &a
	return nil
}

// Subtract takes the asset out of the holdings. Asking for more than is
// held returns errors.ErrAmount.
func (h *Holdings) Subtract(a asset.Asset) error {
	i, ok := h.find(a)
	if !ok {
		return errors.Wrapf(errors.ErrAmount, "%s not held", a.ID())
	}
	rest, err := h.Assets[i].Subtract(a)
	if err != nil {
		return err
	}
	if rest.IsZero() {
		h.Assets = append(h.Assets[:i], h.Assets[i+1:]...)
		return nil
	}
	h.Assets[i] = &rest
	return nil
}

// Contains returns true if at least the given quantity is held.
func (h *Holdings) Contains(a asset.Asset) bool {
	i, ok := h.find(a)
	return ok && h.Assets[i].Quantity >= a.Quantity
}

// NewHoldings returns holdings with given assets, merging duplicates.
func NewHoldings(assets ...asset.Asset) (*Holdings, error) {
	h := &Holdings{Metadata: &barter.Metadata{Schema: 1}}
	for _, a := range assets {
		if err := h.Add(a); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// NewBucket returns a bucket of holdings keyed by owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Holdings{})
}
