package app

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/offer"
	"github.com/iov-one/barter/x/sigs"
	"github.com/iov-one/barter/x/vault"
)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (barter.Tx, error) {
	tx := new(Tx)
	err := tx.Unmarshal(bz)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ barter.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the only message set on the transaction.
func (tx *Tx) GetMsg() (barter.Msg, error) {
	var msgs []barter.Msg
	if tx.CreateOfferMsg != nil {
		msgs = append(msgs, tx.CreateOfferMsg)
	}
	if tx.CancelOfferMsg != nil {
		msgs = append(msgs, tx.CancelOfferMsg)
	}
	if tx.AcceptOfferMsg != nil {
		msgs = append(msgs, tx.AcceptOfferMsg)
	}
	if tx.SendMsg != nil {
		msgs = append(msgs, tx.SendMsg)
	}
	if tx.BumpSequenceMsg != nil {
		msgs = append(msgs, tx.BumpSequenceMsg)
	}

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrState, "message not set")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "%d messages set", len(msgs))
	}
}

// SetMsg sets given message on the transaction. Any previously set message
// is dropped.
func (tx *Tx) SetMsg(msg barter.Msg) error {
	tx.CreateOfferMsg = nil
	tx.CancelOfferMsg = nil
	tx.AcceptOfferMsg = nil
	tx.SendMsg = nil
	tx.BumpSequenceMsg = nil

	switch m := msg.(type) {
	case *offer.CreateMsg:
		tx.CreateOfferMsg = m
	case *offer.CancelMsg:
		tx.CancelOfferMsg = m
	case *offer.AcceptMsg:
		tx.AcceptOfferMsg = m
	case *vault.SendMsg:
		tx.SendMsg = m
	case *sigs.BumpSequenceMsg:
		tx.BumpSequenceMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}
