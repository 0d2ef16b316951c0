package offer

import (
	proto "github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/codec"
)

// Offer is an active swap proposal. The deposited asset is held by the
// offer custody address until the offer is cancelled or accepted.
type Offer struct {
	Metadata *barter.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Creator  barter.Address   `protobuf:"bytes,2,opt,name=creator,proto3,casttype=github.com/iov-one/barter.Address" json:"creator,omitempty"`
	// Offered is the deposited non fungible asset.
	Offered *asset.Asset `protobuf:"bytes,3,opt,name=offered,proto3" json:"offered,omitempty"`
	// Requested is the exact asset the creator accepts as payment.
	Requested *asset.Asset `protobuf:"bytes,4,opt,name=requested,proto3" json:"requested,omitempty"`
	// Counterparty is the address the offer is made for.
	Counterparty barter.Address `protobuf:"bytes,5,opt,name=counterparty,proto3,casttype=github.com/iov-one/barter.Address" json:"counterparty,omitempty"`
}

func (m *Offer) Reset()         { *m = Offer{} }
func (m *Offer) String() string { return proto.CompactTextString(m) }
func (*Offer) ProtoMessage()    {}

func (m *Offer) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	if m.Metadata != nil {
		e.Message(1, m.Metadata)
	}
	e.Bytes(2, m.Creator)
	if m.Offered != nil {
		e.Message(3, m.Offered)
	}
	if m.Requested != nil {
		e.Message(4, m.Requested)
	}
	e.Bytes(5, m.Counterparty)
	return e.Result()
}

func (m *Offer) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Metadata = &barter.Metadata{}
			err = f.Message(m.Metadata)
		case 2:
			m.Creator, err = f.Bytes()
		case 3:
			m.Offered = &asset.Asset{}
			err = f.Message(m.Offered)
		case 4:
			m.Requested = &asset.Asset{}
			err = f.Message(m.Requested)
		case 5:
			m.Counterparty, err = f.Bytes()
		}
		return err
	})
}

// CreateMsg deposits an asset and publishes an offer for it.
type CreateMsg struct {
	Metadata     *barter.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Deposit      *asset.Asset     `protobuf:"bytes,2,opt,name=deposit,proto3" json:"deposit,omitempty"`
	Requested    *asset.Asset     `protobuf:"bytes,3,opt,name=requested,proto3" json:"requested,omitempty"`
	Counterparty barter.Address   `protobuf:"bytes,4,opt,name=counterparty,proto3,casttype=github.com/iov-one/barter.Address" json:"counterparty,omitempty"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

func (m *CreateMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	if m.Metadata != nil {
		e.Message(1, m.Metadata)
	}
	if m.Deposit != nil {
		e.Message(2, m.Deposit)
	}
	if m.Requested != nil {
		e.Message(3, m.Requested)
	}
	e.Bytes(4, m.Counterparty)
	return e.Result()
}

func (m *CreateMsg) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Metadata = &barter.Metadata{}
			err = f.Message(m.Metadata)
		case 2:
			m.Deposit = &asset.Asset{}
			err = f.Message(m.Deposit)
		case 3:
			m.Requested = &asset.Asset{}
			err = f.Message(m.Requested)
		case 4:
			m.Counterparty, err = f.Bytes()
		}
		return err
	})
}

// CancelMsg withdraws an offer and returns the deposit to its creator.
type CancelMsg struct {
	Metadata *barter.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	OfferID  uint32           `protobuf:"varint,2,opt,name=offer_id,json=offerId,proto3" json:"offer_id,omitempty"`
}

func (m *CancelMsg) Reset()         { *m = CancelMsg{} }
func (m *CancelMsg) String() string { return proto.CompactTextString(m) }
func (*CancelMsg) ProtoMessage()    {}

func (m *CancelMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	if m.Metadata != nil {
		e.Message(1, m.Metadata)
	}
	e.Uint32(2, m.OfferID)
	return e.Result()
}

func (m *CancelMsg) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Metadata = &barter.Metadata{}
			err = f.Message(m.Metadata)
		case 2:
			m.OfferID, err = f.Uint32()
		}
		return err
	})
}

// AcceptMsg pays the requested asset and receives the deposit.
type AcceptMsg struct {
	Metadata *barter.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	OfferID  uint32           `protobuf:"varint,2,opt,name=offer_id,json=offerId,proto3" json:"offer_id,omitempty"`
	Payment  *asset.Asset     `protobuf:"bytes,3,opt,name=payment,proto3" json:"payment,omitempty"`
}

func (m *AcceptMsg) Reset()         { *m = AcceptMsg{} }
func (m *AcceptMsg) String() string { return proto.CompactTextString(m) }
func (*AcceptMsg) ProtoMessage()    {}

func (m *AcceptMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	if m.Metadata != nil {
		e.Message(1, m.Metadata)
	}
	e.Uint32(2, m.OfferID)
	if m.Payment != nil {
		e.Message(3, m.Payment)
	}
	return e.Result()
}

func (m *AcceptMsg) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Metadata = &barter.Metadata{}
			err = f.Message(m.Metadata)
		case 2:
			m.OfferID, err = f.Uint32()
		case 3:
			m.Payment = &asset.Asset{}
			err = f.Message(m.Payment)
		}
		return err
	})
}

func init() {
	proto.RegisterType((*Offer)(nil), "offer.Offer")
	proto.RegisterType((*CreateMsg)(nil), "offer.CreateMsg")
	proto.RegisterType((*CancelMsg)(nil), "offer.CancelMsg")
	proto.RegisterType((*AcceptMsg)(nil), "offer.AcceptMsg")
}
