package app

import (
	proto "github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/x/offer"
	"github.com/iov-one/barter/x/sigs"
	"github.com/iov-one/barter/x/vault"
)

// Tx contains the message. Exactly one message field must be set.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`

	CreateOfferMsg  *offer.CreateMsg      `protobuf:"bytes,10,opt,name=create_offer_msg,json=createOfferMsg,proto3" json:"create_offer_msg,omitempty"`
	CancelOfferMsg  *offer.CancelMsg      `protobuf:"bytes,11,opt,name=cancel_offer_msg,json=cancelOfferMsg,proto3" json:"cancel_offer_msg,omitempty"`
	AcceptOfferMsg  *offer.AcceptMsg      `protobuf:"bytes,12,opt,name=accept_offer_msg,json=acceptOfferMsg,proto3" json:"accept_offer_msg,omitempty"`
	SendMsg         *vault.SendMsg        `protobuf:"bytes,13,opt,name=send_msg,json=sendMsg,proto3" json:"send_msg,omitempty"`
	BumpSequenceMsg *sigs.BumpSequenceMsg `protobuf:"bytes,14,opt,name=bump_sequence_msg,json=bumpSequenceMsg,proto3" json:"bump_sequence_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// GetSignatures returns the signatures, nil safe.
func (m *Tx) GetSignatures() []*sigs.StdSignature {
	if m != nil {
		return m.Signatures
	}
	return nil
}

func (m *Tx) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	for _, s := range m.Signatures {
		if s != nil {
			e.Message(1, s)
		}
	}
	if m.CreateOfferMsg != nil {
		e.Message(10, m.CreateOfferMsg)
	}
	if m.CancelOfferMsg != nil {
		e.Message(11, m.CancelOfferMsg)
	}
	if m.AcceptOfferMsg != nil {
		e.Message(12, m.AcceptOfferMsg)
	}
	if m.SendMsg != nil {
		e.Message(13, m.SendMsg)
	}
	if m.BumpSequenceMsg != nil {
		e.Message(14, m.BumpSequenceMsg)
	}
	return e.Result()
}

func (m *Tx) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			s := &sigs.StdSignature{}
			if err = f.Message(s); err == nil {
				m.Signatures = append(m.Signatures, s)
			}
		case 10:
			m.CreateOfferMsg = &offer.CreateMsg{}
			err = f.Message(m.CreateOfferMsg)
		case 11:
			m.CancelOfferMsg = &offer.CancelMsg{}
			err = f.Message(m.CancelOfferMsg)
		case 12:
			m.AcceptOfferMsg = &offer.AcceptMsg{}
			err = f.Message(m.AcceptOfferMsg)
		case 13:
			m.SendMsg = &vault.SendMsg{}
			err = f.Message(m.SendMsg)
		case 14:
			m.BumpSequenceMsg = &sigs.BumpSequenceMsg{}
			err = f.Message(m.BumpSequenceMsg)
		}
		return err
	})
}

func init() {
	proto.RegisterType((*Tx)(nil), "barterd.Tx")
}
