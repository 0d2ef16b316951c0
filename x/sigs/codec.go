package sigs

import (
	proto "github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/crypto"
)

// UserData just stores the data and is used for serialization.
// Key is the Address (PubKey.Permission().Address())
//
// Note: This should not be created from outside the module,
// User is the entry point you want
type UserData struct {
	Metadata *barter.Metadata  `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Pubkey   *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

func (m *UserData) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	if m.Metadata != nil {
		e.Message(1, m.Metadata)
	}
	if m.Pubkey != nil {
		e.Message(2, m.Pubkey)
	}
	e.Int64(3, m.Sequence)
	return e.Result()
}

func (m *UserData) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Metadata = &barter.Metadata{}
			err = f.Message(m.Metadata)
		case 2:
			m.Pubkey = &crypto.PublicKey{}
			err = f.Message(m.Pubkey)
		case 3:
			m.Sequence, err = f.Int64()
		}
		return err
	})
}

// StdSignature represents the signature, the identity of the signer
// (the Pubkey), and a sequence number to prevent replay attacks.
//
// A given signer must submit transactions with the sequence number
// increasing by 1 each time (starting at 0)
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,4,opt,name=signature,proto3" json:"signature,omitempty"`
}

func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return proto.CompactTextString(m) }
func (*StdSignature) ProtoMessage()    {}

// GetSequence returns the sequence, nil safe.
func (m *StdSignature) GetSequence() int64 {
	if m != nil {
		return m.Sequence
	}
	return 0
}

func (m *StdSignature) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Int64(1, m.Sequence)
	if m.Pubkey != nil {
		e.Message(2, m.Pubkey)
	}
	if m.Signature != nil {
		e.Message(4, m.Signature)
	}
	return e.Result()
}

func (m *StdSignature) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Sequence, err = f.Int64()
		case 2:
			m.Pubkey = &crypto.PublicKey{}
			err = f.Message(m.Pubkey)
		case 4:
			m.Signature = &crypto.Signature{}
			err = f.Message(m.Signature)
		}
		return err
	})
}

// BumpSequenceMsg increments the sequence of the main signer by more than
// the one a transaction already adds.
type BumpSequenceMsg struct {
	Metadata *barter.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Increment is the amount the sequence is bumped by. Must be between 1
	// and 1000.
	Increment uint32 `protobuf:"varint,2,opt,name=increment,proto3" json:"increment,omitempty"`
}

func (m *BumpSequenceMsg) Reset()         { *m = BumpSequenceMsg{} }
func (m *BumpSequenceMsg) String() string { return proto.CompactTextString(m) }
func (*BumpSequenceMsg) ProtoMessage()    {}

func (m *BumpSequenceMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	if m.Metadata != nil {
		e.Message(1, m.Metadata)
	}
	e.Uint32(2, m.Increment)
	return e.Result()
}

func (m *BumpSequenceMsg) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Metadata = &barter.Metadata{}
			err = f.Message(m.Metadata)
		case 2:
			m.Increment, err = f.Uint32()
		}
		return err
	})
}

func init() {
	proto.RegisterType((*UserData)(nil), "sigs.UserData")
	proto.RegisterType((*StdSignature)(nil), "sigs.StdSignature")
	proto.RegisterType((*BumpSequenceMsg)(nil), "sigs.BumpSequenceMsg")
}
