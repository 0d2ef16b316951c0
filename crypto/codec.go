package crypto

import (
	proto "github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter/codec"
)

// PublicKey holds the raw bytes of an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PublicKey) Reset()         { *m = PublicKey{} }
func (m *PublicKey) String() string { return proto.CompactTextString(m) }
func (*PublicKey) ProtoMessage()    {}

// GetEd25519 returns the key bytes, nil safe.
func (m *PublicKey) GetEd25519() []byte {
	if m != nil {
		return m.Ed25519
	}
	return nil
}

func (m *PublicKey) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, m.Ed25519)
	return e.Result()
}

func (m *PublicKey) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		if f.Num == 1 {
			m.Ed25519, err = f.Bytes()
		}
		return err
	})
}

// PrivateKey holds the raw bytes of an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PrivateKey) Reset()         { *m = PrivateKey{} }
func (m *PrivateKey) String() string { return "PrivateKey{...}" }
func (*PrivateKey) ProtoMessage()    {}

// GetEd25519 returns the key bytes, nil safe.
func (m *PrivateKey) GetEd25519() []byte {
	if m != nil {
		return m.Ed25519
	}
	return nil
}

func (m *PrivateKey) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, m.Ed25519)
	return e.Result()
}

func (m *PrivateKey) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		if f.Num == 1 {
			m.Ed25519, err = f.Bytes()
		}
		return err
	})
}

// Signature holds the raw bytes of an ed25519 signature.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *Signature) Reset()         { *m = Signature{} }
func (m *Signature) String() string { return proto.CompactTextString(m) }
func (*Signature) ProtoMessage()    {}

// GetEd25519 returns the signature bytes, nil safe.
func (m *Signature) GetEd25519() []byte {
	if m != nil {
		return m.Ed25519
	}
	return nil
}

func (m *Signature) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, m.Ed25519)
	return e.Result()
}

func (m *Signature) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		if f.Num == 1 {
			m.Ed25519, err = f.Bytes()
		}
		return err
	})
}

func init() {
	proto.RegisterType((*PublicKey)(nil), "crypto.PublicKey")
	proto.RegisterType((*PrivateKey)(nil), "crypto.PrivateKey")
	proto.RegisterType((*Signature)(nil), "crypto.Signature")
}
