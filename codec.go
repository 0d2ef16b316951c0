package barter

import (
	proto "github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter/codec"
)

// Message types in this file follow codec.proto.

// Metadata is present as the first field of every persisted model and
// message, so that the schema version can be tracked.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}

func (m *Metadata) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Uint32(1, m.Schema)
	return e.Result()
}

func (m *Metadata) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Schema, err = f.Uint32()
		}
		return err
	})
}

func init() {
	proto.RegisterType((*Metadata)(nil), "barter.Metadata")
}
