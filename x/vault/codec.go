package vault

import (
	proto "github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/asset"
	"github.com/iov-one/barter/codec"
)

// Holdings is the list of assets owned by a single address. The address is
// the key under which the holdings are stored.
type Holdings struct {
	Metadata *barter.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Assets is sorted by ticker and nonce, with no duplicates and no zero
	// quantities.
	Assets []*asset.Asset `protobuf:"bytes,2,rep,name=assets,proto3" json:"assets,omitempty"`
}

func (m *Holdings) Reset()         { *m = Holdings{} }
func (m *Holdings) String() string { return proto.CompactTextString(m) }
func (*Holdings) ProtoMessage()    {}

func (m *Holdings) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	if m.Metadata != nil {
		e.Message(1, m.Metadata)
	}
	for _, a := range m.Assets {
		e.Message(2, a)
	}
	return e.Result()
}

func (m *Holdings) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		switch f.Num {
		case 1:
			m.Metadata = &barter.Metadata{}
			return f.Message(m.Metadata)
		case 2:
			var a asset.Asset
			if err := f.Message(&a); err != nil {
				return err
			}
			m.Assets = append(m.Assets, &a)
		}
		return nil
	})
}

// SendMsg moves an asset from the source to the destination address.
type SendMsg struct {
	Metadata    *barter.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Source      barter.Address   `protobuf:"bytes,2,opt,name=source,proto3,casttype=github.com/iov-one/barter.Address" json:"source,omitempty"`
	Destination barter.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/iov-one/barter.Address" json:"destination,omitempty"`
	Asset       *asset.Asset     `protobuf:"bytes,4,opt,name=asset,proto3" json:"asset,omitempty"`
	// Memo is an optional human readable message.
	Memo string `protobuf:"bytes,5,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

func (m *SendMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	if m.Metadata != nil {
		e.Message(1, m.Metadata)
	}
	e.Bytes(2, m.Source)
	e.Bytes(3, m.Destination)
	if m.Asset != nil {
		e.Message(4, m.Asset)
	}
	e.String(5, m.Memo)
	return e.Result()
}

func (m *SendMsg) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Metadata = &barter.Metadata{}
			err = f.Message(m.Metadata)
		case 2:
			m.Source, err = f.Bytes()
		case 3:
			m.Destination, err = f.Bytes()
		case 4:
			m.Asset = &asset.Asset{}
			err = f.Message(m.Asset)
		case 5:
			m.Memo, err = f.String()
		}
		return err
	})
}

func init() {
	proto.RegisterType((*Holdings)(nil), "vault.Holdings")
	proto.RegisterType((*SendMsg)(nil), "vault.SendMsg")
}
