package asset

import (
	proto "github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter/codec"
)

// Asset is an amount of a given ticker. A non zero nonce selects a single
// instance of a non fungible collection.
type Asset struct {
	Ticker   string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Nonce    uint64 `protobuf:"varint,2,opt,name=nonce,proto3" json:"nonce,omitempty"`
	Quantity uint64 `protobuf:"varint,3,opt,name=quantity,proto3" json:"quantity,omitempty"`
}

func (m *Asset) Reset()         { *m = Asset{} }
func (m *Asset) String() string { return proto.CompactTextString(m) }
func (*Asset) ProtoMessage()    {}

func (m *Asset) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.String(1, m.Ticker)
	e.Uint64(2, m.Nonce)
	e.Uint64(3, m.Quantity)
	return e.Result()
}

func (m *Asset) Unmarshal(b []byte) error {
	m.Reset()
	return codec.Decode(b, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Ticker, err = f.String()
		case 2:
			m.Nonce, err = f.Uint64()
		case 3:
			m.Quantity, err = f.Uint64()
		}
		return err
	})
}

func init() {
	proto.RegisterType((*Asset)(nil), "asset.Asset")
}
