package weavetest

import "github.com/iov-one/barter"

// Tx carries a single message through a handler stack without any
// encoding or signatures.
type Tx struct {
	Msg barter.Msg
	// Err is returned by GetMsg instead of the message.
	Err error
}

var _ barter.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (barter.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Msg == nil {
		return nil, tx.Err
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if tx.Msg == nil {
		tx.Msg = &Msg{}
	}
	return tx.Msg.Unmarshal(raw)
}

// Msg is a message routed by its path. Its serialized form is the raw
// payload it was created with.
type Msg struct {
	RoutePath  string
	Serialized []byte
	// Err is returned by Validate, Marshal and Unmarshal.
	Err error
}

var _ barter.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}
