/*
Package codec provides the protobuf wire primitives used by the
Marshal, Unmarshal and Size methods of every persisted model and message.

Models declare their fields with gogo/protobuf struct tags, so they print
and register like any generated message. Binary encoding is written by hand
on top of the proto.Buffer primitives, field by field, the same way gogo
generated marshalers do it.
*/
package codec

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter/errors"
)

// Marshaler is implemented by every message that can be nested in
// another one.
type Marshaler interface {
	Marshal() ([]byte, error)
}

// Unmarshaler is implemented by every message that can be decoded from
// a nested field.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Encoder writes protobuf fields in order. Zero values are skipped, as
// proto3 requires.
type Encoder struct {
	buf *proto.Buffer
	err error
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{buf: proto.NewBuffer(nil)}
}

func (e *Encoder) key(field int, wire int) {
	e.buf.EncodeVarint(uint64(field)<<3 | uint64(wire))
}

// Uint64 writes a varint field.
func (e *Encoder) Uint64(field int, v uint64) {
	if v == 0 {
		return
	}
	e.key(field, proto.WireVarint)
	e.buf.EncodeVarint(v)
}

// Uint32 writes a varint field.
func (e *Encoder) Uint32(field int, v uint32) {
	e.Uint64(field, uint64(v))
}

// Int64 writes a varint field using two's complement, like proto int64.
func (e *Encoder) Int64(field int, v int64) {
	e.Uint64(field, uint64(v))
}

// Bytes writes a length delimited field.
func (e *Encoder) Bytes(field int, v []byte) {
	if len(v) == 0 {
		return
	}
	e.key(field, proto.WireBytes)
	e.buf.EncodeRawBytes(v)
}

// String writes a length delimited string field.
func (e *Encoder) String(field int, v string) {
	if v == "" {
		return
	}
	e.key(field, proto.WireBytes)
	e.buf.EncodeStringBytes(v)
}

// Message writes a nested message. The caller must skip nil messages.
// An empty message is still written so that repeated fields keep their
// length.
func (e *Encoder) Message(field int, m Marshaler) {
	if e.err != nil {
		return
	}
	raw, err := m.Marshal()
	if err != nil {
		e.err = errors.Wrapf(err, "field %d", field)
		return
	}
	e.key(field, proto.WireBytes)
	e.buf.EncodeRawBytes(raw)
}

// Result returns the serialized message or the first error that occurred.
func (e *Encoder) Result() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf.Bytes(), nil
}

// Field is a single decoded field. Depending on the wire type, either
// the varint or the raw value is set.
type Field struct {
	Num    int
	Wire   int
	varint uint64
	raw    []byte
}

// Uint64 returns the value of a varint field.
func (f Field) Uint64() (uint64, error) {
	if f.Wire != proto.WireVarint {
		return 0, errors.Wrapf(errors.ErrInput, "field %d: wire type %d is not varint", f.Num, f.Wire)
	}
	return f.varint, nil
}

// Uint32 returns the value of a varint field, rejecting overflows.
func (f Field) Uint32() (uint32, error) {
	v, err := f.Uint64()
	if err != nil {
		return 0, err
	}
	if v > 1<<32-1 {
		return 0, errors.Wrapf(errors.ErrOverflow, "field %d", f.Num)
	}
	return uint32(v), nil
}

// Int64 returns the value of a varint field as a signed integer.
func (f Field) Int64() (int64, error) {
	v, err := f.Uint64()
	return int64(v), err
}

// Bytes returns a copy of a length delimited field.
func (f Field) Bytes() ([]byte, error) {
	if f.Wire != proto.WireBytes {
		return nil, errors.Wrapf(errors.ErrInput, "field %d: wire type %d is not length delimited", f.Num, f.Wire)
	}
	return append([]byte(nil), f.raw...), nil
}

// String returns a length delimited field as a string.
func (f Field) String() (string, error) {
	raw, err := f.Bytes()
	return string(raw), err
}

// Message decodes a nested message into dst.
func (f Field) Message(dst Unmarshaler) error {
	if f.Wire != proto.WireBytes {
		return errors.Wrapf(errors.ErrInput, "field %d: wire type %d is not a message", f.Num, f.Wire)
	}
	return dst.Unmarshal(f.raw)
}

// Decode walks over all fields of a serialized message and calls fn
// for each of them. Unknown fields should be ignored by fn.
func Decode(b []byte, fn func(Field) error) error {
	for len(b) > 0 {
		tag, n := proto.DecodeVarint(b)
		if n == 0 {
			return errors.Wrap(errors.ErrInput, "malformed field key")
		}
		b = b[n:]

		f := Field{Num: int(tag >> 3), Wire: int(tag & 0x7)}
		if f.Num <= 0 {
			return errors.Wrapf(errors.ErrInput, "illegal field number %d", f.Num)
		}

		switch f.Wire {
		case proto.WireVarint:
			v, n := proto.DecodeVarint(b)
			if n == 0 {
				return errors.Wrapf(errors.ErrInput, "field %d: malformed varint", f.Num)
			}
			f.varint = v
			b = b[n:]
		case proto.WireBytes:
			size, n := proto.DecodeVarint(b)
			if n == 0 || uint64(len(b)-n) < size {
				return errors.Wrapf(errors.ErrInput, "field %d: truncated value", f.Num)
			}
			f.raw = b[n : n+int(size)]
			b = b[n+int(size):]
		case proto.WireFixed64:
			if len(b) < 8 {
				return errors.Wrapf(errors.ErrInput, "field %d: truncated fixed64", f.Num)
			}
			f.varint = binary.LittleEndian.Uint64(b)
			b = b[8:]
		case proto.WireFixed32:
			if len(b) < 4 {
				return errors.Wrapf(errors.ErrInput, "field %d: truncated fixed32", f.Num)
			}
			f.varint = uint64(binary.LittleEndian.Uint32(b))
			b = b[4:]
		default:
			return errors.Wrapf(errors.ErrInput, "field %d: unsupported wire type %d", f.Num, f.Wire)
		}

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
