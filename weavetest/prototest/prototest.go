/*
Package prototest checks hand written protobuf encoding against the field
numbers and wire types declared in the gogo/protobuf struct tags of a
message, so that the code and the declaration cannot drift apart.
*/
package prototest

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter/codec"
)

// Message is a struct with protobuf tags and its own binary encoding.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// AssertFields marshals m and fails the test unless
//
//   every encoded field is declared in the struct tags with the same wire type,
//   every non zero struct field is encoded,
//   decoding the result gives back a value equal to m.
//
// Nested messages are checked recursively. Use a fully populated m.
func AssertFields(t testing.TB, m Message) {
	t.Helper()

	raw, err := m.Marshal()
	if err != nil {
		t.Fatalf("cannot marshal %T: %+v", m, err)
	}
	if err := checkFields(reflect.ValueOf(m).Elem(), raw); err != nil {
		t.Fatalf("%T: %s", m, err)
	}

	decoded := reflect.New(reflect.TypeOf(m).Elem()).Interface().(Message)
	if err := decoded.Unmarshal(raw); err != nil {
		t.Fatalf("cannot unmarshal %T: %+v", m, err)
	}
	if !reflect.DeepEqual(m, decoded) {
		t.Fatalf("%T changed after encoding\nwant %+v\n got %+v", m, m, decoded)
	}
}

func checkFields(v reflect.Value, raw []byte) error {
	props := proto.GetProperties(v.Type())
	byTag := make(map[int]int)
	for i, p := range props.Prop {
		if p.Tag > 0 {
			byTag[p.Tag] = i
		}
	}

	seen := make(map[int]int)
	err := codec.Decode(raw, func(f codec.Field) error {
		i, ok := byTag[f.Num]
		if !ok {
			return fmt.Errorf("field %d is not declared", f.Num)
		}
		p := props.Prop[i]
		if f.Wire != p.WireType {
			return fmt.Errorf("%s: declared wire type %d, encoded %d", p.Name, p.WireType, f.Wire)
		}

		fv := v.Field(i)
		if isMessageList(fv.Type()) {
			if seen[f.Num] >= fv.Len() {
				return fmt.Errorf("%s: more elements encoded than present", p.Name)
			}
			fv = fv.Index(seen[f.Num])
		}
		seen[f.Num]++

		if fv.Kind() == reflect.Ptr && fv.Type().Elem().Kind() == reflect.Struct {
			if fv.IsNil() {
				return fmt.Errorf("%s: encoded but nil", p.Name)
			}
			nested, err := f.Bytes()
			if err != nil {
				return err
			}
			if err := checkFields(fv.Elem(), nested); err != nil {
				return fmt.Errorf("%s: %s", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i, p := range props.Prop {
		if p.Tag == 0 {
			continue
		}
		fv := v.Field(i)
		want := 1
		switch {
		case isMessageList(fv.Type()):
			want = fv.Len()
		case fv.Kind() == reflect.Slice || fv.Kind() == reflect.String:
			if fv.Len() == 0 {
				want = 0
			}
		case fv.IsZero():
			want = 0
		}
		if got := seen[p.Tag]; got != want {
			return fmt.Errorf("%s: want %d encoded values, got %d", p.Name, want, got)
		}
	}
	return nil
}

func isMessageList(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Ptr
}
