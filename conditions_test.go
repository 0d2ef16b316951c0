package barter_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := barter.Address(b)

		So(addr.String(), ShouldEqual, "414243443132333435364C4842")
		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(addr)))
		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%x", []byte(addr)))
		So(fmt.Sprint(addr), ShouldEqual, addr.String())
	})

	Convey("test condition printing", t, func() {
		cond := barter.NewCondition("offer", "seq", []byte{0, 0, 0, 1})

		So(cond.String(), ShouldEqual, "offer/seq/00000001")
	})

	Convey("test empty address printing", t, func() {
		So(barter.Address(nil).String(), ShouldEqual, "(nil)")
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	bech, err := barter.NewAddress([]byte("bech")).Bech32("barter")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr barter.Address
	}{
		"default decoding": {
			json:     `"8d2d6f2b2ea0e1bb4a02a0a0efc1b5d4b8b8d1e9"`,
			wantAddr: mustHex(t, "8d2d6f2b2ea0e1bb4a02a0a0efc1b5d4b8b8d1e9"),
		},
		"hex decoding": {
			json:     `"hex:8d2d6f2b2ea0e1bb4a02a0a0efc1b5d4b8b8d1e9"`,
			wantAddr: mustHex(t, "8d2d6f2b2ea0e1bb4a02a0a0efc1b5d4b8b8d1e9"),
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: barter.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"bech32 decoding": {
			json:     `"bech32:` + bech + `"`,
			wantAddr: barter.NewAddress([]byte("bech")),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid hex length": {
			json:    `"a0a0"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"base64:YWJjZA=="`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a barter.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantAddr, a)
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := barter.NewCondition("sigs", "ed25519", []byte("key")).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got barter.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, addr.Equals(got))
}

func TestConditionValidate(t *testing.T) {
	cases := map[string]struct {
		cond    barter.Condition
		wantErr *errors.Error
	}{
		"valid":            {cond: barter.NewCondition("offer", "seq", []byte{1}), wantErr: nil},
		"short extension":  {cond: barter.NewCondition("o", "seq", []byte{1}), wantErr: errors.ErrInput},
		"missing data":     {cond: barter.Condition("offer/seq/"), wantErr: errors.ErrInput},
		"missing sections": {cond: barter.Condition("offer"), wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.cond.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestConditionParse(t *testing.T) {
	ext, typ, data, err := barter.NewCondition("vault", "hold", []byte("abc")).Parse()
	require.NoError(t, err)
	assert.Equal(t, "vault", ext)
	assert.Equal(t, "hold", typ)
	assert.Equal(t, []byte("abc"), data)
}
