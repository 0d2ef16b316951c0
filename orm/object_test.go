package orm

import (
	"testing"

	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/weavetest/assert"
)

func TestSimpleObj(t *testing.T) {
	cases := map[string]struct {
		obj     *SimpleObj
		wantErr *errors.Error
	}{
		"valid":         {obj: NewSimpleObj([]byte("k"), NewCounter(2)), wantErr: nil},
		"missing key":   {obj: NewSimpleObj(nil, NewCounter(2)), wantErr: errors.ErrEmpty},
		"missing value": {obj: &SimpleObj{key: []byte("k")}, wantErr: errors.ErrEmpty},
		"invalid value": {obj: NewSimpleObj([]byte("k"), NewCounter(-1)), wantErr: errors.ErrState},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.obj.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestSimpleObjClone(t *testing.T) {
	obj := NewSimpleObj([]byte("key"), NewCounter(17))
	cpy := obj.Clone()

	// key is copied, value is an empty instance ready to be loaded
	assert.Equal(t, []byte("key"), cpy.Key())
	assert.Equal(t, &Counter{}, cpy.Value())

	cpy.Key()[0] = 'X'
	assert.Equal(t, []byte("key"), obj.Key())
}
