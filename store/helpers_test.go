package store

import (
	"testing"

	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/weavetest/assert"
)

// TestSliceIterator makes sure the basic slice iterator works.
func TestSliceIterator(t *testing.T) {
	const size = 10

	ks := randKeys(size, 8)
	vs := randKeys(size, 40)

	models := make([]Model, size)
	for i := 0; i < size; i++ {
		models[i].Key = ks[i]
		models[i].Value = vs[i]
	}

	it := NewSliceIterator(models)
	for i := 0; i < size; i++ {
		key, value, err := it.Next()
		assert.Nil(t, err)
		assert.Equal(t, ks[i], key)
		assert.Equal(t, vs[i], value)
	}
	_, _, err := it.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)

	it = NewSliceIterator(models)
	it.Release()
	_, _, err = it.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	b := NewNonAtomicBatch(base)

	assert.Nil(t, b.Set([]byte("k1"), []byte("v1")))
	assert.Nil(t, b.Set([]byte("k2"), []byte("v2")))
	assert.Nil(t, b.Delete([]byte("k1")))
	assert.Equal(t, 3, len(b.ShowOps()))

	has, err := base.Has([]byte("k2"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	assert.Nil(t, b.Write())
	assert.Equal(t, 0, len(b.ShowOps()))

	has, err = base.Has([]byte("k1"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
	val, err := base.Get([]byte("k2"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v2"), val)

	assert.Nil(t, b.Set([]byte("k3"), []byte("v3")))
	b.Reset()
	assert.Nil(t, b.Write())
	has, err = base.Has([]byte("k3"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
}
