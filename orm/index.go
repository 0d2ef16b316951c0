package orm

import (
	"bytes"
	"math"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Index is a secondary index of bucket entities.
type Index interface {
	// Name returns the name of this index.
	Name() string

	// Update updates the index. It should be called when any of the bucket
	// entities has changed in the store.
	//
	// prev == nil means insert
	// save == nil means delete
	// both == nil is error
	// if both != nil and prev.Key() != save.Key() this is an error
	Update(db barter.KVStore, prev Object, save Object) error

	// Keys returns an iterator that returns all entity keys that were
	// indexed under given value, in ascending order.
	//
	// Values of returned iterator are always nil to optimize for a lazy
	// loading flows and avoid loading into memory values from the database
	// when they might not be needed.
	Keys(db barter.ReadOnlyKVStore, value []byte) barter.Iterator

	// Query handles queries from the QueryRouter.
	Query(db barter.ReadOnlyKVStore, mod string, data []byte) ([]barter.Model, error)
}

// Indexer calculates the secondary index key for a given object
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates the secondary index keys for a given object
type MultiKeyIndexer func(Object) ([][]byte, error)

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		switch {
		case err != nil:
			return nil, err
		case key == nil:
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}

const nativeIdxPrefix = "_x."

// NewNativeIndex returns an index implementation that is using a database
// native storage and query in order to maintain and provide access to an
// index.
func NewNativeIndex(name string, indexer MultiKeyIndexer, dbKey func([]byte) []byte) Index {
	return &nativeIndex{
		name:    name,
		indexer: indexer,
		dbKey:   dbKey,
	}
}

// nativeIndex stores a single empty value for every (indexed value,
// entity key) pair. Insert and remove touch only that one database key and
// listing is a range scan over all keys sharing the indexed value.
type nativeIndex struct {
	name    string
	indexer MultiKeyIndexer
	// dbKey is a function that for given entity ID returns that entity
	// database key.
	dbKey func([]byte) []byte
}

func (ix *nativeIndex) Name() string {
	return ix.name
}

// Update updates the index. It should be called when any of the bucket
// entities has changed in the store.
func (ix *nativeIndex) Update(db barter.KVStore, prev Object, next Object) error {
	if next == nil && prev == nil {
		return errors.Wrap(errors.ErrInput, "update requires at least one non-nil object")
	}
	if next != nil && prev != nil {
		if !bytes.Equal(next.Key(), prev.Key()) {
			return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
		}
	}

	if prev != nil {
		values, err := ix.indexer(prev)
		if err != nil {
			return errors.Wrap(err, "indexer")
		}
		for _, v := range values {
			idxKey, err := packNativeIdxKey([][]byte{[]byte(ix.name), v, prev.Key()})
			if err != nil {
				return errors.Wrap(err, "build index key")
			}
			if err := db.Delete(idxKey); err != nil {
				return errors.Wrap(err, "db delete")
			}
		}
	}

	if next != nil {
		values, err := ix.indexer(next)
		if err != nil {
			return errors.Wrap(err, "indexer")
		}
		for _, v := range values {
			idxKey, err := packNativeIdxKey([][]byte{[]byte(ix.name), v, next.Key()})
			if err != nil {
				return errors.Wrap(err, "build index key")
			}
			if err := db.Set(idxKey, []byte{}); err != nil {
				return errors.Wrap(err, "db set")
			}
		}
	}
	return nil
}

// Keys returns all entity keys indexed under given value.
//
// Index keys are in the format
//    <prefix>#<index name>#<value>#<entity id>
// where # is the length of the following chunk. Iterating over all keys
// between <prefix>#<index name>#<value> and that same key followed by
// 255 returns all entities indexed under the value, ordered by entity
// id. 255 is never used as a length (see packNativeIdxKey).
func (ix *nativeIndex) Keys(db barter.ReadOnlyKVStore, value []byte) barter.Iterator {
	start, err := packNativeIdxKey([][]byte{[]byte(ix.name), value})
	if err != nil {
		return &failedIterator{err: errors.Wrap(err, "build index key")}
	}
	end := make([]byte, len(start)+1)
	copy(end, start)
	end[len(end)-1] = math.MaxUint8

	it, err := db.Iterator(start, end)
	if err != nil {
		return &failedIterator{err: err}
	}
	return &nativeIndexIterator{dbit: it}
}

// Query returns all entities indexed under the value given as data.
// Returned keys are full database keys.
func (ix *nativeIndex) Query(db barter.ReadOnlyKVStore, mod string, data []byte) ([]barter.Model, error) {
	if mod != barter.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %s", mod)
	}
	keys, err := consumeIteratorKeys(ix.Keys(db, data))
	if err != nil {
		return nil, err
	}
	models := make([]barter.Model, 0, len(keys))
	for _, key := range keys {
		dbKey := ix.dbKey(key)
		value, err := db.Get(dbKey)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot get %X value", key)
		}
		models = append(models, barter.Model{Key: dbKey, Value: value})
	}
	return models, nil
}

// nativeIndexIterator wraps a database iterator and parse results to provide
// indexed entities keys.
type nativeIndexIterator struct {
	dbit barter.Iterator
}

func (it *nativeIndexIterator) Next() ([]byte, []byte, error) {
	key, _, err := it.dbit.Next()
	if err != nil {
		return nil, nil, err
	}
	chunks, err := unpackNativeIdxKey(key)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unpack native index key")
	}
	return chunks[len(chunks)-1], nil, nil
}

func (it *nativeIndexIterator) Release() {
	it.dbit.Release()
}

type failedIterator struct {
	err error
}

var _ barter.Iterator = (*failedIterator)(nil)

func (it *failedIterator) Next() ([]byte, []byte, error) {
	return nil, nil, it.err
}

func (failedIterator) Release() {}

// consumeIteratorKeys returns a list of all keys that given iterator returns.
// This function should be used only for iterators when the result size is
// known to be small as all results are kept in memory.
// This function releases the iterator.
func consumeIteratorKeys(it barter.Iterator) ([][]byte, error) {
	defer it.Release()

	var keys [][]byte
	for {
		switch k, _, err := it.Next(); {
		case err == nil:
			keys = append(keys, k)
		case errors.ErrIteratorDone.Is(err):
			return keys, nil
		default:
			return keys, err
		}
	}
}

// packNativeIdxKey serialize a native index key from a set of values to a
// single key. This process can be reversed using unpackNativeIdxKey function.
//
// Each chunk is prefixed with its length, encoded as a uint8 value. A key
// created from 3 chunks, "aaa", "" and "c" is
//
//   _x.<3>aaa<0><1>c
//
// Each chunk must be at most 254 bytes long.
func packNativeIdxKey(chunks [][]byte) ([]byte, error) {
	size := len(nativeIdxPrefix)
	for _, b := range chunks {
		size += len(b) + 1
	}
	res := make([]byte, 0, size)
	res = append(res, nativeIdxPrefix...)

	for _, b := range chunks {
		// MaxUint8 is reserved for the search purpose.
		if len(b) > math.MaxUint8-1 {
			return nil, errors.Wrapf(errors.ErrInput, "no chunk can be bigger than %d bytes", math.MaxUint8-1)
		}
		res = append(res, uint8(len(b)))
		res = append(res, b...)
	}
	return res, nil
}

// unpackNativeIdxKey decodes native index key and extracts all chunks that
// compose that key.
func unpackNativeIdxKey(b []byte) ([][]byte, error) {
	if !bytes.HasPrefix(b, []byte(nativeIdxPrefix)) {
		return nil, errors.Wrap(errors.ErrInput, "not a native index key")
	}
	b = b[len(nativeIdxPrefix):]
	res := make([][]byte, 0, 3)
	for len(b) > 0 {
		size := int(b[0])
		if len(b) < 1+size {
			return nil, errors.Wrap(errors.ErrInput, "malformed offset")
		}
		res = append(res, b[1:1+size])
		b = b[1+size:]
	}
	if len(res) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty native index key")
	}
	return res, nil
}
