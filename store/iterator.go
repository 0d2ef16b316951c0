package store

import (
	"bytes"

	"github.com/iov-one/barter/errors"
)

// mergedIterator combines cached writes with the iterator of the
// backing store. Cached values shadow the parent, deleted items hide
// the parent entry with the same key.
type mergedIterator struct {
	cache     []keyer
	idx       int
	parent    Iterator
	ascending bool

	// one element lookahead of the parent iterator
	pkey, pval []byte
	pok        bool
	pdone      bool
}

var _ Iterator = (*mergedIterator)(nil)

func newMergedIterator(cache []keyer, parent Iterator, ascending bool) *mergedIterator {
	return &mergedIterator{
		cache:     cache,
		parent:    parent,
		ascending: ascending,
	}
}

// Next returns the next visible key and value.
func (m *mergedIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.peekParent(); err != nil {
			return nil, nil, err
		}
		hasCache := m.idx < len(m.cache)

		switch {
		case !hasCache && !m.pok:
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "merged iterator")
		case !hasCache:
			m.pok = false
			return m.pkey, m.pval, nil
		case !m.pok:
			item := m.cache[m.idx]
			m.idx++
			if set, ok := item.(setItem); ok {
				return set.key, set.value, nil
			}
			continue
		}

		item := m.cache[m.idx]
		cmp := bytes.Compare(m.pkey, item.Key())
		if !m.ascending {
			cmp = -cmp
		}
		if cmp < 0 {
			m.pok = false
			return m.pkey, m.pval, nil
		}
		// the cached item is first or shadows the parent key
		m.idx++
		if cmp == 0 {
			m.pok = false
		}
		if set, ok := item.(setItem); ok {
			return set.key, set.value, nil
		}
	}
}

// peekParent loads the next parent element into the lookahead.
func (m *mergedIterator) peekParent() error {
	if m.pok || m.pdone {
		return nil
	}
	key, value, err := m.parent.Next()
	switch {
	case err == nil:
		m.pkey, m.pval, m.pok = key, value, true
		return nil
	case errors.ErrIteratorDone.Is(err):
		m.pdone = true
		return nil
	default:
		return err
	}
}

// Release releases the parent iterator.
func (m *mergedIterator) Release() {
	m.parent.Release()
	m.cache = nil
	m.pok = false
	m.pdone = true
}
