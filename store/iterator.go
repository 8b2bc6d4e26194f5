package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/taxweave/errors"
)

// SliceIterator wraps an Iterator over a slice of models.
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice.
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

// Next returns the next model or ErrIteratorDone.
func (s *SliceIterator) Next() ([]byte, []byte, error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

// Release releases the Iterator.
func (s *SliceIterator) Release() {
	s.data = nil
}

// mergeIterator combines a snapshot of cached writes with the iterator of
// the parent store. Cached values take precedence, cached deletes hide the
// parent values.
type mergeIterator struct {
	ours      []btree.Item
	idx       int
	parent    Iterator
	ascending bool

	// Parent item read ahead, pkey is nil when nothing is buffered.
	pkey, pval []byte
	pdone      bool
}

func newMergeIterator(ours []btree.Item, parent Iterator, ascending bool) *mergeIterator {
	return &mergeIterator{
		ours:      ours,
		parent:    parent,
		ascending: ascending,
	}
}

func (m *mergeIterator) Next() ([]byte, []byte, error) {
	for {
		if !m.pdone && m.pkey == nil {
			k, v, err := m.parent.Next()
			switch {
			case err == nil:
				m.pkey, m.pval = k, v
			case errors.ErrIteratorDone.Is(err):
				m.pdone = true
			default:
				return nil, nil, err
			}
		}

		hasOurs := m.idx < len(m.ours)
		if !hasOurs {
			if m.pdone {
				return nil, nil, errors.ErrIteratorDone
			}
			return m.popParent()
		}

		if !m.pdone {
			cmp := bytes.Compare(m.ours[m.idx].(keyer).Key(), m.pkey)
			if !m.ascending {
				cmp = -cmp
			}
			if cmp > 0 {
				return m.popParent()
			}
			if cmp == 0 {
				// Cached entry shadows the parent one.
				m.pkey, m.pval = nil, nil
			}
		}

		item := m.ours[m.idx]
		m.idx++
		if s, ok := item.(setItem); ok {
			return s.key, s.value, nil
		}
	}
}

func (m *mergeIterator) popParent() ([]byte, []byte, error) {
	k, v := m.pkey, m.pval
	m.pkey, m.pval = nil, nil
	return k, v, nil
}

func (m *mergeIterator) Release() {
	m.parent.Release()
	m.ours = nil
}
