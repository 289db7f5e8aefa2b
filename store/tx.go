package store

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
)

var ErrTxClosed = errors.New("transaction already closed")

// Tx buffers writes on top of the committed state. Reads see the buffered
// writes first.
type Tx struct {
	db      *LvlDB
	writes  map[string][]byte
	deletes map[string]struct{}
	closed  bool
}

func (t *Tx) Get(key []byte) ([]byte, error) {
	if t.closed {
		return nil, ErrTxClosed
	}

	k := string(key)
	if _, ok := t.deletes[k]; ok {
		return nil, ErrNotFound
	}
	if value, ok := t.writes[k]; ok {
		return append([]byte{}, value...), nil
	}
	return t.db.Get(key)
}

func (t *Tx) Has(key []byte) (bool, error) {
	_, err := t.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (t *Tx) Put(key []byte, value []byte) error {
	if t.closed {
		return ErrTxClosed
	}

	k := string(key)
	delete(t.deletes, k)
	t.writes[k] = append([]byte{}, value...)
	return nil
}

func (t *Tx) Delete(key []byte) error {
	if t.closed {
		return ErrTxClosed
	}

	k := string(key)
	delete(t.writes, k)
	t.deletes[k] = struct{}{}
	return nil
}

// Commit writes all buffered changes as one atomic batch.
func (t *Tx) Commit() error {
	if t.closed {
		return ErrTxClosed
	}
	t.closed = true

	batch := new(leveldb.Batch)
	for k, v := range t.writes {
		batch.Put([]byte(k), v)
	}
	for k := range t.deletes {
		batch.Delete([]byte(k))
	}
	if batch.Len() == 0 {
		return nil
	}
	return t.db.write(batch)
}

// Discard drops all buffered changes. Discarding a committed transaction is a no-op.
func (t *Tx) Discard() {
	t.closed = true
	t.writes = nil
	t.deletes = nil
}
