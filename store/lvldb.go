// Package store persists settlement state in leveldb. Every state mutation
// goes through a Tx that buffers writes and commits them as a single batch,
// so an operation either lands completely or not at all.
package store

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var ErrNotFound = errors.New("key not found")

type Reader interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

type Writer interface {
	Put(key []byte, value []byte) error
	Delete(key []byte) error
}

type ReadWriter interface {
	Reader
	Writer
}

type LvlDB struct {
	db *leveldb.DB
}

// NewLvlDB opens or creates the leveldb database at path.
func NewLvlDB(path string) (*LvlDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to open leveldb at %s: %w", path, err)
	}

	return &LvlDB{db: db}, nil
}

// NewMemoryDB creates a leveldb database backed by memory storage.
func NewMemoryDB() (*LvlDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}

	return &LvlDB{db: db}, nil
}

func (d *LvlDB) Get(key []byte) ([]byte, error) {
	value, err := d.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	return value, err
}

func (d *LvlDB) Has(key []byte) (bool, error) {
	return d.db.Has(key, nil)
}

// Iterate calls fn for each committed key with the given prefix, in key order,
// until fn returns false.
func (d *LvlDB) Iterate(prefix []byte, fn func(key []byte, value []byte) bool) error {
	iter := d.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	for iter.Next() {
		if !fn(iter.Key(), iter.Value()) {
			break
		}
	}
	return iter.Error()
}

// Begin starts a new transaction on top of the committed state.
func (d *LvlDB) Begin() *Tx {
	return &Tx{
		db:      d,
		writes:  make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}
}

func (d *LvlDB) Close() error {
	return d.db.Close()
}

func (d *LvlDB) write(batch *leveldb.Batch) error {
	return d.db.Write(batch, &opt.WriteOptions{Sync: true})
}
