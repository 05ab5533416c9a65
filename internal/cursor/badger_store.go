package cursor

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore persists the cursor in BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(filepath.Clean(dir)).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger open: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (b *BadgerStore) Close() error { return b.db.Close() }

func (b *BadgerStore) Load() (Cursor, bool, error) {
	var c Cursor
	found := false
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		v, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(v, &c); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return Cursor{}, false, fmt.Errorf("badger get: %w", err)
	}
	return c, found, nil
}

func (b *BadgerStore) Save(c Cursor) error {
	bs, err := json.Marshal(&c)
	if err != nil {
		return fmt.Errorf("encode cursor: %w", err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bs)
	})
	if err != nil {
		return fmt.Errorf("badger set: %w", err)
	}
	return nil
}
