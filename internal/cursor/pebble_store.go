package cursor

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
)

// PebbleStore persists the cursor in PebbleDB.
type PebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore(dir string) (*PebbleStore, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleStore{db: d}, nil
}

func (p *PebbleStore) Close() error { return p.db.Close() }

func (p *PebbleStore) Load() (Cursor, bool, error) {
	v, closer, err := p.db.Get([]byte(key))
	if err == pebble.ErrNotFound {
		return Cursor{}, false, nil
	}
	if err != nil {
		return Cursor{}, false, fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()
	var c Cursor
	if err := json.Unmarshal(v, &c); err != nil {
		return Cursor{}, false, fmt.Errorf("decode cursor: %w", err)
	}
	return c, true, nil
}

func (p *PebbleStore) Save(c Cursor) error {
	b, err := json.Marshal(&c)
	if err != nil {
		return fmt.Errorf("encode cursor: %w", err)
	}
	// Sync: the watermark must survive the process; it is written once
	// per run so the fsync cost is irrelevant.
	if err := p.db.Set([]byte(key), b, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}
