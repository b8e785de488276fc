package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const slotBucket = "Slots"

// BoltStore persists slots in a bbolt database under the data directory.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (creating if needed) the application database.
func NewBoltStore(dataDir string) (*BoltStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "notenexus.db")
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(slotBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %v", err)
	}

	return &BoltStore{db: db}, nil
}

// NewBoltStoreDB wraps an already-open database, sharing it with other
// consumers such as the session storage.
func NewBoltStoreDB(db *bbolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(slotBucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize buckets: %v", err)
	}
	return &BoltStore{db: db}, nil
}

// DB exposes the underlying database for co-located storages.
func (s *BoltStore) DB() *bbolt.DB {
	return s.db
}

// Save JSON-encodes v into the slot.
func (s *BoltStore) Save(slot string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(slotBucket)).Put([]byte(slot), data)
	})
}

// Load decodes the slot into v; ErrSlotNotFound when empty.
func (s *BoltStore) Load(slot string, v interface{}) error {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket([]byte(slotBucket)).Get([]byte(slot))
		if raw == nil {
			return ErrSlotNotFound
		}
		data = append(data, raw...)
		return nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Delete removes the slot.
func (s *BoltStore) Delete(slot string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(slotBucket)).Delete([]byte(slot))
	})
}

// Close closes the database connection
func (s *BoltStore) Close() error {
	return s.db.Close()
}
