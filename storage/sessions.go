package storage

import (
	"encoding/json"
	"time"

	"go.etcd.io/bbolt"
)

const sessionBucket = "Sessions"

// SessionStorage implements fiber.Storage on top of the application's
// bolt database, so browser sessions survive restarts.
type SessionStorage struct {
	db *bbolt.DB
}

type sessionRecord struct {
	Value      []byte    `json:"value"`
	Expiration time.Time `json:"expiration"` // zero means no expiry
}

// NewSessionStorage shares the database opened by NewBoltStore.
func NewSessionStorage(db *bbolt.DB) (*SessionStorage, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &SessionStorage{db: db}, nil
}

// Get returns the session data, or nil when absent or expired.
func (s *SessionStorage) Get(key string) ([]byte, error) {
	var rec sessionRecord
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket([]byte(sessionBucket)).Get([]byte(key))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &rec)
	})
	if err != nil || !found {
		return nil, err
	}
	if !rec.Expiration.IsZero() && time.Now().After(rec.Expiration) {
		_ = s.Delete(key)
		return nil, nil
	}
	return rec.Value, nil
}

// Set stores session data with an optional expiration.
func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	rec := sessionRecord{Value: val}
	if exp > 0 {
		rec.Expiration = time.Now().Add(exp)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put([]byte(key), data)
	})
}

// Delete removes one session.
func (s *SessionStorage) Delete(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Delete([]byte(key))
	})
}

// Reset drops all sessions.
func (s *SessionStorage) Reset() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(sessionBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
}

// Close is a no-op; the shared database is closed by its owner.
func (s *SessionStorage) Close() error {
	return nil
}
