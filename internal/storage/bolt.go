package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

var bucketName = []byte("sportvisual")

// BoltStore keeps values in a single bbolt bucket.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates the database at path, creating parent directories.
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, sverrors.NewStorageError("open", path, err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, sverrors.NewStorageError("open", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, sverrors.NewStorageError("open", path, fmt.Errorf("failed to create bucket: %w", err))
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load(key string) ([]byte, bool, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketName).Get([]byte(key))
		if data != nil {
			// bbolt values are only valid inside the transaction.
			out = append([]byte(nil), data...)
		}
		return nil
	})
	if err != nil {
		return nil, false, sverrors.NewStorageError("load", key, err)
	}
	return out, out != nil, nil
}

func (s *BoltStore) Save(key string, data []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), data)
	})
	if err != nil {
		return sverrors.NewStorageError("save", key, err)
	}
	return nil
}

func (s *BoltStore) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return sverrors.NewStorageError("delete", key, err)
	}
	return nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *BoltStore) Path() string {
	return s.db.Path()
}
