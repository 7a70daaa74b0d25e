// Package bbolt provides a BBolt-backed profile store.
package bbolt

import (
	"errors"
	"fmt"

	"github.com/paoloronco/lynx/storage"
	"go.etcd.io/bbolt"
)

var bucketName = []byte("profile")

// Store implements storage.KV backed by a BBolt database.
type Store struct {
	db *bbolt.DB
}

var _ storage.KV = (*Store)(nil)

// NewStore returns a KV store backed by the given BBolt database.
func NewStore(db *bbolt.DB) *Store {
	return &Store{db: db}
}

// NewStoreFromFile opens a BBolt database at the given path and returns a new
// Store. The file is created with 0600 permissions; it holds the device
// secret and the encrypted session token.
func NewStoreFromFile(path string, options *bbolt.Options) (*Store, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening profile db: %v: %w", err, storage.ErrUnavailable)
	}
	return NewStore(db), nil
}

// Close closes the underlying BBolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(key string) (string, bool, error) {
	var value string
	var ok bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		data := b.Get([]byte(key))
		if data == nil {
			return nil
		}
		value = string(data)
		ok = true
		return nil
	})
	if err != nil {
		return "", false, wrapUnavailable(err)
	}
	return value, ok, nil
}

func (s *Store) Set(key, value string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
	return wrapUnavailable(err)
}

func (s *Store) Delete(key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
	return wrapUnavailable(err)
}

func wrapUnavailable(err error) error {
	if err == nil || errors.Is(err, storage.ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%v: %w", err, storage.ErrUnavailable)
}
