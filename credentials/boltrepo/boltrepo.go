// Package boltrepo provides a BBolt-backed credentials store.
package boltrepo

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/stitchwork/go-erp-client/credentials"
	"github.com/stitchwork/go-erp-client/users"
	"go.etcd.io/bbolt"
)

const (
	bucketName      = "credentials"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyStoredUser   = "stored_user"
)

// Store implements credentials.Store backed by a BBolt database.
type Store struct {
	db *bbolt.DB
}

var _ credentials.Store = (*Store)(nil)

// NewStore returns a Store backed by the given BBolt database.
func NewStore(db *bbolt.DB) *Store {
	return &Store{db: db}
}

// NewStoreFromFile opens a BBolt database at the given path and returns a
// new Store.
func NewStoreFromFile(path string, options *bbolt.Options) (*Store, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, errors.Wrap(err, "[boltrepo.NewStoreFromFile] bbolt.Open")
	}
	return NewStore(db), nil
}

// Close closes the underlying BBolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AccessToken returns the stored access token, or "" if absent or the
// database is unreadable.
func (s *Store) AccessToken() string {
	return s.read(keyAccessToken)
}

// RefreshToken returns the stored refresh token, or "" if absent or the
// database is unreadable.
func (s *Store) RefreshToken() string {
	return s.read(keyRefreshToken)
}

// SetTokens writes the token pair in a single transaction. Nil arguments
// leave the existing values unchanged.
func (s *Store) SetTokens(access, refresh *string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		if access != nil {
			if err := b.Put([]byte(keyAccessToken), []byte(*access)); err != nil {
				return err
			}
		}
		if refresh != nil {
			if err := b.Put([]byte(keyRefreshToken), []byte(*refresh)); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrap(err, "[boltrepo.SetTokens] db.Update")
}

// Clear removes both tokens and the cached profile in one transaction.
func (s *Store) Clear() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		for _, key := range []string{keyAccessToken, keyRefreshToken, keyStoredUser} {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrap(err, "[boltrepo.Clear] db.Update")
}

// StoredUser returns the cached profile, or nil if absent or unreadable.
func (s *Store) StoredUser() *users.User {
	data := s.read(keyStoredUser)
	if data == "" {
		return nil
	}
	var user users.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil
	}
	return &user
}

// SetStoredUser caches the profile; nil removes the cache entry.
func (s *Store) SetStoredUser(user *users.User) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		if user == nil {
			return b.Delete([]byte(keyStoredUser))
		}
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		return b.Put([]byte(keyStoredUser), data)
	})
	return errors.Wrap(err, "[boltrepo.SetStoredUser] db.Update")
}

func (s *Store) read(key string) string {
	var value string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		if data := b.Get([]byte(key)); data != nil {
			value = string(data)
		}
		return nil
	})
	if err != nil {
		return ""
	}
	return value
}
