package repofake

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/stitchwork/go-erp-client/credentials"
	"github.com/stitchwork/go-erp-client/users"
)

var _ credentials.Store = (*FakeStore)(nil)

// FakeStore is an in-memory credentials store for tests.
type FakeStore struct {
	lock         sync.RWMutex
	accessToken  string
	refreshToken string
	user         *users.User

	// FailWrites makes write operations return errors while reads keep
	// degrading to zero values, mirroring unavailable storage.
	FailWrites bool

	// SetTokensCalls records every SetTokens invocation in order.
	SetTokensCalls []TokenPair
}

// TokenPair records one SetTokens call; nil means "left unchanged".
type TokenPair struct {
	Access  *string
	Refresh *string
}

// NewFakeStore returns an empty in-memory store.
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// NewFakeStoreWithTokens returns a store pre-seeded with a token pair.
func NewFakeStoreWithTokens(access, refresh string) *FakeStore {
	return &FakeStore{accessToken: access, refreshToken: refresh}
}

func (f *FakeStore) AccessToken() string {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.accessToken
}

func (f *FakeStore) RefreshToken() string {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.refreshToken
}

func (f *FakeStore) SetTokens(access, refresh *string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.FailWrites {
		return errors.New("storage unavailable")
	}
	f.SetTokensCalls = append(f.SetTokensCalls, TokenPair{Access: access, Refresh: refresh})
	if access != nil {
		f.accessToken = *access
	}
	if refresh != nil {
		f.refreshToken = *refresh
	}
	return nil
}

func (f *FakeStore) Clear() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.FailWrites {
		return errors.New("storage unavailable")
	}
	f.accessToken = ""
	f.refreshToken = ""
	f.user = nil
	return nil
}

func (f *FakeStore) StoredUser() *users.User {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.user
}

func (f *FakeStore) SetStoredUser(user *users.User) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.FailWrites {
		return errors.New("storage unavailable")
	}
	f.user = user
	return nil
}
