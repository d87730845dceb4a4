package session

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stitchwork/go-erp-client/credentials"
)

// Navigator performs the "full reset to the login entry point" side effect
// on unrecoverable session expiry. Integrators decide the mechanism (hard
// navigation, process exit, prompt); the Manager only guarantees it fires.
type Navigator interface {
	RedirectToLogin()
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func()

func (f NavigatorFunc) RedirectToLogin() { f() }

// Manager owns the current session State, applies events through the
// reducer and executes the resulting effects against the credential store
// and navigator.
type Manager struct {
	lock        sync.Mutex
	state       State
	store       credentials.Store
	navigator   Navigator
	logger      zerolog.Logger
	subscribers []func(State)
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithNavigator sets the redirect collaborator.
func WithNavigator(nav Navigator) ManagerOption {
	return func(m *Manager) {
		m.navigator = nav
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager in the initial (bootstrap-checking) state.
func NewManager(store credentials.Store, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] credentials store is required")
	}

	m := &Manager{
		state:  Initial(),
		store:  store,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Current returns the current session state.
func (m *Manager) Current() State {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.state
}

// Subscribe registers a callback invoked with the new state after every
// applied event. Callbacks run synchronously on the applying goroutine.
func (m *Manager) Subscribe(fn func(State)) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// Apply runs one event through the reducer, executes its effects and
// notifies subscribers. It returns the new state.
func (m *Manager) Apply(event Event) State {
	m.lock.Lock()
	next, effects := Reduce(m.state, event)
	m.state = next
	subscribers := make([]func(State), len(m.subscribers))
	copy(subscribers, m.subscribers)
	m.lock.Unlock()

	for _, effect := range effects {
		m.execute(effect)
	}
	for _, fn := range subscribers {
		fn(next)
	}
	return next
}

func (m *Manager) execute(effect Effect) {
	switch ef := effect.(type) {
	case PersistTokens:
		if err := m.store.SetTokens(&ef.AccessToken, &ef.RefreshToken); err != nil {
			m.logger.Warn().Err(err).Msg("failed to persist tokens")
		}
	case ClearCredentials:
		if err := m.store.Clear(); err != nil {
			m.logger.Warn().Err(err).Msg("failed to clear credentials")
		}
	case RedirectToLogin:
		if m.navigator != nil {
			m.navigator.RedirectToLogin()
		}
	case CacheUser:
		if err := m.store.SetStoredUser(ef.User); err != nil {
			m.logger.Warn().Err(err).Msg("failed to cache user profile")
		}
	}
}
