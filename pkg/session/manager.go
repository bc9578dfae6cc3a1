package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/lexhub/authcore/pkg/authclient"
	"github.com/lexhub/authcore/pkg/bearer"
	"github.com/lexhub/authcore/pkg/credstore"
	"github.com/lexhub/authcore/pkg/principal"
)

// Manager owns the live session state. Construct one per process with
// New and share the handle.
type Manager struct {
	client authclient.Client
	store  credstore.Store
	log    *slog.Logger
	id     uuid.UUID

	mu      sync.RWMutex
	current *principal.Principal

	stream *stream
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithStreamBuffer sets the per-subscriber event buffer size.
func WithStreamBuffer(n int) Option {
	return func(m *Manager) {
		m.stream = newStream(n)
	}
}

// New creates a Manager. If the store holds a readable principal
// snapshot from a previous run, it becomes the initial live principal;
// a malformed snapshot is dropped and logged, never fatal.
func New(client authclient.Client, store credstore.Store, opts ...Option) *Manager {
	m := &Manager{
		client: client,
		store:  store,
		log:    slog.Default(),
		id:     uuid.New(),
		stream: newStream(8),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(slog.String("session_id", m.id.String()))

	if snapshot, ok := store.Get(credstore.KeyPrincipalSnapshot); ok {
		p, err := principal.ParseSnapshot(snapshot)
		if err != nil {
			m.log.Warn("dropping malformed principal snapshot", slog.Any("error", err))
			store.Remove(credstore.KeyPrincipalSnapshot)
		} else {
			m.current = p
		}
	}

	return m
}

// Login exchanges credentials for a session. On success the tokens and
// the normalized principal are persisted and the principal published.
// On any error nothing is persisted and the error propagates unchanged.
func (m *Manager) Login(ctx context.Context, login, password string) (*principal.Principal, error) {
	creds, raw, err := m.client.Login(ctx, login, password)
	if err != nil {
		return nil, err
	}

	p := principal.Normalize(raw)

	m.store.Put(credstore.KeyAccessToken, creds.AccessToken)
	m.store.Put(credstore.KeyRefreshToken, creds.RefreshToken)
	m.setPrincipal(&p)

	m.log.Info("session started",
		slog.String("login", p.Login),
		slog.String("type", string(p.Type)))

	return p.Clone(), nil
}

// Logout destroys the session: the store is cleared and nil is
// published. Navigating to the login screen is the guard's job.
func (m *Manager) Logout() {
	m.teardown("logout")
}

// RefreshToken exchanges the stored refresh token for a new credential
// pair and persists it. The cached principal is untouched. Fails with
// ErrNoRefreshToken when none is stored.
func (m *Manager) RefreshToken(ctx context.Context) (authclient.Credentials, error) {
	refresh, ok := m.store.Get(credstore.KeyRefreshToken)
	if !ok || refresh == "" {
		return authclient.Credentials{}, ErrNoRefreshToken
	}

	creds, err := m.client.Refresh(ctx, refresh)
	if err != nil {
		return authclient.Credentials{}, err
	}

	m.store.Put(credstore.KeyAccessToken, creds.AccessToken)
	m.store.Put(credstore.KeyRefreshToken, creds.RefreshToken)

	m.log.Debug("credentials refreshed")
	return creds, nil
}

// Principal returns the cached current principal, or nil when signed
// out. The returned value is a copy; mutating it does not affect the
// session.
func (m *Manager) Principal() *principal.Principal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current.Clone()
}

// FetchPrincipal refreshes the principal from the backend, normalizes
// it, persists and publishes it. A 401 tears the session down before
// the error is handed back.
func (m *Manager) FetchPrincipal(ctx context.Context) (*principal.Principal, error) {
	raw, err := m.client.CurrentUser(ctx)
	if err != nil {
		return nil, m.HandleUnauthorized(err)
	}

	p := principal.Normalize(raw)
	m.setPrincipal(&p)

	return p.Clone(), nil
}

// IsAuthenticated reports whether a non-expired access token is
// stored. Derived on every read, never cached.
func (m *Manager) IsAuthenticated() bool {
	token, ok := m.store.Get(credstore.KeyAccessToken)
	return ok && token != "" && !bearer.IsExpired(token)
}

// UpdatePrincipal overwrites the cached principal without contacting
// the backend, used after an explicit profile mutation elsewhere.
func (m *Manager) UpdatePrincipal(p *principal.Principal) {
	if p == nil {
		return
	}
	m.setPrincipal(p.Clone())
}

// HandleUnauthorized inspects an error from a guarded remote call. A
// 401 triggers the same clear-and-publish-nil path as Logout; the
// original error is always returned so the caller can still react.
func (m *Manager) HandleUnauthorized(err error) error {
	if errors.Is(err, authclient.ErrUnauthorized) {
		m.teardown("unauthorized")
	}
	return err
}

// Subscribe registers for principal-change events. The subscription
// ends when ctx is cancelled or the subscriber is closed. The current
// value is not replayed; read Principal() first.
func (m *Manager) Subscribe(ctx context.Context) *Subscriber {
	return m.stream.subscribe(ctx)
}

// TokenSource exposes the stored access token for the HTTP client's
// bearer header.
func (m *Manager) TokenSource() authclient.TokenSource {
	return func() (string, bool) {
		token, ok := m.store.Get(credstore.KeyAccessToken)
		return token, ok && token != ""
	}
}

// Close shuts the change stream down. The credential store is left
// as-is: shutdown is not logout.
func (m *Manager) Close() {
	m.stream.close()
}

// setPrincipal persists the snapshot, swaps the live principal, and
// publishes, in that order, so a subscriber that reacts immediately
// observes the already-persisted state.
func (m *Manager) setPrincipal(p *principal.Principal) {
	if snapshot, err := principal.EncodeSnapshot(p); err != nil {
		m.log.Warn("principal snapshot not persisted", slog.Any("error", err))
	} else {
		m.store.Put(credstore.KeyPrincipalSnapshot, snapshot)
	}

	m.mu.Lock()
	m.current = p
	m.mu.Unlock()

	m.stream.publish(Change{Principal: p.Clone()})
}

// teardown clears every stored credential and publishes nil.
func (m *Manager) teardown(reason string) {
	m.store.Clear()

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	m.stream.publish(Change{})
	m.log.Info("session ended", slog.String("reason", reason))
}
