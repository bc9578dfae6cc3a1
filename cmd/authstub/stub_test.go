package main

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexhub/authcore/pkg/authclient"
	"github.com/lexhub/authcore/pkg/credstore"
	"github.com/lexhub/authcore/pkg/identity"
	"github.com/lexhub/authcore/pkg/principal"
	"github.com/lexhub/authcore/pkg/session"
)

func startStub(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := stubConfig{Secret: "test-secret", TokenTTL: time.Minute}
	srv := httptest.NewServer(newStub(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))).routes())
	t.Cleanup(srv.Close)
	return srv
}

// TestFullSessionFlow drives the real client, session manager, and
// resolver against the stub end to end.
func TestFullSessionFlow(t *testing.T) {
	srv := startStub(t)
	ctx := context.Background()

	store := credstore.NewMemoryStore()

	client, err := authclient.NewHTTP(srv.URL,
		authclient.WithTokenSource(func() (string, bool) {
			token, ok := store.Get(credstore.KeyAccessToken)
			return token, ok
		}))
	require.NoError(t, err)

	manager := session.New(client, store,
		session.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	defer manager.Close()

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := manager.Login(ctx, "jdoe", "nope")
		assert.ErrorIs(t, err, authclient.ErrInvalidCredentials)
		assert.False(t, manager.IsAuthenticated())
	})

	t.Run("lawyer login", func(t *testing.T) {
		p, err := manager.Login(ctx, "jdoe", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "ROLE_ADVOGADO", p.PrimaryRole())
		assert.Equal(t, "John Doe", p.DisplayName)
		assert.True(t, manager.IsAuthenticated())
	})

	t.Run("profile refetch normalizes the heavyweight shape", func(t *testing.T) {
		p, err := manager.FetchPrincipal(ctx)
		require.NoError(t, err)
		assert.Equal(t, "jdoe@example.com", p.PrimaryEmail)
		assert.Equal(t, []string{"ROLE_ADVOGADO"}, p.RoleClaims)
	})

	t.Run("token refresh rotates the pair", func(t *testing.T) {
		before, _ := store.Get(credstore.KeyAccessToken)

		creds, err := manager.RefreshToken(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, before, creds.AccessToken)
		assert.True(t, manager.IsAuthenticated())
	})

	t.Run("correspondent resolution across tiers", func(t *testing.T) {
		_, err := manager.Login(ctx, "maria", "secret1")
		require.NoError(t, err)

		resolver := identity.New(store, client,
			identity.WithOnRefresh(manager.UpdatePrincipal),
			identity.WithLookup(client),
			identity.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

		// The login response carried a flat correspondenteId, so tier
		// 1 already resolves.
		id, ok, err := resolver.ResolveCorrespondentID(ctx, manager.Principal())
		require.NoError(t, err)
		require.True(t, ok)
		assert.EqualValues(t, 7, id)

		// The normalizer repaired the empty role list.
		assert.True(t, manager.Principal().HasRole(principal.RoleCorrespondent))

		entity, err := resolver.Lookup(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Maria Silva", entity.Name)
	})

	t.Run("logout empties the store", func(t *testing.T) {
		manager.Logout()
		assert.False(t, manager.IsAuthenticated())
		assert.Equal(t, 0, store.Len())

		_, err := manager.FetchPrincipal(ctx)
		assert.ErrorIs(t, err, authclient.ErrUnauthorized)
	})
}
