package identity

import (
	"context"
	"log/slog"

	"github.com/lexhub/authcore/pkg/authclient"
	"github.com/lexhub/authcore/pkg/credstore"
	"github.com/lexhub/authcore/pkg/principal"
)

// ProfileFetcher is the slice of the backend client tier 3 needs.
type ProfileFetcher interface {
	CurrentUser(ctx context.Context) (map[string]any, error)
}

// CorrespondentLookup is the slice of the backend client Lookup needs.
type CorrespondentLookup interface {
	Correspondent(ctx context.Context, id int64) (*authclient.Correspondent, error)
}

// Resolver walks the correspondent-id fallback chain.
type Resolver struct {
	store     credstore.Store
	fetch     ProfileFetcher
	lookup    CorrespondentLookup
	onRefresh func(*principal.Principal)
	log       *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOnRefresh sets the hook receiving the refetched principal when
// tier 3 succeeds. This is the resolver's one sanctioned side effect.
func WithOnRefresh(fn func(*principal.Principal)) Option {
	return func(r *Resolver) { r.onRefresh = fn }
}

// WithLookup enables Lookup against the correspondent backend.
func WithLookup(l CorrespondentLookup) Option {
	return func(r *Resolver) { r.lookup = l }
}

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a Resolver reading snapshots from store and refetching
// profiles through fetch.
func New(store credstore.Store, fetch ProfileFetcher, opts ...Option) *Resolver {
	r := &Resolver{
		store: store,
		fetch: fetch,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveCorrespondentID returns the correspondent entity id linked to
// p. The boolean is false when no tier produced an id; callers treat
// that as "feature unavailable for this principal", not as a failure.
// Only a tier-3 transport error is returned as error.
func (r *Resolver) ResolveCorrespondentID(ctx context.Context, p *principal.Principal) (int64, bool, error) {
	// Tier 1: the live principal already carries the link.
	if id, ok := p.CorrespondentID(); ok {
		return id, true, nil
	}

	// Tier 2: the durable snapshot may be richer than the live
	// principal (e.g. live came from a lightweight login response).
	if id, ok := r.snapshotID(); ok {
		return id, true, nil
	}

	// Tier 3: one remote refetch of the full profile.
	raw, err := r.fetch.CurrentUser(ctx)
	if err != nil {
		return 0, false, err
	}

	refreshed := principal.Normalize(raw)
	if r.onRefresh != nil {
		r.onRefresh(&refreshed)
	}

	if id, ok := refreshed.CorrespondentID(); ok {
		return id, true, nil
	}

	// Exhausted: the principal simply has no correspondent link.
	return 0, false, nil
}

// Lookup fetches the correspondent business entity by id. Requires
// WithLookup at construction.
func (r *Resolver) Lookup(ctx context.Context, id int64) (*authclient.Correspondent, error) {
	if r.lookup == nil {
		return nil, ErrNoLookup
	}
	return r.lookup.Correspondent(ctx, id)
}

// snapshotID reads the correspondent id out of the stored snapshot.
// A malformed snapshot skips the tier; it is logged, never surfaced.
func (r *Resolver) snapshotID() (int64, bool) {
	snapshot, ok := r.store.Get(credstore.KeyPrincipalSnapshot)
	if !ok {
		return 0, false
	}

	p, err := principal.ParseSnapshot(snapshot)
	if err != nil {
		r.log.Warn("skipping malformed principal snapshot", slog.Any("error", err))
		return 0, false
	}

	return p.CorrespondentID()
}
