// Package permview decides whether a UI fragment gated by role claims
// is visible. A View re-evaluates whenever its required roles change or
// the session publishes a new principal; hiding never discards the
// configured roles, so a later principal change can reveal the fragment
// again without outside help.
package permview

import (
	"context"
	"slices"
	"sync"

	"github.com/lexhub/authcore/pkg/authz"
	"github.com/lexhub/authcore/pkg/principal"
	"github.com/lexhub/authcore/pkg/session"
)

// Source is the slice of the session manager a view consumes.
type Source interface {
	Principal() *principal.Principal
	IsAuthenticated() bool
	Subscribe(ctx context.Context) *session.Subscriber
}

// View tracks visibility of one role-gated fragment.
type View struct {
	src Source

	mu         sync.RWMutex
	roles      []string
	requireAll bool
	visible    bool
}

// New creates a view with no role requirement, which is always
// visible.
func New(src Source) *View {
	v := &View{src: src}
	v.recompute(v.effective())
	return v
}

// SetRoles replaces the required role list and re-evaluates. With
// requireAll every role must be held; otherwise any one suffices. An
// empty list makes the view unconditionally visible.
func (v *View) SetRoles(roles []string, requireAll bool) {
	v.mu.Lock()
	v.roles = slices.Clone(roles)
	v.requireAll = requireAll
	v.mu.Unlock()

	v.recompute(v.effective())
}

// Visible reports the current visibility.
func (v *View) Visible() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.visible
}

// Run consumes principal changes until ctx ends or the session shuts
// down, re-evaluating visibility on every event.
func (v *View) Run(ctx context.Context) {
	sub := v.src.Subscribe(ctx)
	defer sub.Close()

	for {
		select {
		case change, ok := <-sub.Changes():
			if !ok {
				return
			}
			v.recompute(change.Principal)
		case <-ctx.Done():
			return
		}
	}
}

// effective returns the principal visibility should be judged on: nil
// when signed out or the token has lapsed.
func (v *View) effective() *principal.Principal {
	if !v.src.IsAuthenticated() {
		return nil
	}
	return v.src.Principal()
}

func (v *View) recompute(p *principal.Principal) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.roles) == 0 {
		v.visible = true
		return
	}

	if v.requireAll {
		v.visible = authz.DecideAll(p, v.roles, "").Allow
	} else {
		v.visible = authz.Decide(p, v.roles, "").Allow
	}
}
