// Package guard gates navigation to protected views. Each guard
// evaluates the pure authz policy against the live session and, on
// denial, performs the corresponding navigation through the injected
// Navigator. Guards always resolve to a definite boolean; a caller is
// never left in a pending state.
package guard

import (
	"github.com/lexhub/authcore/pkg/authz"
	"github.com/lexhub/authcore/pkg/principal"
)

// Session is the slice of the session manager the guards read.
type Session interface {
	Principal() *principal.Principal
	IsAuthenticated() bool
}

// Navigator performs the navigation side effect of a denial.
type Navigator interface {
	// ToLogin navigates to the login screen. returnURL is where the
	// caller was headed and is restored after authentication.
	ToLogin(returnURL string)

	// ToUnauthorized navigates to the access-denied screen.
	ToUnauthorized()
}

// Guard bundles the four route policies over one session handle.
type Guard struct {
	session Session
	nav     Navigator
}

// New creates a Guard reading from session and navigating through nav.
func New(session Session, nav Navigator) *Guard {
	return &Guard{session: session, nav: nav}
}

// Authenticated admits any signed-in principal.
func (g *Guard) Authenticated(currentURL string) bool {
	return g.apply(authz.Decide(g.effective(), nil, currentURL))
}

// Admin admits ROLE_ADMIN holders. The check is two-stage: an
// unauthenticated caller goes to login first and never sees the
// access-denied screen.
func (g *Guard) Admin(currentURL string) bool {
	p := g.effective()
	if p == nil {
		return g.apply(authz.DenyLogin(currentURL))
	}
	return g.apply(authz.Decide(p, []string{principal.RoleAdmin}, currentURL))
}

// Roles admits principals holding any of the route's required roles.
// Routes without role metadata degrade to the authenticated-only
// check.
func (g *Guard) Roles(currentURL string, required []string) bool {
	return g.apply(authz.Decide(g.effective(), required, currentURL))
}

// Correspondent admits correspondent principals. The principal type is
// accepted alongside the role claim, covering principals whose claim
// was not yet repaired by normalization.
func (g *Guard) Correspondent(currentURL string) bool {
	p := g.effective()
	if p != nil && p.Type == principal.TypeCorrespondent {
		return g.apply(authz.Allowed())
	}
	return g.apply(authz.Decide(p, []string{principal.RoleCorrespondent}, currentURL))
}

// effective returns the principal the policy should see: nil when the
// session is signed out or its token has lapsed.
func (g *Guard) effective() *principal.Principal {
	if !g.session.IsAuthenticated() {
		return nil
	}
	return g.session.Principal()
}

// apply performs the navigation side effect of a denial and returns
// the boolean outcome.
func (g *Guard) apply(d authz.Decision) bool {
	if d.Allow {
		return true
	}

	switch d.Target {
	case authz.TargetLogin:
		g.nav.ToLogin(d.ReturnURL)
	case authz.TargetUnauthorized:
		g.nav.ToUnauthorized()
	}
	return false
}
