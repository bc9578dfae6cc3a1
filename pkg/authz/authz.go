// Package authz is the pure authorization decision function. Given a
// principal (nil meaning unauthenticated) and a required role set, it
// returns allow or a redirect target. It is stateless, does no I/O,
// and performs no navigation; guards own the side effects.
package authz

import "github.com/lexhub/authcore/pkg/principal"

// Target names the redirect destination of a denial.
type Target int

const (
	// TargetLogin sends the caller to the login screen, carrying the
	// URL to return to after authentication.
	TargetLogin Target = iota + 1

	// TargetUnauthorized sends an authenticated but under-privileged
	// caller to the access-denied screen.
	TargetUnauthorized
)

func (t Target) String() string {
	switch t {
	case TargetLogin:
		return "login"
	case TargetUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Decision is the outcome of a policy check.
type Decision struct {
	Allow     bool
	Target    Target // set when Allow is false
	ReturnURL string // set for TargetLogin denials
}

// Allowed is the positive decision.
func Allowed() Decision {
	return Decision{Allow: true}
}

// DenyLogin denies and redirects to login, preserving where the caller
// was headed.
func DenyLogin(returnURL string) Decision {
	return Decision{Target: TargetLogin, ReturnURL: returnURL}
}

// DenyUnauthorized denies and redirects to the access-denied screen.
func DenyUnauthorized() Decision {
	return Decision{Target: TargetUnauthorized}
}

// Decide checks the principal against the required roles with
// any-match semantics. A nil principal means unauthenticated and is
// always sent to login. An empty requirement is the weakest check:
// any authenticated principal passes.
func Decide(p *principal.Principal, required []string, currentURL string) Decision {
	if p == nil {
		return DenyLogin(currentURL)
	}

	if len(required) == 0 {
		return Allowed()
	}

	if p.HasAnyRole(required...) {
		return Allowed()
	}

	return DenyUnauthorized()
}

// DecideAll is Decide with all-match semantics: every required role
// must be present. Used by the "require all" permission-view variant.
func DecideAll(p *principal.Principal, required []string, currentURL string) Decision {
	if p == nil {
		return DenyLogin(currentURL)
	}

	if len(required) == 0 {
		return Allowed()
	}

	if p.HasAllRoles(required...) {
		return Allowed()
	}

	return DenyUnauthorized()
}
