// Package identity resolves the correspondent business-entity id
// linked to a principal. Lightweight backend responses (login) often
// omit the link that heavier ones (full profile) carry, so resolution
// walks a short-circuiting chain from cheapest to most complete:
//
//  1. the live principal's linked reference
//  2. the durable principal snapshot
//  3. one remote profile refetch
//
// Tier 3 has exactly one sanctioned side effect: a successful refetch
// is handed to the OnRefresh hook so the session can adopt the fresher
// principal. Wire it to session.Manager.UpdatePrincipal:
//
//	resolver := identity.New(store, client,
//	    identity.WithOnRefresh(manager.UpdatePrincipal),
//	)
//
// When all tiers come up empty the id is simply absent: a normal
// outcome meaning correspondent features do not apply to this
// principal, not an error.
package identity
