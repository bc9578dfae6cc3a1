// Package principal defines the canonical signed-in identity record and
// the normalizer that produces it from the backend's loosely shaped
// responses.
//
// The remote API spells the same fields differently across endpoints:
// the display name may arrive as "nome" or "nomeCompleto", the email as
// "email" or "emailPrincipal", role claims as "roles" (plain strings)
// or "authorities" (Spring-style objects), and the linked correspondent
// either as a nested object or as a bare id under one of two key names.
// Rather than patching these per call site, Normalize maps every known
// spelling into one canonical Principal and repairs known-missing
// invariants, in one tested place.
//
// Normalize is pure and idempotent: feeding a normalized principal's
// own wire form back through it yields the same principal.
//
// # Role claims
//
// RoleClaims is an ordered set; index 0 is the primary role used for
// display. Normalization appends, never reorders, so the primary role
// survives invariant repair.
package principal
