// Package authclient is the HTTP boundary to the authentication backend
// and the correspondent lookup backend. It owns the wire shapes, bearer
// header attachment, and the mapping of HTTP status codes onto the
// sentinel errors the session layer reacts to, most importantly
// ErrUnauthorized for 401 responses, which triggers session teardown
// upstream.
//
// Principal-bearing responses are returned as raw maps on purpose: the
// backend spells identity fields inconsistently across endpoints, and
// canonicalization is the job of principal.Normalize, not of this
// package.
//
// No retries happen here; retry policy, if any, belongs to the
// injected http.Client's transport.
package authclient
