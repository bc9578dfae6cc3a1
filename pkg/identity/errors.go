package identity

import "errors"

var (
	// ErrNoLookup indicates Lookup was called on a resolver built
	// without a correspondent backend.
	ErrNoLookup = errors.New("identity.no_lookup_backend")
)
