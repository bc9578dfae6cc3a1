package bearer

import "errors"

var (
	// ErrMalformedToken indicates the token could not be decoded.
	ErrMalformedToken = errors.New("bearer.malformed_token")

	// ErrNoExpiry indicates the token carries no exp claim.
	ErrNoExpiry = errors.New("bearer.no_expiry")
)
