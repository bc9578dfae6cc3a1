package session

import "errors"

var (
	// ErrNoRefreshToken indicates RefreshToken was called with no
	// refresh token stored. Redirecting the caller to login is the
	// caller's responsibility, not this method's.
	ErrNoRefreshToken = errors.New("session.no_refresh_token")
)
