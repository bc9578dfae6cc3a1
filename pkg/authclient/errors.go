package authclient

import "errors"

var (
	// ErrUnauthorized indicates a 401 from any endpoint. The session
	// layer reacts by tearing the session down.
	ErrUnauthorized = errors.New("authclient.unauthorized")

	// ErrInvalidCredentials indicates a rejected login/password pair.
	ErrInvalidCredentials = errors.New("authclient.invalid_credentials")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("authclient.not_found")

	// ErrRemote indicates any other non-2xx backend response.
	ErrRemote = errors.New("authclient.remote_error")
)
