package authclient

import "context"

// Credentials is the bearer token pair issued by the auth backend.
type Credentials struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Correspondent is the business entity a CORRESPONDENTE principal may
// be linked to. Only the fields this core reads are modeled.
type Correspondent struct {
	ID     int64  `json:"id"`
	Name   string `json:"nome"`
	Email  string `json:"email,omitempty"`
	Active bool   `json:"ativo"`
}

// Client is the narrow interface the session and identity layers
// consume. Implementations must return ErrUnauthorized for 401
// responses and ErrInvalidCredentials for rejected logins.
type Client interface {
	// Login exchanges a login/password pair for credentials. The raw
	// map carries the principal-ish fields of the response for
	// principal.Normalize.
	Login(ctx context.Context, login, password string) (Credentials, map[string]any, error)

	// Refresh exchanges a refresh token for a new credential pair.
	Refresh(ctx context.Context, refreshToken string) (Credentials, error)

	// CurrentUser fetches the full profile of the bearer's principal.
	CurrentUser(ctx context.Context) (map[string]any, error)

	// Validate asks the backend whether the bearer is still accepted.
	// The response body is opaque; only the status matters.
	Validate(ctx context.Context) error

	// Correspondent looks up a correspondent business entity by id.
	Correspondent(ctx context.Context, id int64) (*Correspondent, error)
}

// TokenSource supplies the current access token for outgoing requests.
// The second return reports whether a token is available at all.
type TokenSource func() (string, bool)
