package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPClient implements Client over plain HTTP. It attaches the bearer
// header from a TokenSource on every request and maps status codes to
// sentinel errors. It performs no retries.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// Option configures the HTTP client.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client. Timeout and
// retry policy live there, not in this package.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		if c != nil {
			h.http = c
		}
	}
}

// WithTokenSource sets the supplier of the bearer token attached to
// authenticated requests.
func WithTokenSource(src TokenSource) Option {
	return func(h *HTTPClient) {
		h.tokens = src
	}
}

// NewHTTP creates a client for the backend at baseURL.
func NewHTTP(baseURL string, opts ...Option) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("authclient: empty base URL")
	}

	h := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"senha"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login exchanges a login/password pair for credentials plus the raw
// principal-ish fields of the response.
func (h *HTTPClient) Login(ctx context.Context, login, password string) (Credentials, map[string]any, error) {
	var raw map[string]any
	err := h.call(ctx, http.MethodPost, "/login", loginRequest{Login: login, Password: password}, &raw, false)
	if err != nil {
		// The backend answers 401 for a bad password; on the login
		// endpoint that means rejected credentials, not a dead
		// session, so ErrUnauthorized must not leak out of here.
		if isStatus(err, http.StatusUnauthorized) || isStatus(err, http.StatusBadRequest) {
			return Credentials{}, nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, err.Error())
		}
		return Credentials{}, nil, err
	}

	creds := Credentials{
		AccessToken:  stringField(raw, "token"),
		RefreshToken: stringField(raw, "refreshToken"),
	}
	if creds.AccessToken == "" {
		return Credentials{}, nil, fmt.Errorf("%w: login response missing token", ErrRemote)
	}
	return creds, raw, nil
}

// Refresh exchanges a refresh token for a new credential pair.
func (h *HTTPClient) Refresh(ctx context.Context, refreshToken string) (Credentials, error) {
	var creds Credentials
	if err := h.call(ctx, http.MethodPost, "/refresh", refreshRequest{RefreshToken: refreshToken}, &creds, false); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// CurrentUser fetches the bearer's full profile as a raw map.
func (h *HTTPClient) CurrentUser(ctx context.Context) (map[string]any, error) {
	var raw map[string]any
	if err := h.call(ctx, http.MethodGet, "/me", nil, &raw, true); err != nil {
		return nil, err
	}
	return raw, nil
}

// Validate asks the backend whether the bearer is still accepted.
func (h *HTTPClient) Validate(ctx context.Context) error {
	return h.call(ctx, http.MethodGet, "/validate", nil, nil, true)
}

// Correspondent looks up a correspondent business entity by id.
func (h *HTTPClient) Correspondent(ctx context.Context, id int64) (*Correspondent, error) {
	var c Correspondent
	if err := h.call(ctx, http.MethodGet, fmt.Sprintf("/correspondent/%d", id), nil, &c, true); err != nil {
		return nil, err
	}
	return &c, nil
}

// statusError carries the HTTP status alongside the mapped sentinel so
// Login can distinguish a rejected password from a dead session.
type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

func isStatus(err error, status int) bool {
	var se *statusError
	return errors.As(err, &se) && se.status == status
}

// call issues one request. out may be nil when the body is opaque.
func (h *HTTPClient) call(ctx context.Context, method, path string, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("authclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("authclient: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if authed && h.tokens != nil {
		if token, ok := h.tokens(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := h.http.Do(req)
	if err != nil {
		return fmt.Errorf("authclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return h.statusToError(resp, method, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s response: %w", ErrRemote, method, path, err)
	}
	return nil
}

func (h *HTTPClient) statusToError(resp *http.Response, method, path string) error {
	// Read a little of the body for the error message; the content is
	// untrusted and never parsed.
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))

	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusNotFound:
		sentinel = ErrNotFound
	default:
		sentinel = ErrRemote
	}

	return &statusError{
		status: resp.StatusCode,
		err: fmt.Errorf("%w: %s %s: status %d: %s",
			sentinel, method, path, resp.StatusCode, bytes.TrimSpace(snippet)),
	}
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}
