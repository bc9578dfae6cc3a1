package bearer

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Claims holds the subset of token claims this layer reads.
type Claims struct {
	Subject   string `json:"sub,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"` // Unix seconds
}

// Decode extracts the claims from the payload segment of a bearer
// token. The signature is NOT verified; Decode is for local expiry
// checks and diagnostics only.
func Decode(token string) (Claims, error) {
	var claims Claims

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return claims, ErrMalformedToken
	}

	payload, err := base64URLDecode(parts[1])
	if err != nil {
		return claims, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	if err := json.Unmarshal(payload, &claims); err != nil {
		return claims, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	return claims, nil
}

// IsExpired reports whether the token's exp claim is in the past.
// Malformed tokens and tokens without an expiry are expired.
func IsExpired(token string) bool {
	claims, err := Decode(token)
	if err != nil {
		return true
	}

	if claims.ExpiresAt <= 0 {
		return true
	}

	return time.Now().Unix() >= claims.ExpiresAt
}

// ExpiresAt returns the token's expiry time. Fails on malformed tokens
// and on tokens without an exp claim.
func ExpiresAt(token string) (time.Time, error) {
	claims, err := Decode(token)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt <= 0 {
		return time.Time{}, ErrNoExpiry
	}
	return time.Unix(claims.ExpiresAt, 0), nil
}

// base64URLDecode decodes base64url data, restoring the padding tokens
// omit per RFC 7515 but Go's decoder requires.
func base64URLDecode(s string) ([]byte, error) {
	switch len(s) % 4 {
	case 2:
		s += "=="
	case 3:
		s += "="
	}

	return base64.URLEncoding.DecodeString(s)
}
