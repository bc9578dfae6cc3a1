// Package bearer inspects bearer access tokens locally, without network
// calls and without signature verification. The only claim this layer
// trusts is exp; everything else the token carries is opaque here and
// validated by the backend on use.
//
// Validation is fail-closed: a token that cannot be decoded (wrong
// segment count, bad base64, bad JSON, missing expiry) is reported as
// expired, never as valid.
//
//	if bearer.IsExpired(token) {
//	    // treat caller as unauthenticated
//	}
package bearer
