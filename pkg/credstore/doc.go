// Package credstore provides the durable key/value holder for session
// credentials: the access token, the refresh token, and the serialized
// principal snapshot.
//
// The Store interface is deliberately dumb: synchronous string get/put
// with no validation, mirroring the browser-storage medium it abstracts.
// Interpretation of values (token expiry, snapshot parsing) belongs to
// the consumers. Two implementations ship out of the box: a concurrent
// in-memory store for tests and short-lived processes, and a file-backed
// store that survives restarts.
//
// # Usage
//
//	store := credstore.NewMemoryStore()
//	store.Put(credstore.KeyAccessToken, token)
//	if v, ok := store.Get(credstore.KeyAccessToken); ok {
//	    // ...
//	}
//	store.Clear() // logout
//
// Values are always fully overwritten per key; there are no partial
// updates, which keeps interleaved writers from corrupting state.
package credstore
