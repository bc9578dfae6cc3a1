// Package session orchestrates the signed-in session: login, logout,
// token refresh, the cached current principal, and the principal-change
// stream that guards and views consume.
//
// A Manager is constructed once at process start and handed to every
// consumer; there is no ambient singleton. It is the sole writer of the
// credential store and the single broadcaster of principal changes;
// every other component holds only transient references obtained
// through Principal() or a subscription, never an independent copy that
// could go stale silently.
//
// # Architecture
//
//	┌──────────┐  login/refresh/me   ┌─────────────┐
//	│ Manager  │ ──────────────────► │ authclient  │
//	└──────────┘                     └─────────────┘
//	   │     │ tokens + snapshot
//	   │     ▼
//	   │  ┌───────────┐
//	   │  │ credstore │
//	   │  └───────────┘
//	   ▼ publish
//	┌─────────────┐
//	│ Subscribers │ (guards, permission views)
//	└─────────────┘
//
// IsAuthenticated is derived on every read from the stored access token
// and its exp claim; it is never cached. A 401 observed on any guarded
// call is funneled through HandleUnauthorized, which tears the session
// down (store cleared, nil published) and hands the original error
// back; navigation stays with the guard.
//
// # Concurrency
//
// The live principal sits behind an RWMutex; publication happens
// synchronously with the write that caused it. Concurrent RefreshToken
// calls are deliberately not serialized: the last response to complete
// determines the stored pair. This mirrors the backend's contract and
// is a documented hazard, not a guarantee.
package session
