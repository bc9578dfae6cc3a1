package credstore

// Keys used by the session layer. Consumers outside pkg/session and
// pkg/identity should not read these directly.
const (
	KeyAccessToken       = "accessToken"
	KeyRefreshToken      = "refreshToken"
	KeyPrincipalSnapshot = "principalSnapshot"
)

// Store is a synchronous string key/value holder for session
// credentials. Operations never fail from the caller's point of view;
// implementations absorb and log medium errors internally.
type Store interface {
	// Put stores value under key, overwriting any previous value.
	Put(key, value string)

	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool)

	// Remove deletes the value stored under key, if any.
	Remove(key string)

	// Clear removes all stored values.
	Clear()
}
