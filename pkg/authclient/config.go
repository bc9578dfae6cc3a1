package authclient

import "time"

// Config holds backend connection settings, loaded from the
// environment by pkg/config.
type Config struct {
	// BaseURL is the root of the auth backend API.
	BaseURL string `env:"AUTH_BASE_URL,required"`

	// RequestTimeout bounds each backend call end to end.
	RequestTimeout time.Duration `env:"AUTH_REQUEST_TIMEOUT" envDefault:"15s"`
}
