// Package config loads env-tagged configuration structs. It wraps
// github.com/caarlos0/env and github.com/joho/godotenv: an optional
// .env file is read once per process, then each struct is parsed from
// the environment.
//
//	type Config struct {
//	    BaseURL string `env:"AUTH_BASE_URL,required"`
//	}
//
//	var cfg authclient.Config
//	if err := config.Load(&cfg); err != nil { ... }
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParse is returned when the environment cannot be parsed into
	// the target struct.
	ErrParse = errors.New("config.parse_failed")

	// ErrNilPointer is returned for a nil target.
	ErrNilPointer = errors.New("config.nil_pointer")
)

var dotenvOnce sync.Once

// Load parses the environment into v. The default .env file, if one
// exists, is loaded into the environment on first use; a missing file
// is not an error.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	if err := env.Parse(v); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
