// Package auth stores and resolves provider API keys.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/wanddns/internal/platform/providers"
	"nathanbeddoewebdev/wanddns/internal/util"
)

const ServiceName = "wanddns"

var (
	ErrTokenNotFound = errors.New("auth token not found")

	// ErrNoCredential means no source produced an API key.
	ErrNoCredential = errors.New("no API key configured")
)

type Store interface {
	SetToken(provider string, token string) error
	GetToken(provider string) (string, error)
	DeleteToken(provider string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeProvider normalizes a provider name for consistent key lookup.
func NormalizeProvider(provider string) string {
	return util.NormalizeKey(provider)
}

// Source names where a resolved key came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
)

// Resolved is an API key and its origin. For SourceEnv, Origin is the
// variable name.
type Resolved struct {
	Token  string
	Source Source
	Origin string
}

// Resolve picks the API key for spec: flagValue if non-empty, then the
// spec's environment variables in order, then the store. A store failure
// other than ErrTokenNotFound is returned as is.
func Resolve(spec providers.CredentialSpec, flagValue string, getenv func(string) string, store Store) (Resolved, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return Resolved{Token: v, Source: SourceFlag}, nil
	}
	if getenv != nil {
		for _, name := range spec.EnvVars {
			if v := strings.TrimSpace(getenv(name)); v != "" {
				return Resolved{Token: v, Source: SourceEnv, Origin: name}, nil
			}
		}
	}
	if store != nil {
		token, err := store.GetToken(spec.Provider)
		switch {
		case err == nil && strings.TrimSpace(token) != "":
			return Resolved{Token: strings.TrimSpace(token), Source: SourceKeyring}, nil
		case err != nil && !errors.Is(err, ErrTokenNotFound):
			return Resolved{}, fmt.Errorf("auth: failed to read keychain: %w", err)
		}
	}
	return Resolved{}, fmt.Errorf("%w: pass --api-key, set %s, or run `wanddns auth login %s`",
		ErrNoCredential, strings.Join(spec.EnvVars, " or "), spec.Provider)
}
