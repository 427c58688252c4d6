// Package gsp resolves GST Suvidha Provider gateways by name.
package gsp

import (
	"fmt"

	"gstsuite/internal/port"
)

// ProviderFactory builds a GSPProvider from decrypted per-business credentials
// and an optional provider-specific base URL override.
type ProviderFactory func(creds *port.GSPCredentials, baseURL string) (port.GSPProvider, error)

// registry of provider factories, populated by init() in each provider package
// or explicitly via Register.
var providers = map[string]ProviderFactory{}

// Register registers a provider factory by name.
func Register(name string, factory ProviderFactory) {
	providers[name] = factory
}

// New creates a GSPProvider by registry name.
func New(name string, creds *port.GSPCredentials, baseURL string) (port.GSPProvider, error) {
	factory, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown gsp provider: %s", name)
	}
	return factory(creds, baseURL)
}

// Registered reports whether a provider name is known.
func Registered(name string) bool {
	_, ok := providers[name]
	return ok
}
