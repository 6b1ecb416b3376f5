// Package providers holds provider credential metadata shared between the
// DNS client and the auth subsystem.
package providers

import "nathanbeddoewebdev/wanddns/internal/util"

// CredentialSpec describes where a provider's API key can come from.
type CredentialSpec struct {
	// Provider is the normalized provider name and the keychain key.
	Provider string

	// DisplayName is the human-readable provider name.
	DisplayName string

	// Prompt is the label shown when asking for the key interactively.
	Prompt string

	// EnvVars are consulted in order when no key is given on the command
	// line.
	EnvVars []string
}

// DigitalOcean is the only provider wanddns talks to.
var DigitalOcean = CredentialSpec{
	Provider:    "digitalocean",
	DisplayName: "DigitalOcean",
	Prompt:      "Personal access token (read and write scope for domains)",
	EnvVars:     []string{"WANDDNS_API_KEY", "DIGITALOCEAN_ACCESS_TOKEN"},
}

var knownSpecs = []CredentialSpec{DigitalOcean}

// Lookup returns the CredentialSpec for the given provider name,
// or nil if no spec is registered for that provider.
func Lookup(providerName string) *CredentialSpec {
	normalized := util.NormalizeKey(providerName)
	for i := range knownSpecs {
		if knownSpecs[i].Provider == normalized {
			return &knownSpecs[i]
		}
	}
	return nil
}

// Names returns the registered provider names.
func Names() []string {
	out := make([]string, len(knownSpecs))
	for i, s := range knownSpecs {
		out[i] = s.Provider
	}
	return out
}
