// Package domain contains the core business entities and value objects.
package domain

import (
	"fmt"
	"strings"
)

// Credential is one access key for the generation backend.
// Credentials are created once at start-up and never mutated.
type Credential struct {
	// Name is a human-readable label used in diagnostics ("Primary Key").
	Name string

	// Secret is the raw API key.
	Secret string
}

// String returns the credential label with a masked secret, safe for logs.
func (c Credential) String() string {
	return fmt.Sprintf("%s(%s)", c.Name, MaskSecret(c.Secret))
}

// MaskSecret returns a masked version of a secret for logging.
// Shows the first 4 and last 4 characters of long secrets.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 12 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

// CredentialPool holds the ordered set of usable credentials.
// The first credential is tried first within every attempt cycle.
//
// A pool is immutable after construction and therefore safe for concurrent use
// without locking.
type CredentialPool struct {
	credentials []Credential
}

// NewCredentialPool builds a pool from the given credentials.
// Blank secrets are skipped and duplicate secrets keep only their first
// occurrence, so the resulting order is the configured priority order.
func NewCredentialPool(credentials ...Credential) *CredentialPool {
	p := &CredentialPool{
		credentials: make([]Credential, 0, len(credentials)),
	}

	seen := make(map[string]struct{}, len(credentials))
	for _, c := range credentials {
		c.Secret = strings.TrimSpace(c.Secret)
		if c.Secret == "" {
			continue
		}
		if _, exists := seen[c.Secret]; exists {
			continue
		}
		seen[c.Secret] = struct{}{}
		if c.Name == "" {
			c.Name = SlotName(len(p.credentials))
		}
		p.credentials = append(p.credentials, c)
	}

	return p
}

// NewCredentialPoolFromSecrets builds a pool from raw secrets, naming each
// by its slot position.
func NewCredentialPoolFromSecrets(secrets ...string) *CredentialPool {
	creds := make([]Credential, 0, len(secrets))
	for _, s := range secrets {
		creds = append(creds, Credential{Secret: s})
	}
	return NewCredentialPool(creds...)
}

// SlotName returns the diagnostic label for the credential at index i.
func SlotName(i int) string {
	if i == 0 {
		return "Primary Key"
	}
	return fmt.Sprintf("Alternate Key %d", i)
}

// Available returns a copy of the credentials in priority order.
func (p *CredentialPool) Available() []Credential {
	if p == nil {
		return nil
	}
	result := make([]Credential, len(p.credentials))
	copy(result, p.credentials)
	return result
}

// Len returns the number of credentials in the pool.
func (p *CredentialPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.credentials)
}

// IsEmpty reports whether the pool holds no credentials.
func (p *CredentialPool) IsEmpty() bool {
	return p.Len() == 0
}
