// Package auth decides whether a caller may perform a privileged operation.
//
// The only implementation is a shared admin secret. It is a demo gate, not
// authentication: whoever knows the secret holds every capability.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized is returned when the presented credentials do not grant
// the requested capability.
var ErrUnauthorized = errors.New("unauthorized")

// Capability names a privileged operation.
type Capability string

const (
	DeleteEvent Capability = "events:delete"
)

// Credentials is what a caller presents with a privileged request.
type Credentials struct {
	Secret string
}

// Authorizer checks capabilities.
type Authorizer interface {
	Authorize(ctx context.Context, c Capability, creds Credentials) error
}

// SharedSecret grants its capabilities to anyone presenting the secret.
// Only a bcrypt hash of the secret is kept in memory.
type SharedSecret struct {
	hash         []byte
	capabilities map[Capability]bool
}

// NewSharedSecret hashes secret with the given bcrypt cost. With no
// capabilities listed, the secret grants DeleteEvent.
func NewSharedSecret(secret string, cost int, caps ...Capability) (*SharedSecret, error) {
	if secret == "" {
		return nil, errors.New("admin secret must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin secret: %w", err)
	}
	if len(caps) == 0 {
		caps = []Capability{DeleteEvent}
	}
	set := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		set[c] = true
	}
	return &SharedSecret{hash: hash, capabilities: set}, nil
}

func (s *SharedSecret) Authorize(_ context.Context, c Capability, creds Credentials) error {
	if !s.capabilities[c] {
		return fmt.Errorf("%w: capability %s is not grantable", ErrUnauthorized, c)
	}
	if bcrypt.CompareHashAndPassword(s.hash, []byte(creds.Secret)) != nil {
		return ErrUnauthorized
	}
	return nil
}
