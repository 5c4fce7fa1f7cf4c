// Package auth implements the access_token cookie gate.
//
// The default verifier is a single process-wide shared secret. It has no
// rotation and no per-user identity; BcryptSecret shows how a stronger scheme
// slots in without touching the handlers.
package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/spacesedan/textanalytics/config"
	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier decides whether a presented secret grants access. It is
// used both for the /login password and for the cookie on every request.
type CredentialVerifier interface {
	Verify(secret string) bool
}

type SharedSecret struct {
	secret []byte
}

func NewSharedSecret(secret string) SharedSecret {
	return SharedSecret{secret: []byte(secret)}
}

func (s SharedSecret) Verify(secret string) bool {
	return subtle.ConstantTimeCompare([]byte(secret), s.secret) == 1
}

// BcryptSecret keeps only a bcrypt hash of the secret in memory.
type BcryptSecret struct {
	hash []byte
}

func NewBcryptSecret(hash string) (BcryptSecret, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return BcryptSecret{}, fmt.Errorf("invalid bcrypt hash: %w", err)
	}
	return BcryptSecret{hash: []byte(hash)}, nil
}

func (b BcryptSecret) Verify(secret string) bool {
	return bcrypt.CompareHashAndPassword(b.hash, []byte(secret)) == nil
}

// NewVerifier picks the verifier configured for this process.
func NewVerifier(cfg config.Config) (CredentialVerifier, error) {
	if cfg.APIKeyHash != "" {
		slog.Info("[Auth] Using bcrypt hashed API key")
		return NewBcryptSecret(cfg.APIKeyHash)
	}

	if cfg.UsesDefaultAPIKey() {
		slog.Warn("[Auth] API_KEY is not set, falling back to the built-in default. Anyone can log in with it.",
			slog.String("api_key", config.DefaultAPIKey))
	}
	return NewSharedSecret(cfg.APIKey), nil
}
