// Package credentials hashes and verifies patient and administrator passwords.
package credentials

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Parameters mirror the values the legacy system derived keys with, so
// pre-migration hashes keep verifying.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltBytes    = 16

	// formatPrefix tags hashes produced by this service. Stored values
	// without it are treated as pre-migration formats (see Verify).
	formatPrefix = "scrypt:"
	separator    = ":"
)

// Service derives and checks password hashes. Key derivation is CPU-bound,
// so concurrent derivations are capped to keep request handling responsive.
type Service struct {
	sem chan struct{}
}

// NewService creates a credential service allowing up to maxConcurrent
// simultaneous key derivations.
func NewService(maxConcurrent int) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Service{sem: make(chan struct{}, maxConcurrent)}
}

// Hash derives a key from password with a fresh random salt and returns the
// encoded form "scrypt:<salt>:<key>" (hex-encoded salt and key).
func (s *Service) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("credentials: generate salt: %w", err)
	}
	hexSalt := hex.EncodeToString(salt)

	key, err := s.derive(ctx, password, hexSalt)
	if err != nil {
		return "", err
	}
	return formatPrefix + hexSalt + separator + hex.EncodeToString(key), nil
}

// Verify reports whether password matches the stored credential. Three stored
// formats are accepted:
//
//   - "scrypt:<salt>:<key>": current format, re-derive and compare
//   - "<salt>:<key>": pre-marker scrypt hash from the migration era
//   - anything else: legacy plaintext, compared directly
//
// The plaintext path exists only until all records are migrated.
func (s *Service) Verify(ctx context.Context, password, stored string) (bool, error) {
	if stored == "" {
		return false, nil
	}

	if rest, ok := strings.CutPrefix(stored, formatPrefix); ok {
		hexSalt, hexKey, ok := strings.Cut(rest, separator)
		if !ok {
			return false, fmt.Errorf("credentials: malformed stored hash")
		}
		return s.compareDerived(ctx, password, hexSalt, hexKey)
	}

	if hexSalt, hexKey, ok := strings.Cut(stored, separator); ok {
		return s.compareDerived(ctx, password, hexSalt, hexKey)
	}

	// Legacy plaintext record.
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1, nil
}

func (s *Service) compareDerived(ctx context.Context, password, hexSalt, hexKey string) (bool, error) {
	want, err := hex.DecodeString(hexKey)
	if err != nil {
		return false, fmt.Errorf("credentials: decode stored key: %w", err)
	}
	got, err := s.derive(ctx, password, hexSalt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// derive runs scrypt under the concurrency cap. It blocks until a worker slot
// frees up or ctx is done.
func (s *Service) derive(ctx context.Context, password, hexSalt string) ([]byte, error) {
	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return nil, fmt.Errorf("credentials: derive: %w", ctx.Err())
	}

	key, err := scrypt.Key([]byte(password), []byte(hexSalt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("credentials: derive key: %w", err)
	}
	return key, nil
}
