// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"marketplace/config"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/service"
)

// Default strength policy, used when no PasswordStrength config is present.
const (
	defaultMinPasswordLength = 8
	defaultMaxPasswordLength = 128
)

// Common substrings rejected regardless of the configured policy.
//
//nolint:gochecknoglobals
var forbiddenPasswordWords = []string{"password", "admin", "marketplace"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength *config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{
		cost:     cost,
		strength: cfg.PasswordStrength,
	}
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost factor.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

// Hash validates password strength and generates a salted hash using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks a plaintext password against the
// configured strength policy.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	minLength := defaultMinPasswordLength
	maxLength := defaultMaxPasswordLength
	requireUppercase := true
	requireLowercase := true
	requireNumbers := true
	requireSpecial := true

	if h.strength != nil {
		if h.strength.MinLength > 0 {
			minLength = h.strength.MinLength
		}
		if h.strength.MaxLength > 0 {
			maxLength = h.strength.MaxLength
		}
		requireUppercase = h.strength.RequireUppercase
		requireLowercase = h.strength.RequireLowercase
		requireNumbers = h.strength.RequireNumbers
		requireSpecial = h.strength.RequireSpecial
	}

	if len(password) < minLength {
		return domainerrors.ErrPasswordTooWeak.WrapMessage("must be at least 8 characters long")
	}
	if len(password) > maxLength {
		return domainerrors.ErrPasswordTooWeak.WrapMessage("exceeds maximum length")
	}
	if requireLowercase && !h.hasLowercase(password) {
		return domainerrors.ErrPasswordTooWeak.WrapMessage("must contain at least one lowercase letter")
	}
	if requireUppercase && !h.hasUppercase(password) {
		return domainerrors.ErrPasswordTooWeak.WrapMessage("must contain at least one uppercase letter")
	}
	if requireNumbers && !h.hasNumbers(password) {
		return domainerrors.ErrPasswordTooWeak.WrapMessage("must contain at least one number")
	}
	if requireSpecial && !h.hasSpecialChars(password) {
		return domainerrors.ErrPasswordTooWeak.WrapMessage("must contain at least one special character")
	}
	if h.containsForbiddenWords(password, forbiddenPasswordWords) {
		return domainerrors.ErrPasswordForbiddenWords.WrapMessage("contains forbidden words")
	}

	return nil
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}

	return false
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}

	return false
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

func (h *bcryptHasher) containsForbiddenWords(password string, words []string) bool {
	lowered := strings.ToLower(password)
	for _, word := range words {
		if strings.Contains(lowered, word) {
			return true
		}
	}

	return false
}
