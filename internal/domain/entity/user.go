// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the core entity of the system, representing a single account.
// PasswordHash is internal-only and must never cross the API boundary;
// it is empty for accounts provisioned through an external auth provider.
type User struct {
	ID              uint           // Surrogate primary key.
	Email           string         // Unique login identifier.
	PasswordHash    string         // Bcrypt hash; empty for OAuth-provisioned accounts.
	Name            string         // Display name, optional.
	Role            Role           // client, admin or seller.
	IsEmailVerified bool           // Whether the email address has been confirmed.
	AuthProvider    AuthProvider   // Where the account credentials live.
	GoogleID        *string        // External subject ID when AuthProvider is google.
	LastLogin       *time.Time     // Timestamp of the most recent successful login.
	Addresses       []Address      // Shipping/billing addresses owned by the user.
	Orders          []Order        // Orders placed by the user.
	Carts           []Cart         // Carts owned by the user.
	Reviews         []Review       // Product reviews written by the user.
	Notifications   []Notification // Notifications addressed to the user.
	Activities      []UserActivity // Append-only activity trail.
	Vendor          *Vendor        // Non-nil when the user has a seller profile.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AuthProvider identifies the credential origin of an account.
type AuthProvider string

const (
	// AuthProviderLocal indicates email/password credentials stored locally.
	AuthProviderLocal AuthProvider = "local"
	// AuthProviderGoogle indicates a Google-provisioned account.
	AuthProviderGoogle AuthProvider = "google"
)

// String returns the string representation of the AuthProvider.
func (p AuthProvider) String() string {
	return string(p)
}

// IsValid checks if the AuthProvider is a known value.
func (p AuthProvider) IsValid() bool {
	switch p {
	case AuthProviderLocal, AuthProviderGoogle:
		return true
	default:
		return false
	}
}

// Address is a shipping or billing address owned by a user.
type Address struct {
	ID          uint
	UserID      uint
	Label       string // Short human label, e.g. "home".
	FullAddress string
	IsPrimary   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
