// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Account represents a registered account in the system.
// It contains authentication credentials and metadata for account management.
type Account struct {
	// ID is the unique identifier for the account.
	ID uint `gorm:"primaryKey"`

	// Email is the account's email address used for authentication.
	// It must be unique across all accounts.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordDigest is the bcrypt digest of the account's password.
	// Plaintext passwords are never stored.
	PasswordDigest string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the account was last updated.
	UpdatedAt time.Time
}
