package models

import "time"

// Account holds the credential block nested inside a user record.
// Passwords are stored and compared as-is; the login check happens on the
// client against the fetched record, so the store never hashes them.
type Account struct {
	Email      string `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	ActiveCode string `json:"activeCode"`
	IsActive   bool   `json:"isActive"`
}

// Address is the postal block nested inside a user record.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode int    `json:"zipCode"`
}

// User represents an account holder. Stored in PostgreSQL by the store
// server; cached locally as JSON by the client after login.
type User struct {
	ID        string    `json:"_id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Account   Account   `json:"account" gorm:"embedded;embeddedPrefix:account_"`
	Address   Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// CreateUserRequest defines the request body for registering a new user
type CreateUserRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=50"`
	Avatar  string  `json:"avatar,omitempty" validate:"omitempty,url"`
	Account Account `json:"account" validate:"required"`
	Address Address `json:"address"`
}

// UpdateUserRequest defines the request body for updating a user profile.
// Password, when present, replaces the stored account password; the
// reset flow verifies an OTP before sending it.
type UpdateUserRequest struct {
	Name     string   `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Avatar   string   `json:"avatar,omitempty" validate:"omitempty,url"`
	Address  *Address `json:"address,omitempty"`
	Password string   `json:"password,omitempty" validate:"omitempty,min=6"`
}
