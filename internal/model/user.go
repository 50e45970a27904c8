package model

import "time"

// User represents an application user record as stored in the `users` table.
// Clients, suppliers and staff all live in this one table; the UserType
// column tells them apart. Suppliers additionally own a row in `suppliers`
// that references back here for their display name and contact details.
//
// Fields:
//
//	ID            – primary key identifier of the user.
//	Firstname     – given name.
//	Lastname      – family name.
//	Username      – unique login name (login accepts email or username).
//	Email         – unique email address.
//	ContactNumber – phone contact.
//	PasswordHash  – bcrypt hashed password.
//	UserType      – role of the account (Client, Supplier, Staff, Admin).
//	Address       – free-form postal address.
//	UserImg       – filename of the uploaded profile picture (nullable).
type User struct {
	ID            uint64
	Firstname     string
	Lastname      string
	Username      string
	Email         string
	ContactNumber string
	PasswordHash  string
	UserType      string
	Address       string
	UserImg       *string
}

// User types stored in users.user_type.
const (
	UserTypeClient   = "Client"
	UserTypeSupplier = "Supplier"
	UserTypeStaff    = "Staff"
	UserTypeAdmin    = "Admin"
)

// RefreshToken models an entry in the `refresh_tokens` table. Each refresh
// token belongs to a user and contains metadata for expiry and revocation.
// The plain token is never stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
