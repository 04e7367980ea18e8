package model

import "time"

// Account represents a registered user as stored in the `accounts`
// table.  The email column is unique at the store level; the password
// is only ever kept as a bcrypt hash.
//
// Fields:
//  ID           – primary key identifier of the account.
//  Email        – unique email address used to log in.
//  PasswordHash – bcrypt hash of the password.
//  Name         – display name shown in the navigation bar.
//  CreatedAt    – timestamp of registration.
type Account struct {
	ID           uint64    // accounts.id
	Email        string    // accounts.email
	PasswordHash string    // accounts.password_hash
	Name         string    // accounts.name
	CreatedAt    time.Time // accounts.created_at
}
