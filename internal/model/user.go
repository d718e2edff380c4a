// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered account.
//
// The internal ID is an xid string (generated by the repository on insert).
// Email is UNIQUE in the database and matched case-sensitively — the lookup
// at login is an exact match on whatever string the user registered with.
//
// WHY IS PasswordHash TAGGED json:"-"?
// The hash must never leave the server. The "-" tag tells encoding/json to
// skip the field entirely, so even if a handler serialises a whole User
// (as /api/auth/me does), the hash cannot leak into a response.
//
// Profiles is the ordered-by-insertion list of viewing personas under this
// account. It is loaded by the repository when the full record is requested
// (GetByID) and left nil on cheaper lookups.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	FullName     string    `json:"full_name"  db:"full_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	Profiles     []Profile `json:"profiles"`
}

// Profile is a named viewing persona under one account.
//
// Each profile has its own watchlist — a set of content IDs. The watchlist
// lives in its own table and is not embedded here; handlers that need it go
// through the watchlist operations instead. A profile is owned exclusively
// by its user and is never shared or transferred.
type Profile struct {
	ID        string    `json:"id"         db:"id"`
	UserID    string    `json:"-"          db:"user_id"`
	Name      string    `json:"name"       db:"name"`
	Avatar    string    `json:"avatar"     db:"avatar"`
	IsKids    bool      `json:"is_kids"    db:"is_kids"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
