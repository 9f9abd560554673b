// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// WHY json:"-" ON PasswordHash?
// The hash must never leave the server. Tagging the field with "-" tells
// encoding/json to skip it entirely, so no handler can accidentally leak it
// in a response — even if it passes the whole struct to writeJSON.
//
// The username and email both carry UNIQUE constraints in the database;
// registration rejects duplicates of either with a Conflict error.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at"`
}
