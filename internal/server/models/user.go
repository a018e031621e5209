package models

import "time"

// User is the persisted account record. PasswordHash never leaves the
// service: every caller-facing response goes through Redacted().
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// RedactedUser is the caller-facing view of a User.
type RedactedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Redacted strips the password hash and creation timestamp.
func (u *User) Redacted() RedactedUser {
	return RedactedUser{ID: u.ID, Email: u.Email, Name: u.Name}
}
