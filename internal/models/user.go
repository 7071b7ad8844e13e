package models

import "time"

// User is an account row. Local accounts carry a bcrypt PasswordHash and an
// empty Subject; identity-provider accounts carry the provider subject and an
// empty hash.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Subject      string
	CreatedAt    time.Time
}
