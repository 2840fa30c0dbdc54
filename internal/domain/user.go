package domain

import "time"

// User represents a registered account holder.
type User struct {
	ID             string
	Email          string
	Name           string
	ContactNumber  string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
