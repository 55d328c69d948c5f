// Package model defines the core domain entities shared across the application.
package model

import "time"

// User represents a registered assistant user, keyed by phone number.
type User struct {
	CreatedAt time.Time
	ID        string
	Phone     string
	Name      string
	Email     string
	IsActive  bool
}

// FirstName returns the first word of the user's name for greetings.
func (u *User) FirstName() string {
	for i, r := range u.Name {
		if r == ' ' {
			return u.Name[:i]
		}
	}
	return u.Name
}
