package models

import (
	"time"

	"github.com/google/uuid"
)

// Role of an authenticated actor.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a member of the community. Rating is a derived aggregate,
// recomputed from rated help requests; it is never authoritative on its own.
type User struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Role       Role      `json:"role"`
	Rating     float64   `json:"rating"`
	TotalHelps int       `json:"total_helps"`
	IsHelper   bool      `json:"is_helper"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Address    string    `json:"address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Actor is the authenticated identity attached to every request by the
// auth middleware. The core trusts it and only performs authorization
// checks against it.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
