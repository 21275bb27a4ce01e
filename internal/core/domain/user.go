package domain

import "time"

// Role is the privilege level stored on a user record.
type Role string

const (
	RoleUser  Role = "user"
	RoleChef  Role = "chef"
	RoleAdmin Role = "admin"
)

// UserStatus flags accounts that admins have marked as fraudulent.
type UserStatus string

const (
	UserActive UserStatus = "active"
	UserFraud  UserStatus = "fraud"
)

// User is a marketplace account. Role is the single source of truth for
// privilege; role requests only record the approval trail.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Address      string     `json:"address,omitempty"`
	PasswordHash string     `json:"-"`
	PhotoURL     string     `json:"photoURL,omitempty"`
	Status       UserStatus `json:"status"`
	Role         Role       `json:"role"`
	ChefID       string     `json:"chefId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
