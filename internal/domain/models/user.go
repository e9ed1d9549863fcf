package models

import "time"

// User roles.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleStaff   = "Staff"
)

// User is an operator of the dashboard.
type User struct {
	Meta       `bson:",inline" yaml:",inline"`
	Name       string     `json:"name" bson:"name" yaml:"name" validate:"required"`
	Email      string     `json:"email" bson:"email" yaml:"email" validate:"required,email"`
	Role       string     `json:"role" bson:"role" yaml:"role" validate:"omitempty,oneof=Admin Manager Staff"`
	Status     string     `json:"status" bson:"status" yaml:"status" validate:"omitempty,oneof=Active Inactive"`
	LastActive *time.Time `json:"last_active,omitempty" bson:"last_active,omitempty" yaml:"last_active,omitempty"`
}

func (u User) WithID(id string) User { u.ID = id; return u }

func (u User) Stamped(created, updated time.Time) User {
	u.Meta = u.Meta.stamped(created, updated)
	return u
}

// Validate checks the required fields, role and status.
func (u User) Validate() error { return check(u) }
