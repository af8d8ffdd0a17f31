package model

import "time"

// Role is a user's role in the organization
type Role string

const (
	RoleHRManager Role = "HR_MANAGER"
	RoleEmployee  Role = "EMPLOYEE"
	RoleAdmin     Role = "ADMIN"
)

// User is an employee or HR manager account
type User struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Email      string    `json:"email" bson:"email"`
	Name       string    `json:"name" bson:"name"`
	Role       Role      `json:"role" bson:"role"`
	Department string    `json:"department,omitempty" bson:"department,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
