package model

import "github.com/golang-jwt/jwt/v5"

// ManagerClaims are JWT claims for HR manager authentication
type ManagerClaims struct {
	ManagerID string `json:"managerId"`
	jwt.RegisteredClaims
}

// EmployeeClaims are JWT claims for employee survey sessions
type EmployeeClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for manager login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful manager login
type LoginResponse struct {
	Token     string `json:"token"`
	ManagerID string `json:"managerId"`
}

// EmployeeTokenRequest is the request body for an employee session token
type EmployeeTokenRequest struct {
	Email string `json:"email"`
}

// EmployeeTokenResponse is returned after a successful employee lookup
type EmployeeTokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}
