package service

import (
	"context"
	"errors"
	"os"
	"time"

	"pulsecheck/internal/model"
	"pulsecheck/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnknownEmployee    = errors.New("no employee with that email")
)

// AuthService handles HR manager and employee authentication
type AuthService struct {
	userRepo        repository.UserRepo
	managerUsername string
	managerPassword string
	jwtSecret       []byte
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepo) *AuthService {
	username := os.Getenv("HR_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("HR_PASSWORD")
	if password == "" {
		password = "password123"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		userRepo:        userRepo,
		managerUsername: username,
		managerPassword: password,
		jwtSecret:       []byte(secret),
	}
}

// Login validates manager credentials and returns a token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.managerUsername || password != s.managerPassword {
		return nil, ErrInvalidCredentials
	}

	managerID := "mgr_" + uuid.New().String()[:8]

	claims := &model.ManagerClaims{
		ManagerID: managerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:     tokenString,
		ManagerID: managerID,
	}, nil
}

// EmployeeToken looks up an employee by email and issues a session token
func (s *AuthService) EmployeeToken(ctx context.Context, email string) (*model.EmployeeTokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != model.RoleEmployee {
		return nil, ErrUnknownEmployee
	}

	claims := &model.EmployeeClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.EmployeeTokenResponse{
		Token:  tokenString,
		UserID: user.ID,
		Name:   user.Name,
	}, nil
}

// ValidateManagerToken validates a manager JWT and returns claims
func (s *AuthService) ValidateManagerToken(tokenString string) (*model.ManagerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.ManagerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.ManagerClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateEmployeeToken validates an employee JWT and returns claims
func (s *AuthService) ValidateEmployeeToken(tokenString string) (*model.EmployeeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.EmployeeClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.EmployeeClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
