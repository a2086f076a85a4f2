package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	// AdminTokenTTL is how long an admin session token stays valid
	AdminTokenTTL = 12 * time.Hour
	adminIssuer   = "bakery-api"
	adminSubject  = "admin"
)

var (
	// ErrInvalidPassword is returned when the admin password does not match
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidToken is returned for missing, expired or forged admin tokens
	ErrInvalidToken = errors.New("invalid admin token")
)

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminService checks the admin password and issues admin session tokens
type AdminService struct {
	password string
	secret   []byte
	now      func() time.Time
}

var adminServiceInstance *AdminService

// NewAdminService creates an admin service. Without a secret no tokens
// are issued and VerifyPassword only reports whether the password matched.
func NewAdminService(password, secret string) *AdminService {
	return &AdminService{password: password, secret: []byte(secret), now: time.Now}
}

// InitAdminService creates the admin service and makes it the global instance
func InitAdminService(password, secret string) *AdminService {
	adminServiceInstance = NewAdminService(password, secret)
	return adminServiceInstance
}

// GetAdminService returns the initialized admin service
func GetAdminService() *AdminService {
	return adminServiceInstance
}

// SetAdminService sets the admin service instance (primarily for testing)
func SetAdminService(service *AdminService) {
	adminServiceInstance = service
}

// TokensEnabled reports whether admin tokens are issued and checked
func (s *AdminService) TokensEnabled() bool {
	return len(s.secret) > 0
}

// VerifyPassword compares password with the configured one in constant
// time. On success it returns a signed admin token, or "" when tokens are
// disabled.
func (s *AdminService) VerifyPassword(password string) (string, error) {
	if password == "" {
		return "", invalid("Password is required")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", ErrInvalidPassword
	}
	if !s.TokensEnabled() {
		return "", nil
	}
	return s.issueToken()
}

func (s *AdminService) issueToken() (string, error) {
	now := s.now()
	claims := adminClaims{
		Role: adminSubject,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    adminIssuer,
			Subject:   adminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AdminTokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return token, nil
}

// ValidateToken checks an admin token's signature, expiry and role
func (s *AdminService) ValidateToken(tokenString string) error {
	if !s.TokensEnabled() || tokenString == "" {
		return ErrInvalidToken
	}

	claims := &adminClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Role != adminSubject || claims.Issuer != adminIssuer {
		return ErrInvalidToken
	}
	return nil
}
