package admin

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"liquorhole/internal/domain"
)

// TokenTTL is how long an admin session token stays valid.
const TokenTTL = 4 * time.Hour

// Service exchanges the shared admin password for a short-lived signed
// session token and verifies tokens on admin requests.
type Service struct {
	password     string
	passwordHash string
	secret       []byte
}

// New configures the admin boundary. Exactly one of password or passwordHash
// (a bcrypt hash) should be set; when both are, the hash wins.
func New(password, passwordHash, jwtSecret string) (*Service, error) {
	if password == "" && passwordHash == "" {
		return nil, errors.New("admin password not configured")
	}
	if jwtSecret == "" {
		return nil, errors.New("admin jwt secret not configured")
	}
	return &Service{
		password:     password,
		passwordHash: passwordHash,
		secret:       []byte(jwtSecret),
	}, nil
}

// Login checks the shared secret and issues an HS256 token valid for
// TokenTTL. A wrong password is ErrUnauthorized, never a detailed reason.
func (s *Service) Login(password string) (string, error) {
	if !s.passwordMatches(password) {
		return "", domain.ErrUnauthorized
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// VerifyToken validates signature and expiry. Any failure maps to
// ErrUnauthorized.
func (s *Service) VerifyToken(token string) error {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return domain.ErrUnauthorized
	}
	return nil
}

func (s *Service) passwordMatches(password string) bool {
	if password == "" {
		return false
	}
	if s.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.password), []byte(password)) == 1
}
