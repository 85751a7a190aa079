package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrSecretNotConfigured = errors.New("jwt secret not configured")
	ErrInvalidToken        = errors.New("invalid or expired token")
)

// Principal is the caller identity carried by a bearer token.
type Principal struct {
	UserID string
	Role   string
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secret []byte
	now    func() time.Time
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret), now: time.Now}
}

func (m *JWTManager) Issue(p Principal, ttl time.Duration) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrSecretNotConfigured
	}

	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *JWTManager) Parse(tokenStr string) (Principal, error) {
	if len(m.secret) == 0 {
		return Principal{}, ErrSecretNotConfigured
	}

	var c claims
	token, err := jwt.ParseWithClaims(tokenStr, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}
	if c.Subject == "" || c.Role == "" {
		return Principal{}, ErrInvalidToken
	}

	return Principal{UserID: c.Subject, Role: c.Role}, nil
}
