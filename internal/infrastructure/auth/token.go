package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mohammedyahyaa/ECommerceTask/internal/config"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/user"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the authenticated identity extracted from a verified token.
// The application layer trusts these values; only authorization checks
// happen downstream.
type Claims struct {
	UserID   string
	Username string
	Role     user.Role
}

// TokenService issues and verifies HS256 JWTs carrying the user id,
// username and role.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

func (s *TokenService) Generate(u *user.User) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"role":     string(u.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) Verify(raw string) (*Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	username, _ := mapClaims["username"].(string)
	rawRole, _ := mapClaims["role"].(string)
	role, roleErr := user.ParseRole(rawRole)
	if sub == "" || roleErr != nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:   sub,
		Username: username,
		Role:     role,
	}, nil
}
