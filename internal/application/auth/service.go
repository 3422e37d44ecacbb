package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/repository"
	domain "github.com/mohammedyahyaa/ECommerceTask/internal/domain/user"
	infra "github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/auth"
	"github.com/mohammedyahyaa/ECommerceTask/pkg/logger"
)

// ErrBadCredentials is deliberately the same for unknown usernames and
// wrong passwords.
var ErrBadCredentials = errors.New("invalid username or password")

type Service struct {
	users  repository.UserRepository
	tokens *infra.TokenService
	log    logger.Logger
}

func NewService(users repository.UserRepository, tokens *infra.TokenService, log logger.Logger) *Service {
	return &Service{users: users, tokens: tokens, log: log}
}

// Login verifies the password and issues a signed token for the session.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil || !infra.CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrBadCredentials
	}

	token, err := s.tokens.Generate(u)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	s.log.Info("user logged in", logger.String("user_id", u.ID))
	return token, u, nil
}
