package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/mohammedyahyaa/ECommerceTask/internal/domain/user"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/repository"
	"github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/auth"
	"github.com/mohammedyahyaa/ECommerceTask/pkg/logger"
)

// Service manages user accounts. Passwords are stored bcrypt-hashed and
// never leave this layer in plain text.
type Service struct {
	users repository.UserRepository
	log   logger.Logger
}

func NewService(users repository.UserRepository, log logger.Logger) *Service {
	return &Service{users: users, log: log}
}

type RegisterCommand struct {
	Username string
	Password string
	Role     domain.Role
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*domain.User, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, domain.ErrMissingField
	}

	existing, err := s.users.FindByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := domain.NewUser(uuid.NewString(), cmd.Username, hash, cmd.Role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.log.Info("user registered",
		logger.String("user_id", u.ID),
		logger.String("role", string(u.Role)),
	)
	return u, nil
}

type UpdateCommand struct {
	Username string
	Password string
	Role     domain.Role
}

func (s *Service) Update(ctx context.Context, id string, cmd UpdateCommand) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}

	if cmd.Username != "" && cmd.Username != u.Username {
		existing, err := s.users.FindByUsername(ctx, cmd.Username)
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrUsernameTaken
		}
		u.Username = cmd.Username
	}
	if cmd.Password != "" {
		hash, err := auth.HashPassword(cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	if cmd.Role != "" {
		role, err := domain.ParseRole(string(cmd.Role))
		if err != nil {
			return nil, err
		}
		u.Role = role
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return domain.ErrNotFound
	}
	return s.users.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}
