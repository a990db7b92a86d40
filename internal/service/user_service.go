package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/veioenza/seqr/internal/models"
	"github.com/veioenza/seqr/internal/repository"
)

type UserService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// Authenticate resolves the username forwarded by the auth proxy. An empty
// or unknown username yields a nil user, which every view treats as
// anonymous.
func (s *UserService) Authenticate(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, nil
	}

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Debug("unknown remote user", zap.String("username", username))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", username, err)
	}
	return user, nil
}
