package service

import (
	"context"
	"errors"
	"time"

	"github.com/fathima-sithara/social-service/internal/apperr"
	"github.com/fathima-sithara/social-service/internal/domain"
	"github.com/fathima-sithara/social-service/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name      string
	Email     string
	Photo     string
	Password  string
	CreatedAt time.Time
}

type UserService struct {
	users repository.UserStore
	log   *zap.Logger
	cost  int
}

func NewUserService(users repository.UserStore, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log, cost: bcrypt.DefaultCost}
}

// Register stores a new profile. It reports created=false when the email is
// already registered, including when a concurrent request won the race.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (bool, error) {
	const op = "users.Register"

	if in.Email == "" {
		return false, apperr.MissingParameter(op, "Email is required")
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, repository.ErrNotFound):
		s.log.Error("lookup user failed", zap.String("email", in.Email), zap.Error(err))
		return false, apperr.Store(op, "Failed to save user.", err)
	}

	u := domain.User{
		Name:      in.Name,
		Email:     in.Email,
		Photo:     in.Photo,
		CreatedAt: in.CreatedAt,
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
		if err != nil {
			return false, apperr.Validation(op, "Password could not be accepted.")
		}
		u.PasswordHash = string(hash)
	}

	if err := s.users.Insert(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		s.log.Error("insert user failed", zap.String("email", in.Email), zap.Error(err))
		return false, apperr.Store(op, "Failed to save user.", err)
	}
	s.log.Info("user registered", zap.String("email", u.Email))
	return true, nil
}

func (s *UserService) ListOthers(ctx context.Context, email string) ([]domain.User, error) {
	const op = "users.ListOthers"

	if email == "" {
		return nil, apperr.MissingParameter(op, "Email is required")
	}
	users, err := s.users.ListExcept(ctx, email)
	if err != nil {
		s.log.Error("list users failed", zap.String("email", email), zap.Error(err))
		return nil, apperr.Store(op, "Failed to fetch users.", err)
	}
	return users, nil
}
