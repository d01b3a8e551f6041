package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fathima-sithara/social-service/internal/apperr"
	"github.com/fathima-sithara/social-service/internal/domain"
	"github.com/fathima-sithara/social-service/internal/mocks"
	"github.com/fathima-sithara/social-service/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryUserStore()
	svc := NewUserService(store, zap.NewNop())
	svc.cost = bcrypt.MinCost

	t.Run("should create and hash the password", func(t *testing.T) {
		req := require.New(t)
		created, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "a@x.io", Password: "Secret123!"})
		req.NoError(err)
		req.True(created)

		u, err := store.FindByEmail(ctx, "a@x.io")
		req.NoError(err)
		req.NotEqual("Secret123!", u.PasswordHash)
		req.NoError(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Secret123!")))
		req.False(u.CreatedAt.IsZero())
	})

	t.Run("should report existing user", func(t *testing.T) {
		req := require.New(t)
		created, err := svc.Register(ctx, RegisterInput{Name: "Again", Email: "a@x.io"})
		req.NoError(err)
		req.False(created)
	})

	t.Run("should require email", func(t *testing.T) {
		req := require.New(t)
		_, err := svc.Register(ctx, RegisterInput{Name: "NoMail"})
		req.ErrorIs(err, apperr.ErrMissingParameter)
	})
}

func TestUserService_RegisterRaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockUserStore(ctrl)
	svc := NewUserService(store, zap.NewNop())
	svc.cost = bcrypt.MinCost

	t.Run("duplicate key on insert means already exists", func(t *testing.T) {
		req := require.New(t)
		store.EXPECT().FindByEmail(gomock.Any(), "a@x.io").Return(nil, repository.ErrNotFound)
		store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(repository.ErrDuplicate)

		created, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.io"})
		req.NoError(err)
		req.False(created)
	})

	t.Run("lookup failure is a store error", func(t *testing.T) {
		req := require.New(t)
		store.EXPECT().FindByEmail(gomock.Any(), "b@x.io").Return(nil, errors.New("timeout"))
		store.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Register(context.Background(), RegisterInput{Email: "b@x.io"})
		req.ErrorIs(err, apperr.ErrStore)
		req.Equal("Failed to save user.", apperr.Message(err, ""))
	})
}

func TestUserService_ListOthers(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := repository.NewMemoryUserStore()
	req.NoError(store.Insert(ctx, &domain.User{Email: "a@x.io"}))
	req.NoError(store.Insert(ctx, &domain.User{Email: "b@x.io"}))
	req.NoError(store.Insert(ctx, &domain.User{Email: "c@x.io"}))
	svc := NewUserService(store, zap.NewNop())

	users, err := svc.ListOthers(ctx, "b@x.io")
	req.NoError(err)
	req.Len(users, 2)
	for _, u := range users {
		req.NotEqual("b@x.io", u.Email)
	}

	_, err = svc.ListOthers(ctx, "")
	req.ErrorIs(err, apperr.ErrMissingParameter)
	req.Equal("Email is required", apperr.Message(err, ""))
}
