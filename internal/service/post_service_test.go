package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fathima-sithara/social-service/internal/apperr"
	"github.com/fathima-sithara/social-service/internal/mocks"
	"github.com/fathima-sithara/social-service/internal/repository"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestPostService_Lifecycle(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := NewPostService(repository.NewMemoryPostStore(), zap.NewNop())

	p1, err := svc.Create(ctx, CreatePostInput{Text: "hello", Author: "a@x.io", AuthorName: "A"})
	req.NoError(err)
	req.False(p1.ID.IsZero())
	req.False(p1.Date.IsZero())

	_, err = svc.Create(ctx, CreatePostInput{Image: "http://img/1.png", Author: "b@x.io"})
	req.NoError(err)

	all, err := svc.List(ctx, "")
	req.NoError(err)
	req.Len(all, 2)

	mine, err := svc.List(ctx, "a@x.io")
	req.NoError(err)
	req.Len(mine, 1)

	req.NoError(svc.Delete(ctx, p1.ID.Hex()))
	req.ErrorIs(svc.Delete(ctx, p1.ID.Hex()), apperr.ErrNotFound)

	remaining, err := svc.List(ctx, "")
	req.NoError(err)
	req.Len(remaining, 1)
	req.Equal("b@x.io", remaining[0].Author)

	req.ErrorIs(svc.Delete(ctx, primitive.NewObjectID().Hex()), apperr.ErrNotFound)
	remaining, err = svc.List(ctx, "")
	req.NoError(err)
	req.Len(remaining, 1)
}

func TestPostService_CreateRequiresContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockPostStore(ctrl)
	svc := NewPostService(store, zap.NewNop())
	store.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Create(context.Background(), CreatePostInput{Author: "a@x.io"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Equal(t, "Post must contain either text or an image.", apperr.Message(err, ""))
}

func TestPostService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockPostStore(ctrl)
	svc := NewPostService(store, zap.NewNop())

	t.Run("unparseable id is not found", func(t *testing.T) {
		store.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
		require.ErrorIs(t, svc.Delete(context.Background(), "not-an-id"), apperr.ErrNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		id := primitive.NewObjectID()
		store.EXPECT().Delete(gomock.Any(), id).Return(false, errors.New("down"))
		require.ErrorIs(t, svc.Delete(context.Background(), id.Hex()), apperr.ErrStore)
	})
}
