package service

import (
	"context"
	"time"

	"github.com/fathima-sithara/social-service/internal/apperr"
	"github.com/fathima-sithara/social-service/internal/domain"
	"github.com/fathima-sithara/social-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CreatePostInput struct {
	Text       string
	Image      string
	Author     string
	AuthorName string
	Date       time.Time
}

type PostService struct {
	posts repository.PostStore
	log   *zap.Logger
}

func NewPostService(posts repository.PostStore, log *zap.Logger) *PostService {
	return &PostService{posts: posts, log: log}
}

func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*domain.Post, error) {
	const op = "posts.Create"

	if in.Text == "" && in.Image == "" {
		return nil, apperr.Validation(op, "Post must contain either text or an image.")
	}
	p := domain.Post{
		Text:       in.Text,
		Image:      in.Image,
		Author:     in.Author,
		AuthorName: in.AuthorName,
		Date:       in.Date,
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if err := s.posts.Insert(ctx, &p); err != nil {
		s.log.Error("insert post failed", zap.String("author", in.Author), zap.Error(err))
		return nil, apperr.Store(op, "Failed to submit post.", err)
	}
	return &p, nil
}

// List returns every post, or only those by authorEmail when it is set.
func (s *PostService) List(ctx context.Context, authorEmail string) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx, authorEmail)
	if err != nil {
		s.log.Error("list posts failed", zap.String("author", authorEmail), zap.Error(err))
		return nil, apperr.Store("posts.List", "Failed to fetch posts.", err)
	}
	return posts, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	const op = "posts.Delete"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NotFound(op, "Post not found.")
	}
	deleted, err := s.posts.Delete(ctx, oid)
	if err != nil {
		s.log.Error("delete post failed", zap.String("post_id", id), zap.Error(err))
		return apperr.Store(op, "Failed to delete post.", err)
	}
	if !deleted {
		return apperr.NotFound(op, "Post not found.")
	}
	s.log.Info("post deleted", zap.String("post_id", id))
	return nil
}
