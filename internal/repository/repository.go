package repository

import (
	"context"
	"errors"

	"github.com/fathima-sithara/social-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=../mocks/mock_repository.go -package=mocks

// MessageStore is the append-only message collection. Scans return records in
// arrival order.
type MessageStore interface {
	Insert(ctx context.Context, m *domain.Message) error
	FindTouching(ctx context.Context, userID string) ([]domain.Message, error)
	FindBetween(ctx context.Context, a, b string) ([]domain.Message, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, u *domain.User) error
	ListExcept(ctx context.Context, email string) ([]domain.User, error)
}

type PostStore interface {
	Insert(ctx context.Context, p *domain.Post) error
	List(ctx context.Context, author string) ([]domain.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Stores groups the collections the service runs on.
type Stores struct {
	Messages MessageStore
	Users    UserStore
	Posts    PostStore
	Health   Pinger
}
