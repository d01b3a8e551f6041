package repository

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Connect dials uri and pings the primary, retrying with exponential backoff
// until maxElapsed has passed. The returned client is owned by the caller and
// must be released with Disconnect.
func Connect(ctx context.Context, uri string, maxElapsed time.Duration, log *zap.Logger) (*mongo.Client, error) {
	var client *mongo.Client
	attempt := 0

	operation := func() error {
		attempt++
		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			// a malformed URI will not get better
			return backoff.Permanent(err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := c.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = c.Disconnect(context.Background())
			log.Warn("mongo ping failed", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		client = c
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxElapsed
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	log.Info("mongo connected", zap.Int("attempts", attempt))
	return client, nil
}

// Disconnect closes the client pool.
func Disconnect(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// NewMongoStores builds the three repositories on db.
func NewMongoStores(client *mongo.Client, db *mongo.Database, users, posts, messages string, timeout time.Duration) *Stores {
	return &Stores{
		Messages: NewMessageRepository(db.Collection(messages), timeout),
		Users:    NewUserRepository(db.Collection(users), timeout),
		Posts:    NewPostRepository(db.Collection(posts), timeout),
		Health:   mongoPinger{client: client},
	}
}

// EnsureIndexes creates the indexes every repository relies on.
func EnsureIndexes(ctx context.Context, s *Stores) error {
	type indexer interface {
		EnsureIndexes(ctx context.Context) error
	}
	for _, st := range []any{s.Messages, s.Users, s.Posts} {
		if ix, ok := st.(indexer); ok {
			if err := ix.EnsureIndexes(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}
