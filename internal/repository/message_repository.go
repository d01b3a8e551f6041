package repository

import (
	"context"
	"time"

	"github.com/fathima-sithara/social-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMessageRepository(coll *mongo.Collection, timeout time.Duration) *MessageRepository {
	return &MessageRepository{coll: coll, timeout: timeout}
}

func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender", Value: 1}}, Options: options.Index().SetName("sender_idx")},
		{Keys: bson.D{{Key: "receiver", Value: 1}}, Options: options.Index().SetName("receiver_idx")},
	})
	return err
}

// Insert stores m, assigning a fresh ObjectID when m has none.
func (r *MessageRepository) Insert(ctx context.Context, m *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, m)
	return err
}

func (r *MessageRepository) FindTouching(ctx context.Context, userID string) ([]domain.Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"sender": userID},
		{"receiver": userID},
	}}
	return r.find(ctx, filter)
}

func (r *MessageRepository) FindBetween(ctx context.Context, a, b string) ([]domain.Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"sender": a, "receiver": b},
		{"sender": b, "receiver": a},
	}}
	return r.find(ctx, filter)
}

// find scans in _id order, which is arrival order for driver-generated ids.
func (r *MessageRepository) find(ctx context.Context, filter bson.M) ([]domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Message{}
	for cur.Next(ctx) {
		var m domain.Message
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, cur.Err()
}
