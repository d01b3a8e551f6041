package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fathima-sithara/social-service/internal/domain"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryMessageStore_FindKeepsArrivalOrder(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := NewMemoryMessageStore()
	now := time.Now().UTC()

	in := []domain.Message{
		{Sender: "A", Receiver: "B", Text: "1", Timestamp: now},
		{Sender: "C", Receiver: "A", Text: "2", Timestamp: now.Add(-time.Minute)},
		{Sender: "B", Receiver: "A", Text: "3", Timestamp: now.Add(time.Minute)},
		{Sender: "C", Receiver: "D", Text: "4", Timestamp: now},
	}
	for i := range in {
		req.NoError(s.Insert(ctx, &in[i]))
		req.False(in[i].ID.IsZero())
	}

	touching, err := s.FindTouching(ctx, "A")
	req.NoError(err)
	req.Len(touching, 3)
	req.Equal("1", touching[0].Text)
	req.Equal("2", touching[1].Text)
	req.Equal("3", touching[2].Text)

	between, err := s.FindBetween(ctx, "B", "A")
	req.NoError(err)
	req.Len(between, 2)
	req.Equal("1", between[0].Text)
	req.Equal("3", between[1].Text)

	none, err := s.FindTouching(ctx, "Z")
	req.NoError(err)
	req.NotNil(none)
	req.Empty(none)
}

func TestMemoryMessageStore_ConcurrentInsert(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := NewMemoryMessageStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := domain.Message{Sender: "A", Receiver: "B", Timestamp: time.Now()}
			_ = s.Insert(ctx, &m)
		}()
	}
	wg.Wait()

	got, err := s.FindBetween(ctx, "A", "B")
	req.NoError(err)
	req.Len(got, 50)
}

func TestMemoryUserStore(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := NewMemoryUserStore()

	_, err := s.FindByEmail(ctx, "a@x.io")
	req.ErrorIs(err, ErrNotFound)

	req.NoError(s.Insert(ctx, &domain.User{Name: "A", Email: "a@x.io"}))
	req.NoError(s.Insert(ctx, &domain.User{Name: "B", Email: "b@x.io"}))
	req.ErrorIs(s.Insert(ctx, &domain.User{Name: "A2", Email: "a@x.io"}), ErrDuplicate)

	u, err := s.FindByEmail(ctx, "a@x.io")
	req.NoError(err)
	req.Equal("A", u.Name)

	others, err := s.ListExcept(ctx, "a@x.io")
	req.NoError(err)
	req.Len(others, 1)
	req.Equal("b@x.io", others[0].Email)
}

func TestMemoryPostStore(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := NewMemoryPostStore()

	p1 := domain.Post{Text: "hello", Author: "a@x.io"}
	p2 := domain.Post{Image: "http://img/1.png", Author: "b@x.io"}
	req.NoError(s.Insert(ctx, &p1))
	req.NoError(s.Insert(ctx, &p2))

	all, err := s.List(ctx, "")
	req.NoError(err)
	req.Len(all, 2)

	mine, err := s.List(ctx, "b@x.io")
	req.NoError(err)
	req.Len(mine, 1)
	req.Equal(p2.ID, mine[0].ID)

	ok, err := s.Delete(ctx, p1.ID)
	req.NoError(err)
	req.True(ok)

	ok, err = s.Delete(ctx, p1.ID)
	req.NoError(err)
	req.False(ok)

	ok, err = s.Delete(ctx, primitive.NewObjectID())
	req.NoError(err)
	req.False(ok)
}

func TestMemoryStores_Ping(t *testing.T) {
	require.NoError(t, NewMemoryStores().Health.Ping(context.Background()))
}
