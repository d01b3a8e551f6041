package repository

import (
	"context"
	"sync"

	"github.com/fathima-sithara/social-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewMemoryStores returns process-local stores for development and tests.
// Contents are lost on restart.
func NewMemoryStores() *Stores {
	return &Stores{
		Messages: NewMemoryMessageStore(),
		Users:    NewMemoryUserStore(),
		Posts:    NewMemoryPostStore(),
		Health:   memoryPinger{},
	}
}

type MemoryMessageStore struct {
	mu   sync.RWMutex
	msgs []domain.Message
}

func NewMemoryMessageStore() *MemoryMessageStore {
	return &MemoryMessageStore{}
}

func (s *MemoryMessageStore) Insert(_ context.Context, m *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	s.msgs = append(s.msgs, *m)
	return nil
}

func (s *MemoryMessageStore) FindTouching(_ context.Context, userID string) ([]domain.Message, error) {
	return s.filter(func(m domain.Message) bool { return m.Involves(userID) }), nil
}

func (s *MemoryMessageStore) FindBetween(_ context.Context, a, b string) ([]domain.Message, error) {
	return s.filter(func(m domain.Message) bool {
		return (m.Sender == a && m.Receiver == b) || (m.Sender == b && m.Receiver == a)
	}), nil
}

func (s *MemoryMessageStore) filter(keep func(domain.Message) bool) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Message{}
	for _, m := range s.msgs {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

type MemoryUserStore struct {
	mu      sync.RWMutex
	users   []domain.User
	byEmail map[string]int
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{byEmail: make(map[string]int)}
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := s.users[i]
	return &u, nil
}

func (s *MemoryUserStore) Insert(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return ErrDuplicate
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.byEmail[u.Email] = len(s.users)
	s.users = append(s.users, *u)
	return nil
}

func (s *MemoryUserStore) ListExcept(_ context.Context, email string) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.User{}
	for _, u := range s.users {
		if u.Email != email {
			out = append(out, u)
		}
	}
	return out, nil
}

type MemoryPostStore struct {
	mu    sync.RWMutex
	posts []domain.Post
}

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{}
}

func (s *MemoryPostStore) Insert(_ context.Context, p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.posts = append(s.posts, *p)
	return nil
}

func (s *MemoryPostStore) List(_ context.Context, author string) ([]domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Post{}
	for _, p := range s.posts {
		if author == "" || p.Author == author {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryPostStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memoryPinger struct{}

func (memoryPinger) Ping(context.Context) error { return nil }
