package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hamed0406/userprobe/internal/domain"
	"github.com/hamed0406/userprobe/internal/repo"
)

type Store struct {
	mu    sync.RWMutex
	users map[domain.UserID]domain.User
}

func New() *Store {
	return &Store{users: make(map[domain.UserID]domain.User)}
}

func (m *Store) Put(ctx context.Context, u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *Store) Get(ctx context.Context, id domain.UserID) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (m *Store) List(ctx context.Context) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ repo.UserStore = (*Store)(nil)
