package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/hamed0406/userprobe/internal/domain"
	"github.com/hamed0406/userprobe/internal/repo"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), filepath.Join(t.TempDir(), "users.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_Upsert(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	u := domain.User{ID: 43, Record: domain.DefaultRecord()}
	if err := s.Put(ctx, u); err != nil {
		t.Fatalf("Put: %v", err)
	}
	u.Email = "other@gmail.com"
	if err := s.Put(ctx, u); err != nil {
		t.Fatalf("Put replace: %v", err)
	}

	got, err := s.Get(ctx, 43)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != u {
		t.Fatalf("want %+v, got %+v", u, got)
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("upsert should keep one row, got %d", len(all))
	}
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	_, err := openStore(t).Get(context.Background(), 7)
	if !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_ListEmptyAndOrdered(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	all, err := s.List(ctx)
	if err != nil || all == nil || len(all) != 0 {
		t.Fatalf("want empty non-nil list, got %v err=%v", all, err)
	}
	for _, id := range []domain.UserID{5, 1} {
		if err := s.Put(ctx, domain.User{ID: id, Record: domain.DefaultRecord()}); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	all, _ = s.List(ctx)
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 5 {
		t.Fatalf("unexpected order: %+v", all)
	}
}
