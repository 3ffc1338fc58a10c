package repo

import (
	"context"
	"errors"

	"github.com/hamed0406/userprobe/internal/domain"
)

var ErrNotFound = errors.New("not found")

// UserStore is the port the user API writes through.
type UserStore interface {
	// Put inserts or replaces the user with u.ID.
	Put(ctx context.Context, u domain.User) error
	// Get returns ErrNotFound when no user has the id.
	Get(ctx context.Context, id domain.UserID) (domain.User, error)
	// List returns all users ordered by id.
	List(ctx context.Context) ([]domain.User, error)
}
