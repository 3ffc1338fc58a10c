package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/hamed0406/userprobe/internal/domain"
	"github.com/hamed0406/userprobe/internal/repo"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
  id    INTEGER PRIMARY KEY,
  name  TEXT    NOT NULL,
  email TEXT    NOT NULL,
  age   INTEGER NOT NULL
)`

var _ repo.UserStore = (*Store)(nil)

type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// New opens (or creates) the database file at path and applies the schema.
func New(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	log.Info("sqlite_open", zap.String("path", path))
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Put(ctx context.Context, u domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, age)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (id)
		 DO UPDATE SET name=excluded.name, email=excluded.email, age=excluded.age`,
		int64(u.ID), u.Name, u.Email, u.Age,
	)
	if err != nil {
		return fmt.Errorf("upsert user %d: %w", u.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id domain.UserID) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, email, age FROM users WHERE id = ?`, int64(id))
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Age); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, repo.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (s *Store) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email, age FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Age); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
