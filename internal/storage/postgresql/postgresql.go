package postgresql

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Storage struct {
	db *pgxpool.Pool
}

// New opens a pool for dsn. A non-empty database replaces the database named in dsn.
func New(ctx context.Context, dsn, database string) (*Storage, error) {
	const op = "storage.postgresql.New"

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if database != "" {
		cfg.ConnConfig.Database = database
	}

	db, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

func (s *Storage) Stop() {
	s.db.Close()
}

// WithDatabase rewrites the path of a URL-style DSN to point at database.
func WithDatabase(dsn, database string) (string, error) {
	if database == "" {
		return dsn, nil
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("storage.postgresql.WithDatabase: %w", err)
	}
	if u.Scheme == "" || !strings.HasPrefix(u.Scheme, "postgres") {
		return "", errors.New("storage.postgresql.WithDatabase: dsn is not a postgres url")
	}

	u.Path = "/" + database

	return u.String(), nil
}
