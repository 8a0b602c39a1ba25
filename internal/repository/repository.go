package repository

import (
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"
)

const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type Repository struct {
	db    *pgxpool.Pool
	User  UserRepository
	Album AlbumRepository
	Media MediaRepository
	Stats StatsRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:    db,
		User:  NewUserRepository(db),
		Album: NewAlbumRepository(db),
		Media: NewMediaRepository(db),
		Stats: NewStatsRepository(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
