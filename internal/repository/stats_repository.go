package repository

import (
	"context"
	"fmt"
	"time"

	"wedding_memories/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
)

// StatsRepo runs the admin aggregates. Time windows are evaluated against uploaded_at.
type StatsRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *StatsRepo) Dashboard(ctx context.Context, recentSince time.Time) (models.DashboardStats, error) {
	const op = "repository.StatsRepo.Dashboard"

	query, args, err := r.sb.Select().
		Column("(SELECT COUNT(*) FROM users)").
		Column("(SELECT COUNT(*) FROM albums)").
		Column("(SELECT COUNT(*) FROM media)").
		Column(sq.Expr("(SELECT COUNT(*) FROM media WHERE status = ?)", models.MediaStatusFlagged)).
		Column(sq.Expr("(SELECT COUNT(*) FROM media WHERE uploaded_at >= ?)", recentSince)).
		Column("(SELECT COALESCE(SUM(file_size), 0)::BIGINT FROM media)").
		Column(sq.Expr("(SELECT COUNT(DISTINCT uploaded_by) FROM media WHERE uploaded_at >= ?)", recentSince)).
		ToSql()
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}

	var stats models.DashboardStats
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&stats.TotalUsers,
		&stats.TotalAlbums,
		&stats.TotalMedia,
		&stats.FlaggedMedia,
		&stats.RecentUploads,
		&stats.StorageUsedBytes,
		&stats.ActiveUploaders,
	)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}

// DailyUploads buckets uploads by UTC calendar day, oldest first.
func (r *StatsRepo) DailyUploads(ctx context.Context, since time.Time) ([]models.DailyCount, error) {
	const op = "repository.StatsRepo.DailyUploads"

	query, args, err := r.sb.Select("to_char(uploaded_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day", "COUNT(*)").
		From("media").
		Where(sq.GtOrEq{"uploaded_at": since}).
		GroupBy("day").
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	counts := make([]models.DailyCount, 0)
	for rows.Next() {
		var dc models.DailyCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		counts = append(counts, dc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return counts, nil
}

func (r *StatsRepo) MediaByType(ctx context.Context, limit uint64) ([]models.TypeCount, error) {
	const op = "repository.StatsRepo.MediaByType"

	query, args, err := r.sb.Select("type", "COUNT(*)").
		From("media").
		GroupBy("type").
		OrderBy("type ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	counts := make([]models.TypeCount, 0)
	for rows.Next() {
		var tc models.TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		counts = append(counts, tc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return counts, nil
}
