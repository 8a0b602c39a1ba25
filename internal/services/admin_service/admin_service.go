package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wedding_memories/internal/domain/models"
	"wedding_memories/internal/lib/logger/sl"
	"wedding_memories/internal/repository"
)

const (
	recentWindow    = 7 * 24 * time.Hour
	analyticsWindow = 30 * 24 * time.Hour
	maxTypeBuckets  = 100
)

// AdminService computes the dashboard and analytics aggregates. Time windows read uploaded_at,
// so records created through the direct-insert path are not counted in them.
type AdminService struct {
	log   *slog.Logger
	stats repository.StatsRepository
	now   func() time.Time
}

func NewAdminService(log *slog.Logger, stats repository.StatsRepository) *AdminService {
	return &AdminService{
		log:   log,
		stats: stats,
		now:   time.Now,
	}
}

func (s *AdminService) Dashboard(ctx context.Context) (models.DashboardStats, error) {
	const op = "services.AdminService.Dashboard"

	stats, err := s.stats.Dashboard(ctx, s.now().UTC().Add(-recentWindow))
	if err != nil {
		s.log.Error("failed to load dashboard", slog.String("op", op), sl.Err(err))
		return models.DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}

// Analytics returns daily upload counts for uploads within the last 30*24h (UTC days, ascending), counts per
// media type and the album and user totals.
func (s *AdminService) Analytics(ctx context.Context) (models.Analytics, error) {
	const op = "services.AdminService.Analytics"

	log := s.log.With(slog.String("op", op))

	now := s.now().UTC()

	daily, err := s.stats.DailyUploads(ctx, now.Add(-analyticsWindow))
	if err != nil {
		log.Error("failed to load daily uploads", sl.Err(err))
		return models.Analytics{}, fmt.Errorf("%s: %w", op, err)
	}

	byType, err := s.stats.MediaByType(ctx, maxTypeBuckets)
	if err != nil {
		log.Error("failed to load media by type", sl.Err(err))
		return models.Analytics{}, fmt.Errorf("%s: %w", op, err)
	}

	totals, err := s.stats.Dashboard(ctx, now.Add(-recentWindow))
	if err != nil {
		log.Error("failed to load totals", sl.Err(err))
		return models.Analytics{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Analytics{
		DailyUploads: daily,
		MediaByType:  byType,
		TotalAlbums:  totals.TotalAlbums,
		TotalUsers:   totals.TotalUsers,
	}, nil
}
