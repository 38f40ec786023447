package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nyatsime/portal-api/internal/models"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

const statsCacheKey = "portal:stats"

type statsRepository interface {
	Snapshot(ctx context.Context) (*models.Stats, error)
}

// StatsService serves the dashboard aggregates, caching snapshots in
// Redis for the configured TTL. A nil client disables caching.
type StatsService struct {
	repo   statsRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewStatsService constructs a StatsService.
func NewStatsService(repo statsRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Snapshot returns the current aggregates, preferring the cached copy.
func (s *StatsService) Snapshot(ctx context.Context) (*models.Stats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var cached models.Stats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to collect stats")
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, raw, s.ttl).Err(); err != nil {
				s.logger.Warn("failed to cache stats snapshot", zap.Error(err))
			}
		}
	}

	return stats, nil
}
