package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	appErrors "github.com/noah-isme/avaliacao-fisica-api/pkg/errors"
)

const campusListCacheKey = "campus:list"

type campusRepository interface {
	List(ctx context.Context) ([]models.Campus, error)
}

// CampusService serves campus reference data, cached when Redis is available.
type CampusService struct {
	repo   campusRepository
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewCampusService constructs the service. cache may be nil.
func NewCampusService(repo campusRepository, cache *CacheService, ttl time.Duration, logger *zap.Logger) *CampusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampusService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// List returns campuses ordered by name.
func (s *CampusService) List(ctx context.Context) ([]models.Campus, error) {
	var cached []models.Campus
	if s.cache.Get(ctx, campusListCacheKey, &cached) {
		return cached, nil
	}

	campuses, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list campuses", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to list campuses")
	}
	s.cache.Set(ctx, campusListCacheKey, campuses, s.ttl)
	return campuses, nil
}

// Invalidate drops the cached list, used after seeding.
func (s *CampusService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, campusListCacheKey)
}
