package services

import (
	"context"

	"haisou/internal/database"
	"haisou/internal/logger"
)

type CacheInvalidationService struct {
	db  database.DB
	log logger.Logger
}

func NewCacheInvalidationService(db database.DB) *CacheInvalidationService {
	return &CacheInvalidationService{
		db:  db,
		log: logger.New("CacheInvalidationService"),
	}
}

// InvalidateNames drops cached display names for the given codes. Failures
// are logged and skipped; a stale entry expires with its TTL anyway.
func (s *CacheInvalidationService) InvalidateNames(ctx context.Context, codes ...int) int {
	log := s.log.Function("InvalidateNames")

	dropped := 0
	for _, code := range codes {
		err := database.NewCacheBuilder(s.db.Cache.Names, database.NameCacheKey(code)).
			WithContext(ctx).
			Delete()
		if err != nil {
			log.Warn("failed to invalidate cached name", "code", code, "error", err)
			continue
		}
		dropped++
	}
	return dropped
}
