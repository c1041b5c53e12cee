package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coderr-web/api/coderr"
	"coderr-web/dao/redis"
	"coderr-web/logger"
	"coderr-web/models"
)

// CacheWarmerService periodically re-fetches the first offer-list page under
// every ordering so the common entry points are served from the cache.
type CacheWarmerService struct {
	offerDao  *redis.RedisOfferDAO
	coderrApi coderr.CoderrAPI
	pageSize  int
	log       *slog.Logger
}

// NewCacheWarmerService constructs a new warmer with dependencies.
func NewCacheWarmerService(
	offerDao *redis.RedisOfferDAO,
	coderrApi coderr.CoderrAPI,
	pageSize int,
) *CacheWarmerService {
	return &CacheWarmerService{
		offerDao:  offerDao,
		coderrApi: coderrApi,
		pageSize:  pageSize,
		log:       logger.Component("CacheWarmerService"),
	}
}

// StartPeriodicJob launches the background loop at the given interval. It stops when ctx is done.
func (cw *CacheWarmerService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go cw.startPeriodicJob(ctx, interval)
}

func (cw *CacheWarmerService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cw.log.Info("cache warmer stopped")
			return
		case <-ticker.C:
			cw.log.Info("running periodic cache warm job")
			warmed, err := cw.WarmCache(ctx)
			if err != nil {
				cw.log.Error("cache warm job failed", slog.Int("warmed", warmed), slog.String("error", err.Error()))
			} else {
				cw.log.Info("cache warm job completed", slog.Int("warmed", warmed))
			}
		}
	}
}

// warmFilters lists the first page under no ordering and every selectable one.
func warmFilters() []models.OfferListFilter {
	filters := []models.OfferListFilter{models.NewOfferListFilter()}
	for _, o := range models.Orderings {
		f := models.NewOfferListFilter()
		f.Ordering = o
		filters = append(filters, f)
	}
	return filters
}

// WarmCache fetches every warm filter from the API and overwrites its cache entry.
// It keeps going after a failed filter and reports the first error.
func (cw *CacheWarmerService) WarmCache(ctx context.Context) (int, error) {
	var firstErr error
	warmed := 0

	for _, f := range warmFilters() {
		if err := ctx.Err(); err != nil {
			return warmed, err
		}
		resp, err := cw.coderrApi.ListOffers(ctx, f, cw.pageSize)
		if err != nil {
			cw.log.Warn("warm fetch failed", slog.String("ordering", string(f.Ordering)), slog.String("error", err.Error()))
			if firstErr == nil {
				firstErr = fmt.Errorf("warm ordering %q: %w", f.Ordering, err)
			}
			continue
		}
		if err := cw.offerDao.SetOfferList(ctx, f, cw.pageSize, resp); err != nil {
			cw.log.Warn("warm cache write failed", slog.String("ordering", string(f.Ordering)), slog.String("error", err.Error()))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		warmed++
	}
	return warmed, firstErr
}
