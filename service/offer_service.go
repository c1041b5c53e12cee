package services

import (
	"context"
	"log/slog"
	"time"

	"coderr-web/api"
	"coderr-web/api/coderr"
	"coderr-web/dao/redis"
	"coderr-web/logger"
	"coderr-web/metrics"
	"coderr-web/models"
)

type OfferService struct {
	offerDao  *redis.RedisOfferDAO
	coderrApi coderr.CoderrAPI
	pageSize  int
	metrics   metrics.MetricsCollector
	log       *slog.Logger
}

// NewOfferService constructs a new OfferService with Redis and API dependency injection.
func NewOfferService(
	offerDao *redis.RedisOfferDAO,
	coderrApi coderr.CoderrAPI,
	pageSize int,
	collector metrics.MetricsCollector) *OfferService {

	if collector == nil {
		collector = metrics.Noop{}
	}
	return &OfferService{
		offerDao:  offerDao,
		coderrApi: coderrApi,
		pageSize:  pageSize,
		metrics:   collector,
		log:       logger.Component("OfferService"),
	}
}

// PageSize is the number of offers requested per page.
func (s *OfferService) PageSize() int {
	return s.pageSize
}

// FetchOffers returns one page of offers, reading through the cache.
// Cache failures are logged and never fail the fetch.
func (s *OfferService) FetchOffers(ctx context.Context, filter models.OfferListFilter) (*models.OfferListResponse, error) {
	filter = filter.Normalized()

	cached, err := s.offerDao.GetOfferList(ctx, filter, s.pageSize)
	switch {
	case err != nil:
		s.log.Warn("offer cache read failed", slog.String("error", err.Error()))
	case cached != nil:
		s.metrics.RecordCacheHit()
		return cached, nil
	default:
		s.metrics.RecordCacheMiss()
	}

	resp, err := s.fetchFromAPI(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.offerDao.SetOfferList(ctx, filter, s.pageSize, resp); err != nil {
		s.log.Warn("offer cache write failed", slog.String("error", err.Error()))
	}
	return resp, nil
}

func (s *OfferService) fetchFromAPI(ctx context.Context, filter models.OfferListFilter) (*models.OfferListResponse, error) {
	start := time.Now()
	resp, err := s.coderrApi.ListOffers(ctx, filter, s.pageSize)
	if err != nil {
		s.metrics.RecordOfferFetch(metrics.ResultError, time.Since(start))
		s.log.Error("offer fetch failed",
			slog.Int("page", filter.Page),
			slog.String("kind", api.KindOf(err).String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	s.metrics.RecordOfferFetch(metrics.ResultSuccess, time.Since(start))
	return resp, nil
}

// LoadCurrentUser fetches the profile behind creds. Empty credentials mean
// nobody is logged in and yield nil, nil.
func (s *OfferService) LoadCurrentUser(ctx context.Context, creds models.Credentials) (*models.CurrentUser, error) {
	if creds.Empty() {
		return nil, nil
	}
	user, err := s.coderrApi.GetProfile(api.WithToken(ctx, creds.Token), creds.UserID)
	if err != nil {
		if api.IsUnauthorized(err) {
			s.log.Info("stale credentials, treating as logged out", slog.Int("user_id", creds.UserID))
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// BaseInfo returns the marketplace statistics.
func (s *OfferService) BaseInfo(ctx context.Context) (*models.BaseInfo, error) {
	return s.coderrApi.GetBaseInfo(ctx)
}
