package di

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"coderr-web/api"
	"coderr-web/api/coderr"
	"coderr-web/config"
	"coderr-web/controller"
	"coderr-web/dao/redis"
	"coderr-web/db"
	"coderr-web/metrics"
	"coderr-web/middleware"
	"coderr-web/server"
	"coderr-web/server/handlers"
	services "coderr-web/service"
	"coderr-web/view"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Container holds all application dependencies.
type Container struct {
	Config             *config.Config
	RedisClient        db.RedisClient
	RedisOfferDao      *redis.RedisOfferDAO
	CoderrAPI          coderr.CoderrAPI
	MetricsRegistry    *prometheus.Registry
	OfferService       *services.OfferService
	CacheWarmerService *services.CacheWarmerService
	Registry           *controller.Registry
	RateLimiter        *middleware.RateLimiter
	MuxRouter          *mux.Router
	Router             *server.Router
	HttpServer         *server.HttpServer
}

// NewContainer initializes and wires up all dependencies. In prod the real API
// and Redis are used, otherwise the fixture-backed API and an in-memory cache.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log := slog.Default().With(slog.String("component", "Container"))
	log.Info("initializing container", slog.String("env", cfg.Env))

	var (
		redisClient db.RedisClient
		coderrApi   coderr.CoderrAPI
	)
	if cfg.IsProd() {
		log.Info("using redis", slog.String("addr", cfg.RedisAddr))
		client, err := db.NewGoRedisClient(ctx, goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		redisClient = client

		log.Info("using coderr api", slog.String("base_url", cfg.APIBaseURL))
		coderrApi = coderr.NewCoderrApiClient(api.NewHTTPClientWithTimeout(cfg.APIBaseURL, cfg.APITimeout))
	} else {
		resourceDir := filepath.Join(config.BaseDir(), config.RESOURCES_PATH_PREFIX)
		log.Info("using mock coderr api and in-memory cache", slog.String("resources", resourceDir))
		redisClient = db.NewMockRedisClient()
		coderrApi = coderr.NewCoderrApiClientMock(resourceDir)
	}

	metricsRegistry := prometheus.NewRegistry()
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(metricsRegistry)

	redisOfferDao := redis.NewRedisOfferDAO(redisClient, cfg.OfferCacheTTL)
	offerService := services.NewOfferService(redisOfferDao, coderrApi, config.PAGE_SIZE, collector)
	cacheWarmerService := services.NewCacheWarmerService(redisOfferDao, coderrApi, config.PAGE_SIZE)
	registry := controller.NewRegistry(offerService, collector, cfg.SessionIdleTimeout)

	renderer, err := view.NewHTMLRenderer(config.STATIC_BASE_URL)
	if err != nil {
		return nil, err
	}

	rateLimiter := middleware.NewRateLimiter(middleware.PerMinute(cfg.RateLimitPerMinute))

	muxRouter := mux.NewRouter()
	router := server.NewRouter(
		handlers.NewOfferListHandler(registry, renderer, config.PAGE_SIZE),
		handlers.NewRedirectHandler(offerService, cfg.FrontendBaseURL),
		handlers.NewHealthHandler(redisClient),
		metrics.Handler(metricsRegistry),
		muxRouter,
		middleware.NewRecoveryMiddleware(nil),
		middleware.NewSecurityHeadersMiddleware(config.STATIC_BASE_URL),
		middleware.NewSessionMiddleware(config.SESSION_COOKIE),
		middleware.NewLoggingMiddleware(slog.Default()),
		rateLimiter.Middleware(),
	)
	httpServer := server.NewHttpServer(router, muxRouter, cfg.ServerPort)

	return &Container{
		Config:             cfg,
		RedisClient:        redisClient,
		RedisOfferDao:      redisOfferDao,
		CoderrAPI:          coderrApi,
		MetricsRegistry:    metricsRegistry,
		OfferService:       offerService,
		CacheWarmerService: cacheWarmerService,
		Registry:           registry,
		RateLimiter:        rateLimiter,
		MuxRouter:          muxRouter,
		Router:             router,
		HttpServer:         httpServer,
	}, nil
}

// Close releases the rate limiter and the Redis connection.
func (c *Container) Close() {
	c.RateLimiter.Stop()
	if closer, ok := c.RedisClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}
}
