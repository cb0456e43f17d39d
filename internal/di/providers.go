package di

import (
	"context"
	"fmt"
	"time"

	"TradeLens/internal/domain/repository"
	domsvc "TradeLens/internal/domain/service"
	"TradeLens/internal/handler/api"
	"TradeLens/internal/handler/live"
	internalrepo "TradeLens/internal/repository"
	svccache "TradeLens/internal/service/cache"
	"TradeLens/internal/service/ratelimit"
	"TradeLens/internal/services/analytics"
	"TradeLens/internal/services/backend"
	"TradeLens/internal/usecase"
	pkgcache "TradeLens/pkg/cache"
	"TradeLens/pkg/config"
	xhttp "TradeLens/pkg/http"
	"TradeLens/pkg/http/middleware"
	pkgkafka "TradeLens/pkg/kafka"
	"TradeLens/pkg/logger"
	"TradeLens/pkg/metrics"
	"TradeLens/pkg/server"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
)

// AnalyticsSet binds the pure analytics components to their interfaces.
var AnalyticsSet = wire.NewSet(
	analytics.NewSeriesReconciler,
	wire.Bind(new(domsvc.SeriesReconciler), new(*analytics.SeriesReconciler)),
	analytics.NewPortfolioAnalyzer,
	wire.Bind(new(domsvc.PortfolioAnalyzer), new(*analytics.PortfolioAnalyzer)),
	analytics.NewRiskProfiler,
	wire.Bind(new(domsvc.RiskProfiler), new(*analytics.RiskProfiler)),
	analytics.NewSentimentClassifier,
	wire.Bind(new(domsvc.SentimentClassifier), new(*analytics.SentimentClassifier)),
)

// UseCaseSet builds the view-layer use cases.
var UseCaseSet = wire.NewSet(
	usecase.NewPreferenceUseCase,
	usecase.NewRiskUseCase,
	usecase.NewChartUseCase,
	usecase.NewMarketUseCase,
	usecase.NewPortfolioUseCase,
)

// HandlerSet builds the HTTP handlers.
var HandlerSet = wire.NewSet(
	api.NewMarketHandler,
	api.NewPortfolioHandler,
	api.NewProfileHandler,
)

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.BatchBytes, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithHeaders(requestIDHeader),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, func() { _ = producer.Close() }, nil
}

func requestIDHeader(ctx context.Context) []kafka.Header {
	id := middleware.RequestIDFrom(ctx)
	if id == "" {
		return nil
	}
	return []kafka.Header{{Key: "x-request-id", Value: []byte(id)}}
}

// ProvideLogger builds the application logger. With the collector enabled,
// repeated warnings and errors are aggregated and shipped through producer.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*logger.Logger, func(), error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Log.Collector.Enabled && producer != nil {
		l.AddCollector(&logger.CollectionConfig{
			TimeInterval:   cfg.Log.Collector.FlushInterval,
			CountThreshold: cfg.Log.Collector.CountThreshold,
			Topic:          cfg.Log.Collector.Topic,
			Source:         "tradelens",
			Publisher:      producer,
		})
	}
	return l, l.RemoveCollector, nil
}

// ProvideEventPublisher publishes domain events to Kafka, or drops them
// when Kafka is disabled.
func ProvideEventPublisher(cfg *config.Config, producer *pkgkafka.Producer) repository.EventPublisher {
	if producer == nil {
		return internalrepo.NopPublisher{}
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics() repository.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideRedis connects to Redis when any component is configured to use it.
// The returned cache owns the connection; other stores share its client.
func ProvideRedis(cfg *config.Config) (*pkgcache.RedisCache, func(), error) {
	if !cfg.UsesRedis() {
		return nil, func() {}, nil
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisAddr(cfg.Redis.Addr),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
		pkgcache.WithRedisPool(cfg.Redis.PoolSize, cfg.Redis.MinIdleConns, cfg.Redis.PoolTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	return rc, func() { _ = rc.Close() }, nil
}

// ProvideResponseCache builds the backend response cache for the configured driver.
func ProvideResponseCache(cfg *config.Config, rc *pkgcache.RedisCache) (svccache.BytesCache, func(), error) {
	var store pkgcache.Service
	switch cfg.Cache.Driver {
	case "redis":
		store = pkgcache.NewRedisCacheFromClient(rc.Client(), "tradelens:http")
	case "layered":
		store = pkgcache.NewLayeredCache(
			pkgcache.NewRedisCacheFromClient(rc.Client(), "tradelens:http"),
			pkgcache.WithLayeredMemorySize(cfg.Cache.Size),
			pkgcache.WithLayeredMemoryTTL(cfg.Cache.TTL),
		)
	case "memory":
		store = pkgcache.NewMemoryCache(
			pkgcache.WithMemoryMaxSize(cfg.Cache.Size),
			pkgcache.WithMemoryCleanup(cfg.Cache.TTL),
		)
	default:
		return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
	return svccache.NewResponseCache(store, "backend"), func() { _ = store.Close() }, nil
}

// ProvideBackend creates the backend API client.
func ProvideBackend(cfg *config.Config, cache svccache.BytesCache, m repository.Metrics, l *logger.Logger) domsvc.Backend {
	httpClient := xhttp.NewClient(
		xhttp.WithBaseURL(cfg.Backend.BaseURL),
		xhttp.WithTimeout(cfg.Backend.Timeout),
		xhttp.WithHeader("Accept", "application/json"),
	)
	return backend.New(httpClient,
		backend.WithCache(cache, cfg.Cache.TTL),
		backend.WithMetrics(m),
		backend.WithLogger(l),
	)
}

// ProvidePreferences opens the preference store for the configured driver.
func ProvidePreferences(cfg *config.Config, rc *pkgcache.RedisCache) (repository.Preferences, func(), error) {
	var prefs repository.Preferences
	switch cfg.Preferences.Driver {
	case "memory":
		prefs = internalrepo.NewCachePreferences(pkgcache.NewMemoryCache())
	case "redis":
		prefs = internalrepo.NewCachePreferences(pkgcache.NewRedisCacheFromClient(rc.Client(), "tradelens"))
	case "sqlite":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		p, err := internalrepo.OpenSQLitePreferences(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		prefs = p
	default:
		return nil, nil, fmt.Errorf("unknown preferences driver %q", cfg.Preferences.Driver)
	}
	return prefs, func() { _ = prefs.Close() }, nil
}

// ProvideRateLimiter creates the per-client limiter, or nil when disabled.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.Rate, cfg.RateLimit.Burst)
}

// ProvideLiveHub creates the websocket feed, or nil when disabled.
func ProvideLiveHub(cfg *config.Config, market *usecase.MarketUseCase, m repository.Metrics, l *logger.Logger) *live.Hub {
	if !cfg.Live.Enabled {
		return nil
	}
	return live.NewHub(market, m, l, cfg.Live.Schedule, live.WithAllowedOrigins(cfg.Server.AllowOrigins...))
}

// ProvideHTTPServer assembles the echo server with every handler.
func ProvideHTTPServer(
	cfg *config.Config,
	l *logger.Logger,
	market *api.MarketHandler,
	portfolio *api.PortfolioHandler,
	profile *api.ProfileHandler,
	hub *live.Hub,
	limiter *ratelimit.Limiter,
) *xhttp.Server {
	handlers := []xhttp.Handler{market, portfolio, profile}
	if hub != nil {
		handlers = append(handlers, hub)
	}

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.AllowOrigins...),
		xhttp.WithMetricsPath(metricsPath),
	}
	if limiter != nil {
		opts = append(opts, xhttp.WithMiddleware(limiter.Middleware("/ws/live", metricsPath)))
	}
	return xhttp.NewServer(l, handlers, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *logger.Logger, srv *xhttp.Server, hub *live.Hub, limiter *ratelimit.Limiter) *server.App {
	return server.New(cfg, l, srv, hub, limiter)
}
