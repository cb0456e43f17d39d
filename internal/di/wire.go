//go:build wireinject
// +build wireinject

package di

import (
	"TradeLens/pkg/config"
	"TradeLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Infrastructure
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMetrics,
		ProvideRedis,
		ProvideResponseCache,
		ProvideBackend,

		// Repositories
		ProvidePreferences,
		ProvideEventPublisher,

		// Analytics and use cases
		AnalyticsSet,
		UseCaseSet,

		// Transport
		HandlerSet,
		ProvideLiveHub,
		ProvideRateLimiter,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}
