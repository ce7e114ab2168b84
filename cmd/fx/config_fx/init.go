package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"checkoutdash/internal/config"
	"checkoutdash/pkg/clock"
	"checkoutdash/pkg/logger"
	"checkoutdash/pkg/metrics"
)

var Module = fx.Provide(
	config.Load, provideLogger, clock.New, metrics.New,
)

func provideLogger(lc fx.Lifecycle, cfg config.Config) (*zap.Logger, error) {
	return logger.New(lc, logger.Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
}
