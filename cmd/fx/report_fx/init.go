package report_fx

import (
	"go.uber.org/fx"

	"checkoutdash/internal/config"
	"checkoutdash/internal/repositories"
	"checkoutdash/internal/services"
	"checkoutdash/pkg/clock"
	mem "checkoutdash/pkg/memcache"
	"checkoutdash/pkg/metrics"
)

var Module = fx.Provide(
	repositories.NewPaymentLogRepository,
	repositories.NewBillingAddressRepository,
	repositories.NewSubscriptionRepository,
	repositories.NewCatalogRepository,
	provideSources,
	provideEnricher,
	services.NewInvoiceRenderer,
	providePaymentLogService,
	provideSubscriptionService,
	provideExportService,
	provideFilterOptionService,
)

type reportSources struct {
	live      services.ReportSource
	synthetic services.ReportSource
}

// provideSources builds the synthetic source only in degraded mode.
func provideSources(cfg config.Config, logs repositories.PaymentLogRepository, subs repositories.SubscriptionRepository, clk clock.Clock) reportSources {
	s := reportSources{live: services.NewLiveSource(logs, subs)}
	if cfg.DegradedMode {
		s.synthetic = services.NewSyntheticSource(clk.Now())
	}
	return s
}

func reportOptions(cfg config.Config) services.ReportOptions {
	return services.ReportOptions{Location: cfg.Location, Degraded: cfg.DegradedMode}
}

func provideEnricher(cfg config.Config, billing repositories.BillingAddressRepository) *services.Enricher {
	return services.NewEnricher(billing, cfg.PlaceholderEmailDomain)
}

func providePaymentLogService(
	cfg config.Config,
	src reportSources,
	repo repositories.PaymentLogRepository,
	enricher *services.Enricher,
	m *metrics.Metrics,
) services.PaymentLogServiceInterface {
	return services.NewPaymentLogService(src.live, src.synthetic, repo, enricher, reportOptions(cfg), m)
}

func provideSubscriptionService(
	cfg config.Config,
	src reportSources,
	repo repositories.SubscriptionRepository,
	catalog repositories.CatalogRepository,
	clk clock.Clock,
	m *metrics.Metrics,
) services.SubscriptionServiceInterface {
	return services.NewSubscriptionService(src.live, src.synthetic, repo, catalog, reportOptions(cfg), clk, m)
}

func provideExportService(
	cfg config.Config,
	repo repositories.PaymentLogRepository,
	enricher *services.Enricher,
	invoices *services.InvoiceRenderer,
	clk clock.Clock,
) services.ExportServiceInterface {
	return services.NewExportService(repo, enricher, invoices, cfg.Location, clk)
}

func provideFilterOptionService(
	cfg config.Config,
	logs repositories.PaymentLogRepository,
	catalog repositories.CatalogRepository,
	cache mem.Store,
	m *metrics.Metrics,
) services.FilterOptionServiceInterface {
	return services.NewFilterOptionService(logs, catalog, cache, cfg.FilterCacheTTL, m)
}
