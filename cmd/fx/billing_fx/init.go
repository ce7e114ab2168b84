package billing_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"checkoutdash/internal/config"
	"checkoutdash/internal/repositories"
	"checkoutdash/internal/services"
	"checkoutdash/pkg/billingapi"
	"checkoutdash/pkg/clock"
	"checkoutdash/pkg/crypto"
	"checkoutdash/pkg/metrics"
)

var Module = fx.Provide(
	provideBillingGateway,
	providePaymentCommentRepo,
	provideLifecycleService,
)

// provideBillingGateway returns a nil interface when BILLING_API_URL is
// unset so the lifecycle service can tell billing is disabled.
func provideBillingGateway(cfg config.Config, m *metrics.Metrics, log *zap.Logger) services.BillingGateway {
	if !cfg.Billing.Enabled() {
		log.Info("billing API not configured, renewal charges will fail")
		return nil
	}
	envelope := crypto.NewEnvelope(cfg.Billing.KeySecret, cfg.Billing.IVSecret)
	return billingapi.NewClient(cfg.Billing.URL, cfg.Billing.Timeout, envelope, m)
}

func providePaymentCommentRepo(db *gorm.DB) repositories.PaymentCommentRepository {
	return repositories.NewPaymentCommentRepository(db)
}

func provideLifecycleService(
	cfg config.Config,
	comments repositories.PaymentCommentRepository,
	subscriptions repositories.SubscriptionRepository,
	billing services.BillingGateway,
	clk clock.Clock,
	m *metrics.Metrics,
) services.LifecycleServiceInterface {
	return services.NewLifecycleService(comments, subscriptions, billing, services.LifecycleOptions{
		DefaultAdmin:  cfg.Auth.DefaultAdminUser,
		CancelEnabled: cfg.Billing.CancelEnabled,
	}, clk, m)
}
