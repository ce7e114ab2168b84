package controllers_fx

import (
	"go.uber.org/fx"

	"checkoutdash/internal/api"
	"checkoutdash/internal/api/controllers"
	"checkoutdash/internal/config"
	"checkoutdash/internal/services"
)

var Module = fx.Options(
	fx.Provide(providePaymentLogController),
	fx.Provide(provideSubscriptionController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(provideControllers),
	fx.Provide(api.NewRouter),
)

func providePaymentLogController(
	cfg config.Config,
	paymentLogs services.PaymentLogServiceInterface,
	exports services.ExportServiceInterface,
	options services.FilterOptionServiceInterface,
) *controllers.PaymentLogController {
	return controllers.NewPaymentLogController(paymentLogs, exports, options, cfg.MaxPageSize)
}

func provideSubscriptionController(
	cfg config.Config,
	subscriptions services.SubscriptionServiceInterface,
	lifecycle services.LifecycleServiceInterface,
) *controllers.SubscriptionController {
	return controllers.NewSubscriptionController(subscriptions, lifecycle, cfg.MaxPageSize)
}

func provideControllers(
	paymentLogs *controllers.PaymentLogController,
	subscriptions *controllers.SubscriptionController,
	accounts *controllers.AccountController,
) api.Controllers {
	return api.Controllers{PaymentLogs: paymentLogs, Subscriptions: subscriptions, Accounts: accounts}
}
