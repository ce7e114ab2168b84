package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkoutdash/internal/api/controllers"
	"checkoutdash/internal/config"
	"checkoutdash/pkg/metrics"
	"checkoutdash/pkg/middleware"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	PaymentLogs   *controllers.PaymentLogController
	Subscriptions *controllers.SubscriptionController
	Accounts      *controllers.AccountController
}

func NewRouter(cfg config.Config, tokens middleware.TokenValidator, m *metrics.Metrics, ctrl Controllers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(m))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/metrics", gin.WrapH(m.Handler()))

	RegisterRoutes(r, cfg, tokens, ctrl)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg config.Config, tokens middleware.TokenValidator, ctrl Controllers) {
	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	authGroup.POST("/login", ctrl.Accounts.Login)

	secured := api.Group("")
	if cfg.Auth.Required {
		secured.Use(middleware.JWTAuthMiddleware(tokens))
	} else {
		secured.Use(middleware.OptionalJWTMiddleware(tokens))
	}

	logs := secured.Group("/payment-logs")
	logs.GET("", ctrl.PaymentLogs.List)
	logs.GET("/filters/all", ctrl.PaymentLogs.FilterOptions)
	logs.GET("/products/list", ctrl.PaymentLogs.Products)
	logs.GET("/addons/list", ctrl.PaymentLogs.Addons)
	logs.GET("/subscription-types/list", ctrl.PaymentLogs.SubscriptionTypes)
	logs.GET("/payment-modes/list", ctrl.PaymentLogs.PaymentModes)
	logs.GET("/payment-sources/list", ctrl.PaymentLogs.PaymentSources)
	logs.GET("/subscription-periods/list", ctrl.PaymentLogs.SubscriptionPeriods)
	logs.GET("/languages/list", ctrl.PaymentLogs.Languages)
	logs.GET("/claimed-users/list", ctrl.PaymentLogs.ClaimedUsers)
	logs.GET("/export", ctrl.PaymentLogs.Export)
	logs.GET("/invoice/:id", ctrl.PaymentLogs.Invoice)
	logs.GET("/:id", ctrl.PaymentLogs.Get)

	subs := secured.Group("/subscriptions")
	subs.GET("", ctrl.Subscriptions.List)
	subs.GET("/plans/list", ctrl.Subscriptions.Plans)
	subs.GET("/products/list", ctrl.Subscriptions.Products)
	subs.GET("/:id", ctrl.Subscriptions.Get)
	subs.POST("/cancel", ctrl.Subscriptions.Cancel)
	subs.POST("/renewal-charge", ctrl.Subscriptions.RenewalCharge)
	subs.POST("/update-end-date", ctrl.Subscriptions.UpdateEndDate)
}
