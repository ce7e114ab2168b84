package account_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"checkoutdash/internal/config"
	"checkoutdash/internal/repositories"
	"checkoutdash/internal/services"
	"checkoutdash/pkg/middleware"
	"checkoutdash/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideTokenManager, provideTokenValidator, provideAccountRepo, provideAccountService),
	fx.Invoke(bootstrapAdmin),
)

func provideTokenManager(cfg config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpire)
}

func provideTokenValidator(tokens *utils.TokenManager) middleware.TokenValidator {
	return tokens
}

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenManager) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, tokens)
}

// bootstrapAdmin creates the configured admin once the database is reachable.
func bootstrapAdmin(lc fx.Lifecycle, cfg config.Config, accounts services.AccountServiceInterface, log *zap.Logger) {
	if cfg.Auth.BootstrapEmail == "" {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			err := accounts.EnsureAccount(ctx, cfg.Auth.BootstrapEmail, cfg.Auth.BootstrapPassword, cfg.Auth.BootstrapName)
			if err != nil {
				log.Warn("bootstrap admin not created", zap.String("email", cfg.Auth.BootstrapEmail), zap.Error(err))
				return nil
			}
			log.Info("bootstrap admin ready", zap.String("email", cfg.Auth.BootstrapEmail))
			return nil
		},
	})
}
