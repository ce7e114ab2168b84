package infra

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"checkoutdash/internal/config"
	"checkoutdash/pkg/logger"
)

// Dialect builds the GORM dialector for the configured database type.
func Dialect(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case config.DialectMySQL:
		// The server version probe is skipped so the service can boot while
		// the database is down.
		return mysql.New(mysql.Config{
			DSN: fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				cfg.User,
				cfg.Password,
				cfg.Host,
				cfg.Port,
				cfg.Name,
			),
			SkipInitializeWithVersion: true,
		}), nil
	case config.DialectPostgres:
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.Port,
			cfg.SSLMode,
		)), nil
	case config.DialectSQLite:
		return sqlite.Open(cfg.Name), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

// GormConfig applies the table prefix and singular table names used by the
// checkout schema.
func GormConfig(cfg config.DatabaseConfig) *gorm.Config {
	return &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   cfg.TablePrefix,
			SingularTable: true,
		},
		Logger:                 logger.NewGormLogger(gormlogger.Warn, cfg.SlowThreshold),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	}
}

// OpenDatabase opens the pool and sizes it; it does not register lifecycle
// hooks so tests can use it directly.
func OpenDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, GormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}

// NewDatabase opens the data-access handle and closes it when the app stops.
func NewDatabase(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := OpenDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			// An unreachable database is logged, not fatal: degraded mode may
			// still serve reports.
			if err := sqlDB.PingContext(ctx); err != nil {
				log.Warn("database ping failed", zap.String("type", cfg.Database.Type), zap.Error(err))
				return nil
			}
			log.Info("database connected", zap.String("type", cfg.Database.Type))
			return nil
		},
		OnStop: func(context.Context) error {
			return CloseDatabase(db, log)
		},
	})
	return db, nil
}

func CloseDatabase(db *gorm.DB, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("get database instance", zap.Error(err))
		return err
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("close database", zap.Error(err))
		return err
	}
	log.Info("database connection closed")
	return nil
}
