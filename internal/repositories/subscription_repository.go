package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/pkg/utils"
)

// SubscriptionRow is a subscription joined with its plan name.
type SubscriptionRow struct {
	db_models.Subscription `gorm:"embedded"`
	PlanName               *string `gorm:"column:plan_name"`
}

type SubscriptionRepository interface {
	Count(ctx context.Context, filters FilterSet) (int64, error)
	FindPage(ctx context.Context, filters FilterSet, offset, limit int) ([]SubscriptionRow, error)
	FindByID(ctx context.Context, id uint) (*SubscriptionRow, error)
	UpdateEndDate(ctx context.Context, id uint, endDate time.Time) error
	// Dialect names the SQL dialect filters are built for.
	Dialect() string
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Dialect() string {
	return r.db.Dialector.Name()
}

func (r *subscriptionRepository) joined(ctx context.Context) *gorm.DB {
	subs := tableName(r.db, &db_models.Subscription{})
	plans := tableName(r.db, &db_models.Plan{})
	return r.db.WithContext(ctx).
		Table(subs + " AS s").
		Joins("LEFT JOIN " + plans + " AS p ON s.plan_id = p.id")
}

func (r *subscriptionRepository) Count(ctx context.Context, filters FilterSet) (int64, error) {
	var n int64
	err := filters.Apply(r.joined(ctx)).Count(&n).Error
	return n, utils.StoreError("count subscriptions", err)
}

func (r *subscriptionRepository) FindPage(ctx context.Context, filters FilterSet, offset, limit int) ([]SubscriptionRow, error) {
	var rows []SubscriptionRow
	err := filters.Apply(r.joined(ctx).Select("s.*, p.plan_name AS plan_name")).
		Order("s.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	return rows, utils.StoreError("list subscriptions", err)
}

func (r *subscriptionRepository) FindByID(ctx context.Context, id uint) (*SubscriptionRow, error) {
	var rows []SubscriptionRow
	err := r.joined(ctx).
		Select("s.*, p.plan_name AS plan_name").
		Where("s.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, utils.StoreError("get subscription", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *subscriptionRepository) UpdateEndDate(ctx context.Context, id uint, endDate time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Where("id = ?", id).
		Update("subscription_end_date", endDate).Error
	return utils.StoreError("update subscription end date", err)
}

