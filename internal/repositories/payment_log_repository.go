package repositories

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/pkg/utils"
)

type PaymentLogRepository interface {
	Count(ctx context.Context, filters FilterSet) (int64, error)
	Summary(ctx context.Context, filters FilterSet) (SummaryRow, error)
	FindPage(ctx context.Context, filters FilterSet, offset, limit int) ([]db_models.PaymentLog, error)
	FindAll(ctx context.Context, filters FilterSet) ([]db_models.PaymentLog, error)
	FindByID(ctx context.Context, id uint) (*db_models.PaymentLog, error)

	DistinctValues(ctx context.Context, column string) ([]string, error)
	DistinctTerms(ctx context.Context) ([]int, error)
}

type paymentLogRepository struct {
	db *gorm.DB
}

func NewPaymentLogRepository(db *gorm.DB) PaymentLogRepository {
	return &paymentLogRepository{db: db}
}

// SummaryRow holds per-term counts and amount sums. Sums are NULL when no
// row matches.
type SummaryRow struct {
	TrialCount    *int64              `gorm:"column:trial_count"`
	TrialAmount   decimal.NullDecimal `gorm:"column:trial_amount"`
	RenewalCount  *int64              `gorm:"column:renewal_count"`
	RenewalAmount decimal.NullDecimal `gorm:"column:renewal_amount"`
	UpgradeCount  *int64              `gorm:"column:upgrade_count"`
	UpgradeAmount decimal.NullDecimal `gorm:"column:upgrade_amount"`
}

const summarySelect = `
	SUM(CASE WHEN payment_terms = 1 THEN 1 ELSE 0 END) AS trial_count,
	SUM(CASE WHEN payment_terms = 1 THEN COALESCE(net_amount, plan_price, 0) ELSE 0 END) AS trial_amount,
	SUM(CASE WHEN payment_terms = 2 THEN 1 ELSE 0 END) AS renewal_count,
	SUM(CASE WHEN payment_terms = 2 THEN COALESCE(net_amount, plan_price, 0) ELSE 0 END) AS renewal_amount,
	SUM(CASE WHEN payment_terms = 3 THEN 1 ELSE 0 END) AS upgrade_count,
	SUM(CASE WHEN payment_terms = 3 THEN COALESCE(net_amount, plan_price, 0) ELSE 0 END) AS upgrade_amount`

// distinctColumns whitelists the columns DistinctValues may read.
var distinctColumns = map[string]bool{
	"payment_method":      true,
	"payment_source":      true,
	"claim_user":          true,
	"subscription_period": true,
	"addon_type":          true,
	"payment_country":     true,
	"currency":            true,
}

func (r *paymentLogRepository) model(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&db_models.PaymentLog{})
}

func (r *paymentLogRepository) Count(ctx context.Context, filters FilterSet) (int64, error) {
	var n int64
	err := filters.Apply(r.model(ctx)).Count(&n).Error
	return n, utils.StoreError("count payment logs", err)
}

func (r *paymentLogRepository) Summary(ctx context.Context, filters FilterSet) (SummaryRow, error) {
	var row SummaryRow
	err := filters.Apply(r.model(ctx).Select(summarySelect)).Scan(&row).Error
	return row, utils.StoreError("summarise payment logs", err)
}

func (r *paymentLogRepository) FindPage(ctx context.Context, filters FilterSet, offset, limit int) ([]db_models.PaymentLog, error) {
	var logs []db_models.PaymentLog
	err := filters.Apply(r.model(ctx)).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	return logs, utils.StoreError("list payment logs", err)
}

func (r *paymentLogRepository) FindAll(ctx context.Context, filters FilterSet) ([]db_models.PaymentLog, error) {
	var logs []db_models.PaymentLog
	err := filters.Apply(r.model(ctx)).Order("id DESC").Find(&logs).Error
	return logs, utils.StoreError("export payment logs", err)
}

func (r *paymentLogRepository) FindByID(ctx context.Context, id uint) (*db_models.PaymentLog, error) {
	var log db_models.PaymentLog
	err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, utils.StoreError("get payment log", err)
	}
	return &log, nil
}

func (r *paymentLogRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if !distinctColumns[column] {
		return nil, errors.New("distinct values: unsupported column " + column)
	}
	var values []string
	err := r.model(ctx).
		Distinct(column).
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Order(column+" ASC").
		Pluck(column, &values).Error
	return values, utils.StoreError("distinct "+column, err)
}

func (r *paymentLogRepository) DistinctTerms(ctx context.Context) ([]int, error) {
	var terms []int
	err := r.model(ctx).
		Distinct("payment_terms").
		Where("payment_terms IS NOT NULL").
		Order("payment_terms ASC").
		Pluck("payment_terms", &terms).Error
	return terms, utils.StoreError("distinct payment_terms", err)
}
