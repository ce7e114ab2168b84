package repositories

import (
	"context"

	"gorm.io/gorm"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/pkg/utils"
)

// CatalogRepository reads the product, plan, pricing and country reference
// tables that feed filter dropdowns.
type CatalogRepository interface {
	ActiveProducts(ctx context.Context) ([]db_models.Product, error)
	ActivePlans(ctx context.Context) ([]db_models.Plan, error)
	ActiveAddonPlans(ctx context.Context) ([]db_models.AddonPlan, error)
	ActivePricingPeriods(ctx context.Context) ([]string, error)
	ActiveCountries(ctx context.Context) ([]db_models.Country, error)
	// PlansByProduct lists plans ordered by name; an empty productName
	// returns every plan.
	PlansByProduct(ctx context.Context, productName string) ([]db_models.Plan, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ActiveProducts(ctx context.Context) ([]db_models.Product, error) {
	var products []db_models.Product
	err := r.db.WithContext(ctx).Where("status = ?", 1).Order("name ASC").Find(&products).Error
	return products, utils.StoreError("active products", err)
}

func (r *catalogRepository) ActivePlans(ctx context.Context) ([]db_models.Plan, error) {
	var plans []db_models.Plan
	err := r.db.WithContext(ctx).Where("status = ?", 1).Order("sortorder ASC").Find(&plans).Error
	return plans, utils.StoreError("active plans", err)
}

func (r *catalogRepository) ActiveAddonPlans(ctx context.Context) ([]db_models.AddonPlan, error) {
	var addons []db_models.AddonPlan
	err := r.db.WithContext(ctx).Where("status = ?", 1).Order("sortorder ASC").Find(&addons).Error
	return addons, utils.StoreError("active addon plans", err)
}

func (r *catalogRepository) ActivePricingPeriods(ctx context.Context) ([]string, error) {
	var periods []string
	err := r.db.WithContext(ctx).
		Model(&db_models.Pricing{}).
		Distinct("plan_period").
		Where("status = ? AND plan_period IS NOT NULL AND plan_period <> ''", 1).
		Order("plan_period ASC").
		Pluck("plan_period", &periods).Error
	return periods, utils.StoreError("pricing periods", err)
}

func (r *catalogRepository) ActiveCountries(ctx context.Context) ([]db_models.Country, error) {
	var countries []db_models.Country
	err := r.db.WithContext(ctx).Where("status = ?", 1).Order("sortOrder ASC").Find(&countries).Error
	return countries, utils.StoreError("active countries", err)
}

func (r *catalogRepository) PlansByProduct(ctx context.Context, productName string) ([]db_models.Plan, error) {
	var plans []db_models.Plan
	q := r.db.WithContext(ctx).
		Model(&db_models.Plan{}).
		Distinct("id", "plan_name", "product_name")
	if productName != "" {
		q = q.Where("product_name = ?", productName)
	}
	err := q.Order("plan_name ASC").Find(&plans).Error
	return plans, utils.StoreError("plans by product", err)
}
