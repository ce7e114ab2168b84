package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"checkoutdash/internal/models/request_models"
	"checkoutdash/internal/models/response_models"
	"checkoutdash/internal/repositories"
	"checkoutdash/pkg/clock"
	"checkoutdash/pkg/logger"
	"checkoutdash/pkg/metrics"
	"checkoutdash/pkg/utils"
)

// expiringWindowDays is how far ahead an end date counts as expiring soon.
const expiringWindowDays = 7

type SubscriptionServiceInterface interface {
	List(ctx context.Context, filter request_models.SubscriptionFilter, page request_models.PageRequest) (*response_models.SubscriptionPage, error)
	Get(ctx context.Context, id uint) (*response_models.SubscriptionRow, error)
	Plans(ctx context.Context, productName string) ([]response_models.PlanOption, error)
	Products(ctx context.Context) ([]response_models.ProductOption, error)
}

type SubscriptionService struct {
	live      ReportSource
	synthetic ReportSource
	repo      repositories.SubscriptionRepository
	catalog   repositories.CatalogRepository
	opts      ReportOptions
	clock     clock.Clock
	metrics   *metrics.Metrics
}

func NewSubscriptionService(
	live ReportSource,
	synthetic ReportSource,
	repo repositories.SubscriptionRepository,
	catalog repositories.CatalogRepository,
	opts ReportOptions,
	clk clock.Clock,
	m *metrics.Metrics,
) SubscriptionServiceInterface {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &SubscriptionService{
		live:      live,
		synthetic: synthetic,
		repo:      repo,
		catalog:   catalog,
		opts:      opts,
		clock:     clk,
		metrics:   m,
	}
}

func (s *SubscriptionService) List(ctx context.Context, filter request_models.SubscriptionFilter, page request_models.PageRequest) (*response_models.SubscriptionPage, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	filters := repositories.BuildSubscriptionFilters(filter, s.repo.Dialect())

	source := s.live
	data, err := source.Subscriptions(ctx, filters, page.Offset(), page.Limit)
	if err != nil {
		if !s.opts.Degraded || s.synthetic == nil || !isStoreError(err) {
			return nil, err
		}
		logger.FromContext(ctx).Warn("subscription query failed, serving synthetic data", zap.Error(err))
		source = s.synthetic
		if data, err = source.Subscriptions(ctx, filters, page.Offset(), page.Limit); err != nil {
			return nil, err
		}
	}
	s.metrics.ReportServed(source.Name())

	now := s.clock.Now()
	rows := make([]response_models.SubscriptionRow, 0, len(data.Rows))
	for _, r := range data.Rows {
		rows = append(rows, s.toRow(r, now))
	}
	return &response_models.SubscriptionPage{Source: source.Name(), Rows: rows, Total: data.Total}, nil
}

func (s *SubscriptionService) Get(ctx context.Context, id uint) (*response_models.SubscriptionRow, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, utils.ErrSubscriptionNotFound
	}
	row := s.toRow(*sub, s.clock.Now())
	return &row, nil
}

func (s *SubscriptionService) Plans(ctx context.Context, productName string) ([]response_models.PlanOption, error) {
	plans, err := s.catalog.PlansByProduct(ctx, productName)
	if err != nil {
		return nil, err
	}
	out := make([]response_models.PlanOption, 0, len(plans))
	for _, p := range plans {
		out = append(out, response_models.PlanOption{ID: p.ID, Name: p.PlanName, ProductName: p.ProductName})
	}
	return out, nil
}

func (s *SubscriptionService) Products(ctx context.Context) ([]response_models.ProductOption, error) {
	products, err := s.catalog.ActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]response_models.ProductOption, 0, len(products))
	for _, p := range products {
		out = append(out, response_models.ProductOption{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

func (s *SubscriptionService) toRow(r repositories.SubscriptionRow, now time.Time) response_models.SubscriptionRow {
	return response_models.SubscriptionRow{
		ID:                    r.ID,
		ProductName:           r.ProductName,
		ProductID:             r.ProductID,
		UserID:                r.UserID,
		SubscriptionPeriod:    r.SubscriptionPeriod,
		SubscriptionID:        r.SubscriptionID,
		SubscriptionStartDate: formatDate(r.SubscriptionStartDate),
		SubscriptionEndDate:   formatDate(r.SubscriptionEndDate),
		PlanPrice:             r.PlanPrice,
		Currency:              r.Currency,
		PlanID:                r.PlanID,
		PaymentMethod:         r.PaymentMethod,
		PlanName:              r.PlanName,
		IsCancelled:           r.IsCancelled,
		IsTrial:               r.IsTrial,
		Status:                SubscriptionStatus(r.SubscriptionEndDate, now, s.opts.Location),
	}
}

// civilDate keeps the calendar components of a stored DATE value.
func civilDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SubscriptionStatus classifies an end date against today's date in loc.
func SubscriptionStatus(end *time.Time, now time.Time, loc *time.Location) string {
	if end == nil {
		return response_models.StatusUnknown
	}
	local := utils.StartOfDay(now, loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	endDay := civilDate(*end)

	switch {
	case endDay.Before(today):
		return response_models.StatusExpired
	case !endDay.After(today.AddDate(0, 0, expiringWindowDays)):
		return response_models.StatusExpiringSoon
	default:
		return response_models.StatusActive
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := civilDate(*t).Format(utils.DateLayout)
	return &s
}
