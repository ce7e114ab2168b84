package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/internal/models/request_models"
	"checkoutdash/internal/models/response_models"
	"checkoutdash/internal/repositories"
	"checkoutdash/pkg/logger"
	"checkoutdash/pkg/metrics"
	"checkoutdash/pkg/utils"
)

type PaymentLogServiceInterface interface {
	List(ctx context.Context, filter request_models.PaymentLogFilter, page request_models.PageRequest) (*response_models.PaymentLogPage, error)
	Get(ctx context.Context, id uint) (*response_models.PaymentLogRow, error)
}

// ReportOptions configures how listings are shaped and whether a failing
// live query may be answered from the synthetic source.
type ReportOptions struct {
	Location *time.Location
	Degraded bool
}

type PaymentLogService struct {
	live      ReportSource
	synthetic ReportSource
	repo      repositories.PaymentLogRepository
	enricher  *Enricher
	opts      ReportOptions
	metrics   *metrics.Metrics
}

func NewPaymentLogService(
	live ReportSource,
	synthetic ReportSource,
	repo repositories.PaymentLogRepository,
	enricher *Enricher,
	opts ReportOptions,
	m *metrics.Metrics,
) PaymentLogServiceInterface {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &PaymentLogService{
		live:      live,
		synthetic: synthetic,
		repo:      repo,
		enricher:  enricher,
		opts:      opts,
		metrics:   m,
	}
}

func (s *PaymentLogService) List(ctx context.Context, filter request_models.PaymentLogFilter, page request_models.PageRequest) (*response_models.PaymentLogPage, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	filters, err := repositories.BuildPaymentLogFilters(filter, s.opts.Location)
	if err != nil {
		return nil, err
	}

	source := s.live
	data, err := source.PaymentLogs(ctx, filters, page.Offset(), page.Limit)
	if err != nil {
		if !s.canDegrade(err) {
			return nil, err
		}
		logger.FromContext(ctx).Warn("payment log query failed, serving synthetic data", zap.Error(err))
		source = s.synthetic
		if data, err = source.PaymentLogs(ctx, filters, page.Offset(), page.Limit); err != nil {
			return nil, err
		}
	}
	s.metrics.ReportServed(source.Name())

	rows := make([]response_models.PaymentLogRow, 0, len(data.Logs))
	for _, l := range data.Logs {
		rows = append(rows, toPaymentLogRow(l, s.opts.Location))
	}
	if source.Name() == SourceLive {
		s.enricher.Enrich(ctx, rows)
	} else {
		for i := range rows {
			rows[i].Email = s.enricher.PlaceholderEmail(rows[i].UserID)
		}
	}

	return &response_models.PaymentLogPage{
		Source:  source.Name(),
		Rows:    rows,
		Summary: toSummary(data.Summary),
		Total:   data.Total,
	}, nil
}

func (s *PaymentLogService) Get(ctx context.Context, id uint) (*response_models.PaymentLogRow, error) {
	log, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, utils.ErrPaymentLogNotFound
	}

	row := toPaymentLogRow(*log, s.opts.Location)
	row.Email, row.CustomerName = s.enricher.Lookup(ctx, row.UserID, row.AppID)
	return &row, nil
}

func (s *PaymentLogService) canDegrade(err error) bool {
	return s.opts.Degraded && s.synthetic != nil && isStoreError(err)
}

// SubscriptionType labels a row from its term classifier, falling back to
// the free-text payment type.
func SubscriptionType(l db_models.PaymentLog) string {
	if l.PaymentTerms != nil {
		if label := utils.TermLabel(*l.PaymentTerms); label != "" {
			return label
		}
	}
	return l.CustomerPaymentType
}

func toPaymentLogRow(l db_models.PaymentLog, loc *time.Location) response_models.PaymentLogRow {
	refund := "No"
	if l.RefundStatus != nil {
		refund = *l.RefundStatus
	}
	return response_models.PaymentLogRow{
		ID:                 l.ID,
		AppID:              l.ProductID,
		AppName:            l.ProductName,
		UserID:             l.UserID,
		Message:            l.Description,
		PaymentPeriod:      l.SubscriptionPeriod,
		Amount:             l.Amount(),
		Currency:           l.Currency,
		TaxAmount:          l.TaxAmount,
		InvoiceID:          l.InvoiceID,
		TransactionID:      l.TransactionID,
		PaymentMode:        l.PaymentMethod,
		PaymentSource:      l.PaymentSource,
		DeviceSelection:    "desktop",
		RefundStatus:       refund,
		IPAddress:          l.IPAddress,
		LastPaymentDate:    utils.FormatTimestamp(l.AddedOn, loc),
		ClaimTo:            l.ClaimUser,
		SubscriptionType:   SubscriptionType(l),
		ProductName:        l.ProductName,
		ProductID:          l.ProductID,
		AddonName:          l.AddonType,
		Language:           l.PaymentCountry,
		ClaimedUser:        l.ClaimUser,
		PlanID:             l.PlanID,
		CouponCode:         l.CouponCode,
		DiscountAmount:     l.DiscountAmount,
		HasInvoice:         l.InvoiceID != "",
		HasSignedAgreement: false,
	}
}

func toSummary(row repositories.SummaryRow) response_models.PaymentLogSummary {
	bucket := func(count *int64, amount decimal.NullDecimal) (response_models.SummaryBucket, decimal.Decimal) {
		var b response_models.SummaryBucket
		if count != nil {
			b.Count = *count
		}
		sum := decimal.Zero
		if amount.Valid {
			sum = amount.Decimal.Round(2)
		}
		b.Amount = sum.InexactFloat64()
		return b, sum
	}

	var s response_models.PaymentLogSummary
	trial, trialSum := bucket(row.TrialCount, row.TrialAmount)
	renewal, renewalSum := bucket(row.RenewalCount, row.RenewalAmount)
	upgrade, upgradeSum := bucket(row.UpgradeCount, row.UpgradeAmount)
	s.Trial, s.Renewal, s.Upgrade = trial, renewal, upgrade
	s.Total = response_models.SummaryBucket{
		Count:  trial.Count + renewal.Count + upgrade.Count,
		Amount: trialSum.Add(renewalSum).Add(upgradeSum).InexactFloat64(),
	}
	return s
}

func isStoreError(err error) bool {
	return errors.Is(err, utils.ErrDataStoreUnavailable)
}
