package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/internal/repositories"
	"checkoutdash/pkg/utils"
)

const (
	SourceLive      = "live"
	SourceSynthetic = "synthetic"
)

// PaymentLogData is what a ReportSource returns for one payment-log page.
type PaymentLogData struct {
	Total   int64
	Summary repositories.SummaryRow
	Logs    []db_models.PaymentLog
}

type SubscriptionData struct {
	Total int64
	Rows  []repositories.SubscriptionRow
}

// ReportSource produces the raw rows behind the listing endpoints.
type ReportSource interface {
	Name() string
	PaymentLogs(ctx context.Context, filters repositories.FilterSet, offset, limit int) (*PaymentLogData, error)
	Subscriptions(ctx context.Context, filters repositories.FilterSet, offset, limit int) (*SubscriptionData, error)
}

type liveSource struct {
	paymentLogs   repositories.PaymentLogRepository
	subscriptions repositories.SubscriptionRepository
}

func NewLiveSource(paymentLogs repositories.PaymentLogRepository, subscriptions repositories.SubscriptionRepository) ReportSource {
	return &liveSource{paymentLogs: paymentLogs, subscriptions: subscriptions}
}

func (s *liveSource) Name() string { return SourceLive }

// PaymentLogs runs count, summary and page over the same filter set.
func (s *liveSource) PaymentLogs(ctx context.Context, filters repositories.FilterSet, offset, limit int) (*PaymentLogData, error) {
	total, err := s.paymentLogs.Count(ctx, filters)
	if err != nil {
		return nil, err
	}
	summary, err := s.paymentLogs.Summary(ctx, filters)
	if err != nil {
		return nil, err
	}
	logs, err := s.paymentLogs.FindPage(ctx, filters, offset, limit)
	if err != nil {
		return nil, err
	}
	return &PaymentLogData{Total: total, Summary: summary, Logs: logs}, nil
}

func (s *liveSource) Subscriptions(ctx context.Context, filters repositories.FilterSet, offset, limit int) (*SubscriptionData, error) {
	total, err := s.subscriptions.Count(ctx, filters)
	if err != nil {
		return nil, err
	}
	rows, err := s.subscriptions.FindPage(ctx, filters, offset, limit)
	if err != nil {
		return nil, err
	}
	return &SubscriptionData{Total: total, Rows: rows}, nil
}

// syntheticRowCount is the size of the generated data set.
const syntheticRowCount = 50

var (
	syntheticProducts = []string{"App Builder", "Chatbot", "Website Builder", "Workflow"}
	syntheticMethods  = []string{"stripe", "paypal", "razorpay", "ccavenue"}
	syntheticSources  = []string{"web", "ios", "android"}
	syntheticPeriods  = []string{"monthly", "yearly", "quarterly"}
	syntheticCountry  = []string{"us", "in", "gb", "de", "br"}
	syntheticPlans    = []string{"Basic", "Gold", "Platinum"}
	syntheticPrices   = []string{"9.99", "19.99", "49.00", "99.00", "149.50"}
)

// syntheticSource serves a fixed, deterministic data set. It ignores
// filters: rows always come from the full set, newest id first.
type syntheticSource struct {
	logs []db_models.PaymentLog
	subs []repositories.SubscriptionRow
}

// NewSyntheticSource builds the data set relative to anchor so subscription
// statuses spread across every bucket.
func NewSyntheticSource(anchor time.Time) ReportSource {
	base := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)

	s := &syntheticSource{}
	for i := 1; i <= syntheticRowCount; i++ {
		term := i%3 + 1
		price := decimal.RequireFromString(syntheticPrices[i%len(syntheticPrices)])
		refund := "No"
		if i%17 == 0 {
			refund = "Yes"
		}
		var claim *string
		if i%4 == 0 {
			c := fmt.Sprintf("agent%02d", i%7)
			claim = &c
		}
		invoice := ""
		if i%5 != 0 {
			invoice = fmt.Sprintf("INV-%06d", 100000+i)
		}

		s.logs = append(s.logs, db_models.PaymentLog{
			ID:                 uint(i),
			ProductID:          fmt.Sprintf("app-%04d", i),
			OrderID:            fmt.Sprintf("ord-%05d", i),
			ProductName:        syntheticProducts[i%len(syntheticProducts)],
			UserID:             fmt.Sprint(1000 + i%23),
			Description:        "Subscription payment",
			SubscriptionPeriod: syntheticPeriods[i%len(syntheticPeriods)],
			NetAmount:          decimal.NewNullDecimal(price),
			Currency:           "USD",
			TaxAmount:          decimal.NewNullDecimal(price.Mul(decimal.RequireFromString("0.1")).Round(2)),
			InvoiceID:          invoice,
			TransactionID:      fmt.Sprintf("txn_%08d", i*7919),
			PaymentMethod:      syntheticMethods[i%len(syntheticMethods)],
			PaymentSource:      syntheticSources[i%len(syntheticSources)],
			RefundStatus:       &refund,
			IPAddress:          fmt.Sprintf("10.0.%d.%d", i/10, i%10),
			AddedOn:            base.Add(-time.Duration(i) * 6 * time.Hour).Unix(),
			ClaimUser:          claim,
			PaymentTerms:       &term,
			PaymentCountry:     syntheticCountry[i%len(syntheticCountry)],
			PlanID:             fmt.Sprint(i%3 + 1),
		})

		planID := uint(i%3 + 1)
		planName := syntheticPlans[i%3]
		start := base.AddDate(0, 0, -30-i)
		var end *time.Time
		if i%11 != 0 {
			e := base.AddDate(0, 0, i-20)
			end = &e
		}
		s.subs = append(s.subs, repositories.SubscriptionRow{
			Subscription: db_models.Subscription{
				ID:                    uint(i),
				ProductName:           syntheticProducts[i%len(syntheticProducts)],
				ProductID:             fmt.Sprintf("app-%04d", i),
				UserID:                fmt.Sprint(1000 + i%23),
				PlanID:                &planID,
				SubscriptionID:        fmt.Sprintf("sub_%06d", i),
				SubscriptionPeriod:    syntheticPeriods[i%len(syntheticPeriods)],
				SubscriptionStartDate: &start,
				SubscriptionEndDate:   end,
				PlanPrice:             decimal.NewNullDecimal(price),
				Currency:              "USD",
				PaymentMethod:         syntheticMethods[i%len(syntheticMethods)],
			},
			PlanName: &planName,
		})
	}

	sort.Slice(s.logs, func(a, b int) bool { return s.logs[a].ID > s.logs[b].ID })
	sort.Slice(s.subs, func(a, b int) bool { return s.subs[a].ID > s.subs[b].ID })
	return s
}

func (s *syntheticSource) Name() string { return SourceSynthetic }

func (s *syntheticSource) PaymentLogs(_ context.Context, _ repositories.FilterSet, offset, limit int) (*PaymentLogData, error) {
	return &PaymentLogData{
		Total:   int64(len(s.logs)),
		Summary: summarize(s.logs),
		Logs:    window(s.logs, offset, limit),
	}, nil
}

func (s *syntheticSource) Subscriptions(_ context.Context, _ repositories.FilterSet, offset, limit int) (*SubscriptionData, error) {
	return &SubscriptionData{
		Total: int64(len(s.subs)),
		Rows:  window(s.subs, offset, limit),
	}, nil
}

func window[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := min(offset+limit, len(rows))
	return rows[offset:end]
}

// summarize computes the per-term aggregates in memory, mirroring the SQL
// summary query.
func summarize(logs []db_models.PaymentLog) repositories.SummaryRow {
	counts := map[int]int64{}
	sums := map[int]decimal.Decimal{}
	for _, l := range logs {
		if l.PaymentTerms == nil {
			continue
		}
		term := *l.PaymentTerms
		counts[term]++
		sums[term] = sums[term].Add(l.Amount().Decimal)
	}

	bucket := func(term int) (*int64, decimal.NullDecimal) {
		n := counts[term]
		return &n, decimal.NewNullDecimal(sums[term])
	}
	var row repositories.SummaryRow
	row.TrialCount, row.TrialAmount = bucket(utils.TermNew)
	row.RenewalCount, row.RenewalAmount = bucket(utils.TermRenewal)
	row.UpgradeCount, row.UpgradeAmount = bucket(utils.TermUpgrade)
	return row
}
