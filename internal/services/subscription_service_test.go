package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/internal/models/request_models"
	"checkoutdash/internal/models/response_models"
	"checkoutdash/internal/repositories"
	"checkoutdash/internal/testutil"
	"checkoutdash/pkg/clock"
	"checkoutdash/pkg/utils"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSubscriptionStatus(t *testing.T) {
	now := time.Date(2024, time.March, 5, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  *time.Time
		want string
	}{
		{"no end date", nil, response_models.StatusUnknown},
		{"yesterday", date(2024, time.March, 4), response_models.StatusExpired},
		{"today", date(2024, time.March, 5), response_models.StatusExpiringSoon},
		{"in three days", date(2024, time.March, 8), response_models.StatusExpiringSoon},
		{"in seven days", date(2024, time.March, 12), response_models.StatusExpiringSoon},
		{"in eight days", date(2024, time.March, 13), response_models.StatusActive},
		{"in thirty days", date(2024, time.April, 4), response_models.StatusActive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SubscriptionStatus(tc.end, now, time.UTC))
		})
	}
}

func TestSubscriptionStatusUsesConfiguredZone(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 23:30 UTC on the 5th is already the 6th in Kolkata.
	now := time.Date(2024, time.March, 5, 23, 30, 0, 0, time.UTC)
	end := date(2024, time.March, 5)

	assert.Equal(t, response_models.StatusExpiringSoon, SubscriptionStatus(end, now, time.UTC))
	assert.Equal(t, response_models.StatusExpired, SubscriptionStatus(end, now, kolkata))
}

func seedSubscriptionData(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&[]db_models.Plan{
		{ID: 1, PlanName: "Gold", ProductName: "Builder", Status: 1},
		{ID: 2, PlanName: "Basic", ProductName: "Chatbot", Status: 1},
	}).Error)
	require.NoError(t, db.Create(&[]db_models.Product{
		{Name: "Chatbot", Status: 1},
		{Name: "Builder", Status: 1},
	}).Error)
	require.NoError(t, db.Create(&[]db_models.Subscription{
		{ProductName: "Builder", ProductID: "app-1", UserID: "10", PlanID: testutil.Ptr(uint(1)), SubscriptionPeriod: "monthly",
			SubscriptionStartDate: date(2024, time.January, 1), SubscriptionEndDate: date(2024, time.March, 1), PlanPrice: money("19.99")},
		{ProductName: "Chatbot", ProductID: "app-2", UserID: "11", PlanID: testutil.Ptr(uint(2)), SubscriptionPeriod: "yearly",
			SubscriptionEndDate: date(2024, time.March, 9)},
		{ProductName: "Builder", ProductID: "app-3", UserID: "12", SubscriptionEndDate: date(2025, time.March, 1)},
		{ProductName: "Chatbot", ProductID: "app-4", UserID: "13"},
	}).Error)
}

func newSubscriptionService(db *gorm.DB, live ReportSource, degraded bool) SubscriptionServiceInterface {
	repo := repositories.NewSubscriptionRepository(db)
	if live == nil {
		live = NewLiveSource(repositories.NewPaymentLogRepository(db), repo)
	}
	return NewSubscriptionService(
		live,
		NewSyntheticSource(anchor),
		repo,
		repositories.NewCatalogRepository(db),
		ReportOptions{Location: time.UTC, Degraded: degraded},
		clock.Fixed(anchor),
		nil,
	)
}

func TestSubscriptionServiceList(t *testing.T) {
	db := testutil.NewDB(t)
	seedSubscriptionData(t, db)
	svc := newSubscriptionService(db, nil, false)

	page, err := svc.List(context.Background(), request_models.SubscriptionFilter{}, request_models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, SourceLive, page.Source)
	assert.Equal(t, int64(4), page.Total)
	require.Len(t, page.Rows, 4)

	statuses := map[string]string{}
	for _, r := range page.Rows {
		statuses[r.ProductID] = r.Status
	}
	assert.Equal(t, map[string]string{
		"app-1": response_models.StatusExpired,
		"app-2": response_models.StatusExpiringSoon,
		"app-3": response_models.StatusActive,
		"app-4": response_models.StatusUnknown,
	}, statuses)

	last := page.Rows[3]
	require.NotNil(t, last.PlanName)
	assert.Equal(t, "Gold", *last.PlanName)
	require.NotNil(t, last.SubscriptionEndDate)
	assert.Equal(t, "2024-03-01", *last.SubscriptionEndDate)
	assert.Equal(t, "2024-01-01", *last.SubscriptionStartDate)
}

func TestSubscriptionServiceListFilters(t *testing.T) {
	db := testutil.NewDB(t)
	seedSubscriptionData(t, db)
	svc := newSubscriptionService(db, nil, false)

	page, err := svc.List(context.Background(), request_models.SubscriptionFilter{PlanName: "Basic"}, request_models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "app-2", page.Rows[0].ProductID)
}

func TestSubscriptionServiceDegraded(t *testing.T) {
	db := testutil.NewDB(t)
	live := &mockReportSource{}
	live.On("Subscriptions", anyArg, anyArg, 0, 5).Return(nil, utils.StoreError("count subscriptions", assert.AnError))
	svc := newSubscriptionService(db, live, true)

	page, err := svc.List(context.Background(), request_models.SubscriptionFilter{}, request_models.PageRequest{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, SourceSynthetic, page.Source)
	assert.Len(t, page.Rows, 5)
	assert.Equal(t, int64(syntheticRowCount), page.Total)
}

func TestSubscriptionServiceGet(t *testing.T) {
	db := testutil.NewDB(t)
	seedSubscriptionData(t, db)
	svc := newSubscriptionService(db, nil, false)

	row, err := svc.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Basic", *row.PlanName)
	assert.Equal(t, response_models.StatusExpiringSoon, row.Status)

	_, err = svc.Get(context.Background(), 40)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestSubscriptionServiceCatalog(t *testing.T) {
	db := testutil.NewDB(t)
	seedSubscriptionData(t, db)
	svc := newSubscriptionService(db, nil, false)
	ctx := context.Background()

	plans, err := svc.Plans(ctx, "Builder")
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Gold", plans[0].Name)

	all, err := svc.Plans(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Basic", all[0].Name)

	products, err := svc.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, []response_models.ProductOption{{ID: 2, Name: "Builder"}, {ID: 1, Name: "Chatbot"}}, products)
}
