package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"checkoutdash/internal/models/db_models"
	"checkoutdash/internal/repositories"
	"checkoutdash/internal/testutil"
	"checkoutdash/pkg/billingapi"
)

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// seedReportData loads a small checkout data set: four payment logs across
// the three terms and billing rows for two of the three users.
func seedReportData(t *testing.T, db *gorm.DB) {
	t.Helper()
	logs := []db_models.PaymentLog{
		{ProductID: "app-1", ProductName: "Builder", UserID: "10", Description: `Plan "Gold"`, SubscriptionPeriod: "monthly",
			NetAmount: money("19.99"), Currency: "USD", TaxAmount: money("2.00"), InvoiceID: "INV-1", TransactionID: "txn-1",
			PaymentMethod: "stripe", PaymentSource: "web", IPAddress: "1.2.3.4", AddedOn: 1709632800, PaymentTerms: testutil.Ptr(1)},
		{ProductID: "app-2", ProductName: "Chatbot", UserID: "11", PlanPrice: money("10.50"), PaymentMethod: "paypal",
			PaymentTerms: testutil.Ptr(2), RefundStatus: testutil.Ptr("Yes"), ClaimUser: testutil.Ptr("alice")},
		{ProductID: "app-3", ProductName: "Chatbot", UserID: "12", NetAmount: money("40.00"), PaymentMethod: "stripe",
			PaymentTerms: testutil.Ptr(3)},
		{ProductID: "app-4", ProductName: "Builder", UserID: "10", PaymentMethod: "stripe", CustomerPaymentType: "Legacy",
			PaymentTerms: testutil.Ptr(7)},
	}
	require.NoError(t, db.Create(&logs).Error)

	addrs := []db_models.BillingAddress{
		{UserID: "10", ProductID: "app-1", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"},
		{UserID: "10", ProductID: "app-1", Email: "later@example.com", FirstName: "Later", LastName: "Record"},
		{UserID: "11", ProductID: "app-2", Email: "grace@example.com", FirstName: "Grace"},
	}
	require.NoError(t, db.Create(&addrs).Error)
}

type mockReportSource struct {
	mock.Mock
}

func (m *mockReportSource) Name() string { return SourceLive }

func (m *mockReportSource) PaymentLogs(ctx context.Context, filters repositories.FilterSet, offset, limit int) (*PaymentLogData, error) {
	args := m.Called(ctx, filters, offset, limit)
	data, _ := args.Get(0).(*PaymentLogData)
	return data, args.Error(1)
}

func (m *mockReportSource) Subscriptions(ctx context.Context, filters repositories.FilterSet, offset, limit int) (*SubscriptionData, error) {
	args := m.Called(ctx, filters, offset, limit)
	data, _ := args.Get(0).(*SubscriptionData)
	return data, args.Error(1)
}

type mockBillingGateway struct {
	mock.Mock
}

func (m *mockBillingGateway) ChargeRenewal(ctx context.Context, req billingapi.RenewalChargeRequest) (*billingapi.Result, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*billingapi.Result)
	return res, args.Error(1)
}

func (m *mockBillingGateway) CancelSubscription(ctx context.Context, req billingapi.CancelRequest) (*billingapi.Result, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*billingapi.Result)
	return res, args.Error(1)
}
