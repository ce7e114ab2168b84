package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkoutdash/internal/models/request_models"
	"checkoutdash/pkg/utils"
)

func TestBuildPaymentLogFiltersEmpty(t *testing.T) {
	f, err := BuildPaymentLogFilters(request_models.PaymentLogFilter{}, time.UTC)
	require.NoError(t, err)
	assert.True(t, f.Empty())
	assert.Equal(t, "", f.SQL())
	assert.Empty(t, f.Args())
}

func TestBuildPaymentLogFiltersOrderAndArgs(t *testing.T) {
	f, err := BuildPaymentLogFilters(request_models.PaymentLogFilter{
		SearchByAppID:    "abc",
		SearchDate:       "2024-03-05",
		SubscriptionType: "Renewal",
		PaymentMode:      "stripe",
		ClaimedUser:      "claimed",
		Language:         "in",
	}, time.UTC)
	require.NoError(t, err)

	start := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t,
		"(product_id LIKE ? OR order_id LIKE ?) AND (addedon >= ? AND addedon < ?) AND (payment_terms = ?) AND (payment_method = ?) AND (claim_user IS NOT NULL AND claim_user <> '') AND (payment_country = ?)",
		f.SQL())
	assert.Equal(t, []interface{}{"%abc%", "%abc%", start, start + 86400, 2, "stripe", "in"}, f.Args())
	assert.Len(t, f.Clauses(), 6)
}

func TestBuildPaymentLogFiltersSearchDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	f, err := BuildPaymentLogFilters(request_models.PaymentLogFilter{SearchDate: "2024-03-05"}, loc)
	require.NoError(t, err)

	start := time.Date(2024, time.March, 5, 0, 0, 0, 0, loc).Unix()
	assert.Equal(t, []interface{}{start, start + 86400}, f.Args())
}

func TestBuildPaymentLogFiltersInvalidDate(t *testing.T) {
	_, err := BuildPaymentLogFilters(request_models.PaymentLogFilter{SearchDate: "yesterday"}, time.UTC)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrInvalidInput))

	var fieldErr *utils.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "searchDate", fieldErr.Field)
}

func TestBuildPaymentLogFiltersSubscriptionTypes(t *testing.T) {
	for _, tc := range []struct {
		value string
		want  []interface{}
	}{
		{"new", []interface{}{1}},
		{"trial", []interface{}{1}},
		{"UPGRADE", []interface{}{3}},
		{"lifetime", nil},
	} {
		f, err := BuildPaymentLogFilters(request_models.PaymentLogFilter{SubscriptionType: tc.value}, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, tc.want, f.Args(), tc.value)
	}
}

func TestBuildPaymentLogFiltersClaimedUser(t *testing.T) {
	cases := map[string]string{
		"claimed":   "(claim_user IS NOT NULL AND claim_user <> '')",
		"unclaimed": "(claim_user IS NULL OR claim_user = '')",
		"alice":     "(claim_user = ?)",
	}
	for value, sql := range cases {
		f, err := BuildPaymentLogFilters(request_models.PaymentLogFilter{ClaimedUser: value}, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, sql, f.SQL(), value)
	}
}

func TestBuildSubscriptionFilters(t *testing.T) {
	f := BuildSubscriptionFilters(request_models.SubscriptionFilter{
		ProductName: "Builder",
		PlanName:    "Gold",
		RenewalDate: "2024-03",
	}, "mysql")

	assert.Equal(t, "(s.product_name LIKE ?) AND (p.plan_name LIKE ?) AND (CAST(s.subscription_end_date AS CHAR) LIKE ?)", f.SQL())
	assert.Equal(t, []interface{}{"%Builder%", "%Gold%", "%2024-03%"}, f.Args())

	f = BuildSubscriptionFilters(request_models.SubscriptionFilter{StartDate: "2024"}, "sqlite")
	assert.Equal(t, "(CAST(s.subscription_start_date AS TEXT) LIKE ?)", f.SQL())
}
