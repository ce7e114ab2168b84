package response_models

import "github.com/shopspring/decimal"

// PaymentLogRow is one payment log as the dashboard grid renders it.
type PaymentLogRow struct {
	ID                 uint                `json:"id"`
	AppID              string              `json:"app_id"`
	AppName            string              `json:"app_name"`
	UserID             string              `json:"user_id"`
	Message            string              `json:"message"`
	PaymentPeriod      string              `json:"payment_period"`
	Amount             decimal.NullDecimal `json:"amount"`
	Currency           string              `json:"currency"`
	TaxAmount          decimal.NullDecimal `json:"tax_amount"`
	InvoiceID          string              `json:"invoice_id"`
	TransactionID      string              `json:"transaction_id"`
	PaymentMode        string              `json:"payment_mode"`
	PaymentSource      string              `json:"payment_source"`
	DeviceSelection    string              `json:"device_selection"`
	RefundStatus       string              `json:"refund_status"`
	IPAddress          string              `json:"ip_address"`
	LastPaymentDate    string              `json:"last_payment_date"`
	ClaimTo            *string             `json:"claim_to"`
	SubscriptionType   string              `json:"subscription_type"`
	ProductName        string              `json:"product_name"`
	ProductID          string              `json:"product_id"`
	AddonName          string              `json:"addon_name"`
	Language           string              `json:"language"`
	ClaimedUser        *string             `json:"claimed_user"`
	PlanID             string              `json:"plan_id"`
	CouponCode         string              `json:"coupon_code"`
	DiscountAmount     decimal.NullDecimal `json:"discount_amount"`
	HasInvoice         bool                `json:"has_invoice"`
	HasSignedAgreement bool                `json:"has_signed_agreement"`
	Email              string              `json:"email"`
	CustomerName       *string             `json:"customer_name"`
}

type SummaryBucket struct {
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type PaymentLogSummary struct {
	Trial   SummaryBucket `json:"trial"`
	Renewal SummaryBucket `json:"renewal"`
	Upgrade SummaryBucket `json:"upgrade"`
	Total   SummaryBucket `json:"total"`
}

// PaymentLogPage is a filtered page plus the aggregates over every matching
// row.
type PaymentLogPage struct {
	Source  string
	Rows    []PaymentLogRow
	Summary PaymentLogSummary
	Total   int64
}
