package response_models

import "github.com/shopspring/decimal"

const (
	StatusUnknown      = "Unknown"
	StatusExpired      = "Expired"
	StatusExpiringSoon = "Expiring Soon"
	StatusActive       = "Active"
)

type SubscriptionRow struct {
	ID                    uint                `json:"id"`
	ProductName           string              `json:"product_name"`
	ProductID             string              `json:"product_id"`
	UserID                string              `json:"user_id"`
	SubscriptionPeriod    string              `json:"subscription_period"`
	SubscriptionID        string              `json:"subscription_id"`
	SubscriptionStartDate *string             `json:"subscription_start_date"`
	SubscriptionEndDate   *string             `json:"subscription_end_date"`
	PlanPrice             decimal.NullDecimal `json:"plan_price"`
	Currency              string              `json:"currency"`
	PlanID                *uint               `json:"plan_id"`
	PaymentMethod         string              `json:"payment_method"`
	PlanName              *string             `json:"plan_name"`
	IsCancelled           bool                `json:"is_cancelled"`
	IsTrial               bool                `json:"is_trial"`
	Status                string              `json:"status"`
}

type SubscriptionPage struct {
	Source string
	Rows   []SubscriptionRow
	Total  int64
}

type PlanOption struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Identifier  string `json:"identifier,omitempty"`
	ProductName string `json:"productName,omitempty"`
}

type ProductOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
