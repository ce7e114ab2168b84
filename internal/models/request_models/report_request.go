package request_models

import (
	"math"

	"checkoutdash/pkg/utils"
)

// PaymentLogFilter carries the optional payment-log query parameters.
// Empty fields add no predicate.
type PaymentLogFilter struct {
	SearchByAppID              string `form:"searchByAppId"`
	SearchByAppIDOrTransaction string `form:"searchByAppIdOrTransaction"`
	SearchDate                 string `form:"searchDate"`
	SubscriptionType           string `form:"subscriptionType"`
	ProductID                  string `form:"productId"`
	SubscriptionPeriod         string `form:"subscriptionPeriod"`
	Addons                     string `form:"addons"`
	PaymentMode                string `form:"paymentMode"`
	PaymentSource              string `form:"paymentSource"`
	ClaimedUser                string `form:"claimedUser"`
	Language                   string `form:"language"`
}

type SubscriptionFilter struct {
	ProductName   string `form:"productName"`
	ProductID     string `form:"productId"`
	PlanName      string `form:"planName"`
	Period        string `form:"period"`
	PaymentMethod string `form:"paymentMethod"`
	StartDate     string `form:"startDate"`
	RenewalDate   string `form:"renewalDate"`
}

// PageRequest is a validated 1-based page request.
type PageRequest struct {
	Page  int
	Limit int
}

// Validate rejects non-positive values and pages whose offset would overflow.
func (p PageRequest) Validate() error {
	if p.Limit < 1 {
		return utils.NewFieldError("limit", "must be a positive integer")
	}
	if p.Page < 1 {
		return utils.NewFieldError("page", "must be a positive integer")
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return utils.NewFieldError("page", "is out of range")
	}
	return nil
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}
