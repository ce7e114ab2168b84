package db_models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Subscription struct {
	ID                    uint                `gorm:"primaryKey"`
	ProductName           string              `gorm:"size:255"`
	ProductID             string              `gorm:"size:100;index"`
	UserID                string              `gorm:"size:64;index"`
	PlanID                *uint               `gorm:"index"`
	SubscriptionID        string              `gorm:"size:100"`
	SubscriptionPeriod    string              `gorm:"size:50"`
	SubscriptionStartDate *time.Time          `gorm:"type:date"`
	SubscriptionEndDate   *time.Time          `gorm:"type:date"`
	PlanPrice             decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Currency              string              `gorm:"size:10"`
	PaymentMethod         string              `gorm:"size:50"`
	IsCancelled           bool
	IsTrial               bool
}
