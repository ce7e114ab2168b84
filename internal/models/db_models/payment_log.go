package db_models

import "github.com/shopspring/decimal"

// PaymentLog is one charge event written by the checkout system. This
// service only reads it.
type PaymentLog struct {
	ID                  uint                `gorm:"primaryKey"`
	ProductID           string              `gorm:"size:100;index"`
	OrderID             string              `gorm:"size:100"`
	ProductName         string              `gorm:"size:255"`
	UserID              string              `gorm:"size:64;index"`
	Description         string              `gorm:"type:text"`
	SubscriptionPeriod  string              `gorm:"size:50"`
	NetAmount           decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	PlanPrice           decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Currency            string              `gorm:"size:10"`
	TaxAmount           decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	InvoiceID           string              `gorm:"size:100"`
	TransactionID       string              `gorm:"size:100"`
	PaymentMethod       string              `gorm:"size:50"`
	PaymentSource       string              `gorm:"size:50"`
	RefundStatus        *string             `gorm:"size:20"`
	IPAddress           string              `gorm:"column:ip_address;size:64"`
	AddedOn             int64               `gorm:"column:addedon;index"`
	ClaimUser           *string             `gorm:"size:100"`
	PaymentTerms        *int                `gorm:"index"`
	CustomerPaymentType string              `gorm:"size:50"`
	AddonType           string              `gorm:"size:100"`
	PaymentCountry      string              `gorm:"size:10"`
	PlanID              string              `gorm:"size:64"`
	CouponCode          string              `gorm:"size:100"`
	DiscountAmount      decimal.NullDecimal `gorm:"type:decimal(10,2)"`
}

// Amount is the net amount, falling back to the plan price.
func (p PaymentLog) Amount() decimal.NullDecimal {
	if p.NetAmount.Valid {
		return p.NetAmount
	}
	return p.PlanPrice
}
