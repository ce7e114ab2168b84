package db_models

type WorkType string

const (
	WorkTypeCancel        WorkType = "cancel"
	WorkTypeRenewal       WorkType = "renewal"
	WorkTypeUpdateEndDate WorkType = "update_end_date"
)

// PaymentComment is the append-only audit row written by every lifecycle
// action.
type PaymentComment struct {
	ID        uint     `gorm:"primaryKey"`
	ProductID string   `gorm:"size:100;index"`
	Comment   string   `gorm:"type:text"`
	AddedOn   int64    `gorm:"column:addedon"`
	AdminUser string   `gorm:"column:adminuser;size:100"`
	WorkType  WorkType `gorm:"size:32"`
}
