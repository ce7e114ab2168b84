package db_models

type BillingAddress struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;index"`
	ProductID string `gorm:"size:100"`
	Email     string `gorm:"size:255"`
	FirstName string `gorm:"size:100"`
	LastName  string `gorm:"size:100"`
	Address   string `gorm:"size:255"`
	City      string `gorm:"size:100"`
	State     string `gorm:"size:100"`
	Zip       string `gorm:"size:20"`
}

// FullName is "first last" when both parts are present.
func (b BillingAddress) FullName() (string, bool) {
	if b.FirstName == "" || b.LastName == "" {
		return "", false
	}
	return b.FirstName + " " + b.LastName, true
}
