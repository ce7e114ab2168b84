package db_models

type AddonPlan struct {
	ID          uint   `gorm:"primaryKey"`
	PlanName    string `gorm:"size:255"`
	Identifier  string `gorm:"column:identifire;size:100"`
	ProductName string `gorm:"size:255"`
	Status      int
	SortOrder   int `gorm:"column:sortorder"`
}

type Product struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"size:255"`
	Status int
}

type Pricing struct {
	ID         uint   `gorm:"primaryKey"`
	PlanPeriod string `gorm:"size:50"`
	Status     int
}

type Country struct {
	ID           uint   `gorm:"primaryKey"`
	Country      string `gorm:"column:country;size:10"`
	CurrencyCode string `gorm:"column:currencyCode;size:10"`
	CurrencySign string `gorm:"column:currencySign;size:10"`
	Status       int
	SortOrder    int `gorm:"column:sortOrder"`
}
