package db_models

type Plan struct {
	ID          uint   `gorm:"primaryKey"`
	PlanName    string `gorm:"size:255"`
	Identifier  string `gorm:"column:identifire;size:100"`
	ProductName string `gorm:"size:255"`
	Status      int
	SortOrder   int `gorm:"column:sortorder"`
}
