package db_models

import "time"

// Admin is a dashboard operator account.
type Admin struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:255;uniqueIndex"`
	Password  string `gorm:"size:255"`
	Name      string `gorm:"size:255"`
	CreatedAt time.Time
}
