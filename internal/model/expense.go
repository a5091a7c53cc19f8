package model

import "time"

// Expense is independent of all other entities; it only feeds the profit
// and expense reports.
type Expense struct {
	BaseModel
	Category    string    `gorm:"type:varchar(100);not null" json:"category"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
}
