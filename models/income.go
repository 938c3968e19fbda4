package models

import (
	"time"

	"gorm.io/gorm"
)

// CategoryPreviousMonth is the reserved income category carrying the
// previous month's unspent balance into the current month. At most one such
// row may exist per (user, month, year).
const CategoryPreviousMonth = "previousMonth"

// Income is a single dated inflow.
type Income struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Month     int            `json:"month" gorm:"not null;index:idx_incomes_month_year"`
	Year      int            `json:"year" gorm:"not null;index:idx_incomes_month_year"`
	Category  string         `json:"category" gorm:"size:50;not null"`
	Amount    int64          `json:"amount" gorm:"not null"`
	Note      string         `json:"note" gorm:"size:255"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name
func (Income) TableName() string {
	return "incomes"
}
