package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Debt is a multi-month repayment obligation. Its schedule is materialized
// eagerly as creditPayment expenses, one per covered month.
type Debt struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	UserID         uint           `json:"user_id" gorm:"index;not null"`
	Name           string         `json:"name" gorm:"size:100;not null"`
	TotalAmount    int64          `json:"total_amount" gorm:"not null"`
	Months         int            `json:"months" gorm:"not null"`
	StartMonth     int            `json:"start_month" gorm:"not null"`
	StartYear      int            `json:"start_year" gorm:"not null"`
	MonthlyPayment int64          `json:"monthly_payment" gorm:"not null"` // derived: ceil(total_amount / months)
	Note           string         `json:"note" gorm:"size:255"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
	User           User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name
func (Debt) TableName() string {
	return "debts"
}

// PaymentNote is the human-readable note written on projected expense rows.
// Linkage to the debt goes through Expense.DebtID, not this string.
func (d *Debt) PaymentNote() string {
	return fmt.Sprintf("Debt repayment: %s", d.Name)
}
