package models

import (
	"time"

	"gorm.io/gorm"
)

// Category kinds
const (
	CategoryKindExpense = "expense"
	CategoryKindIncome  = "income"
)

// Category is a user-extensible expense or income category (seeded with the
// fixed defaults, maintained through CRUD afterwards).
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:50;not null;uniqueIndex:idx_categories_name_kind"`
	Kind      string         `json:"kind" gorm:"size:10;not null;default:expense;uniqueIndex:idx_categories_name_kind"`
	Sort      int            `json:"sort" gorm:"default:0;index"`
	Color     string         `json:"color" gorm:"size:20;default:#64748b"` // hex color, e.g. #ef4444
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name
func (Category) TableName() string {
	return "categories"
}

// DefaultExpenseCategories returns the seeded expense category names in
// display order.
func DefaultExpenseCategories() []string {
	return []string{
		CategoryBreakfast,
		CategoryLunch,
		CategoryDinner,
		CategoryShopping,
		CategoryRent,
		CategorySendHome,
		CategoryTransport,
		CategoryFee,
		CategoryEntertainment,
		CategoryLongTermSaving,
		CategoryEmergencySaving,
		CategoryInvestment,
		CategoryDebtPayment,
		CategoryCreditPayment,
		CategoryAdditional,
		CategorySpecial,
	}
}

// DefaultIncomeCategories returns the seeded income category names.
// CategoryPreviousMonth is reserved for the carry-over row.
func DefaultIncomeCategories() []string {
	return []string{
		"salary",
		"bonus",
		"sideIncome",
		CategoryPreviousMonth,
		"other",
	}
}
