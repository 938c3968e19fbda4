package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense is a single dated outflow, attributed to a calendar (month, year).
// Rows projected from a debt schedule carry the owning debt's ID in DebtID;
// those rows are managed exclusively by the projector.
type Expense struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	Month        int            `json:"month" gorm:"not null;index:idx_expenses_month_year"`
	Year         int            `json:"year" gorm:"not null;index:idx_expenses_month_year"`
	Category     string         `json:"category" gorm:"size:50;not null"`
	Scope        string         `json:"scope" gorm:"size:4;not null;default:S"`
	Amount       int64          `json:"amount" gorm:"not null"`
	ActualAmount *int64         `json:"actual_amount,omitempty"` // real spend vs planned
	Note         string         `json:"note" gorm:"size:255"`
	DebtID       *uint          `json:"debt_id,omitempty" gorm:"index"` // set on debt-projected rows only
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
	User         User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name
func (Expense) TableName() string {
	return "expenses"
}

// IsProjected reports whether the row is owned by a debt's schedule.
func (e *Expense) IsProjected() bool {
	return e.DebtID != nil
}

// Expense category constants
const (
	CategoryBreakfast       = "breakfast"
	CategoryLunch           = "lunch"
	CategoryDinner          = "dinner"
	CategoryShopping        = "shopping"
	CategoryRent            = "rent"
	CategorySendHome        = "sendHome"
	CategoryTransport       = "transport"
	CategoryFee             = "fee"
	CategoryEntertainment   = "entertainment"
	CategoryLongTermSaving  = "longTermSaving"
	CategoryEmergencySaving = "emergencySaving"
	CategoryInvestment      = "investment"
	CategoryDebtPayment     = "debtPayment"
	CategoryCreditPayment   = "creditPayment"
	CategoryAdditional      = "additional"
	CategorySpecial         = "special"
)

// Budget scope tags, orthogonal to category.
const (
	ScopeDaily    = "S" // Sinh hoạt
	ScopeSelfCare = "L" // Làm đẹp
	ScopeChildren = "C" // Con cái
	ScopePersonal = "B" // Bản thân
	ScopeInvest   = "Đ" // Đầu tư
)

// Scopes lists all budget scope tags.
func Scopes() []string {
	return []string{ScopeDaily, ScopeSelfCare, ScopeChildren, ScopePersonal, ScopeInvest}
}

// IsValidScope reports whether s is a known budget scope.
func IsValidScope(s string) bool {
	switch s {
	case ScopeDaily, ScopeSelfCare, ScopeChildren, ScopePersonal, ScopeInvest:
		return true
	}
	return false
}
