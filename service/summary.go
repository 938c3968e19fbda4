package service

import (
	"errors"
	"fmt"

	"budget/database"
	"budget/models"

	"gorm.io/gorm"
)

// MonthlySummary is the derived financial view of one (month, year).
type MonthlySummary struct {
	Month                  int   `json:"month"`
	Year                   int   `json:"year"`
	CurrentMonthIncome     int64 `json:"current_month_income"`
	PreviousMonthAmount    int64 `json:"previous_month_amount"`
	TotalIncome            int64 `json:"total_income"`
	TotalExpense           int64 `json:"total_expense"`
	Remaining              int64 `json:"remaining"`
	PreviousMonthRemaining int64 `json:"previous_month_remaining"`
}

// SummaryService computes monthly aggregates. Read-only.
type SummaryService struct{}

// NewSummaryService creates the aggregator service.
func NewSummaryService() *SummaryService {
	return &SummaryService{}
}

// Summary computes the (month, year) summary for a user. The reserved
// carry-over income category counts once via PreviousMonthAmount and is
// excluded from CurrentMonthIncome. PreviousMonthRemaining reflects only the
// immediately preceding month's net, not a running chain. Empty aggregates
// are 0; Remaining may go negative.
func (s *SummaryService) Summary(userID uint, month, year int) (*MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be within 1-12", ErrInvalidInput)
	}

	prevMonth, prevYear := PreviousMonth(month, year)

	currentIncome, err := s.sumIncome(userID, month, year)
	if err != nil {
		return nil, err
	}

	carryOver, err := s.carryOverAmount(userID, month, year)
	if err != nil {
		return nil, err
	}

	currentExpense, err := s.sumExpense(userID, month, year)
	if err != nil {
		return nil, err
	}

	prevIncome, err := s.sumIncome(userID, prevMonth, prevYear)
	if err != nil {
		return nil, err
	}

	prevExpense, err := s.sumExpense(userID, prevMonth, prevYear)
	if err != nil {
		return nil, err
	}

	totalIncome := currentIncome + carryOver
	return &MonthlySummary{
		Month:                  month,
		Year:                   year,
		CurrentMonthIncome:     currentIncome,
		PreviousMonthAmount:    carryOver,
		TotalIncome:            totalIncome,
		TotalExpense:           currentExpense,
		Remaining:              totalIncome - currentExpense,
		PreviousMonthRemaining: prevIncome - prevExpense,
	}, nil
}

// sumIncome totals a month's income excluding the reserved carry-over
// category, which would otherwise be counted twice across month boundaries.
func (s *SummaryService) sumIncome(userID uint, month, year int) (int64, error) {
	var total int64
	err := database.DB.Model(&models.Income{}).
		Where("user_id = ? AND month = ? AND year = ? AND category <> ?",
			userID, month, year, models.CategoryPreviousMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum income: %w", err)
	}
	return total, nil
}

// carryOverAmount looks up the single carry-over income row, 0 if absent.
func (s *SummaryService) carryOverAmount(userID uint, month, year int) (int64, error) {
	var income models.Income
	err := database.DB.
		Where("user_id = ? AND month = ? AND year = ? AND category = ?",
			userID, month, year, models.CategoryPreviousMonth).
		First(&income).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("carry-over lookup: %w", err)
	}
	return income.Amount, nil
}

// sumExpense totals a month's expenses across all categories.
func (s *SummaryService) sumExpense(userID uint, month, year int) (int64, error) {
	var total int64
	err := database.DB.Model(&models.Expense{}).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum expense: %w", err)
	}
	return total, nil
}
