package service

import (
	"errors"
	"fmt"

	"budget/database"
	"budget/models"

	"gorm.io/gorm"
)

// ScheduledPayment is one slot of a debt's amortization schedule.
type ScheduledPayment struct {
	Month  int   `json:"month"`
	Year   int   `json:"year"`
	Amount int64 `json:"amount"`
}

// DebtService keeps the set of debt-payment expense rows consistent with
// each debt's amortization schedule. Projected rows are linked to their debt
// through Expense.DebtID and are owned exclusively by this service.
type DebtService struct{}

// NewDebtService creates the projector service.
func NewDebtService() *DebtService {
	return &DebtService{}
}

// MonthlyPayment returns ceil(totalAmount / months). Rounding up retires the
// debt in exactly `months` installments; the final month's true remainder is
// absorbed by the schedule.
func MonthlyPayment(totalAmount int64, months int) (int64, error) {
	if months <= 0 {
		return 0, fmt.Errorf("%w: months must be >= 1", ErrInvalidInput)
	}
	if totalAmount <= 0 {
		return 0, fmt.Errorf("%w: total amount must be > 0", ErrInvalidInput)
	}
	return (totalAmount + int64(months) - 1) / int64(months), nil
}

// NextMonth advances (month, year) by one calendar month.
func NextMonth(month, year int) (int, int) {
	month++
	if month > 12 {
		month = 1
		year++
	}
	return month, year
}

// PreviousMonth steps (month, year) back by one calendar month.
func PreviousMonth(month, year int) (int, int) {
	month--
	if month < 1 {
		month = 12
		year--
	}
	return month, year
}

// ProjectSchedule materializes the amortization schedule: exactly d.Months
// consecutive slots starting at (d.StartMonth, d.StartYear), each carrying
// d.MonthlyPayment. Pure function, no I/O.
func ProjectSchedule(d *models.Debt) []ScheduledPayment {
	schedule := make([]ScheduledPayment, 0, d.Months)
	month, year := d.StartMonth, d.StartYear
	for i := 0; i < d.Months; i++ {
		schedule = append(schedule, ScheduledPayment{
			Month:  month,
			Year:   year,
			Amount: d.MonthlyPayment,
		})
		month, year = NextMonth(month, year)
	}
	return schedule
}

// ValidateDebt checks the user-settable debt fields.
func ValidateDebt(d *models.Debt) error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if d.TotalAmount <= 0 {
		return fmt.Errorf("%w: total amount must be > 0", ErrInvalidInput)
	}
	if d.Months < 1 {
		return fmt.Errorf("%w: months must be >= 1", ErrInvalidInput)
	}
	if d.StartMonth < 1 || d.StartMonth > 12 {
		return fmt.Errorf("%w: start month must be within 1-12", ErrInvalidInput)
	}
	return nil
}

// Reconcile upserts one creditPayment expense row per schedule slot. Each
// slot is independent: a failure on one month does not roll back the others,
// it is collected into a PartialReconciliationError instead. On a matched
// row the scheduled amount is assigned, not added, so re-running an
// unchanged schedule is a no-op.
func (s *DebtService) Reconcile(debt *models.Debt, schedule []ScheduledPayment) error {
	var failed []ScheduledPayment

	for _, slot := range schedule {
		var expense models.Expense
		err := database.DB.
			Where("debt_id = ? AND month = ? AND year = ?", debt.ID, slot.Month, slot.Year).
			First(&expense).Error

		switch {
		case err == nil:
			updates := map[string]interface{}{
				"amount": slot.Amount,
				"note":   debt.PaymentNote(),
			}
			if err := database.DB.Model(&expense).Updates(updates).Error; err != nil {
				failed = append(failed, slot)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			debtID := debt.ID
			expense = models.Expense{
				UserID:   debt.UserID,
				Month:    slot.Month,
				Year:     slot.Year,
				Category: models.CategoryCreditPayment,
				Scope:    models.ScopeDaily,
				Amount:   slot.Amount,
				Note:     debt.PaymentNote(),
				DebtID:   &debtID,
			}
			if err := database.DB.Create(&expense).Error; err != nil {
				failed = append(failed, slot)
			}
		default:
			failed = append(failed, slot)
		}
	}

	if len(failed) > 0 {
		return &PartialReconciliationError{Failed: failed}
	}
	return nil
}

// CreateDebt computes the monthly payment, persists the debt and projects
// its schedule into expense rows.
func (s *DebtService) CreateDebt(debt *models.Debt) error {
	if err := ValidateDebt(debt); err != nil {
		return err
	}

	payment, err := MonthlyPayment(debt.TotalAmount, debt.Months)
	if err != nil {
		return err
	}
	debt.MonthlyPayment = payment

	if err := database.DB.Create(debt).Error; err != nil {
		return fmt.Errorf("create debt: %w", err)
	}

	return s.Reconcile(debt, ProjectSchedule(debt))
}

// UpdateDebt persists newDebt and re-projects its schedule when any
// schedule-affecting field changed. Re-projection deletes every row owned by
// the debt before creating the new set; the delete phase completes first so
// no stale slot survives.
func (s *DebtService) UpdateDebt(oldDebt, newDebt *models.Debt) error {
	if err := ValidateDebt(newDebt); err != nil {
		return err
	}

	payment, err := MonthlyPayment(newDebt.TotalAmount, newDebt.Months)
	if err != nil {
		return err
	}
	newDebt.MonthlyPayment = payment

	if err := database.DB.Save(newDebt).Error; err != nil {
		return fmt.Errorf("update debt: %w", err)
	}

	if oldDebt.MonthlyPayment == newDebt.MonthlyPayment &&
		oldDebt.StartMonth == newDebt.StartMonth &&
		oldDebt.StartYear == newDebt.StartYear &&
		oldDebt.Months == newDebt.Months {
		// schedule unchanged, skip the rewrite
		return nil
	}

	if err := s.deleteProjectedExpenses(newDebt.ID); err != nil {
		return err
	}

	return s.Reconcile(newDebt, ProjectSchedule(newDebt))
}

// DeleteDebt removes the debt and every expense row it projected.
func (s *DebtService) DeleteDebt(debt *models.Debt) error {
	if err := s.deleteProjectedExpenses(debt.ID); err != nil {
		return err
	}
	if err := database.DB.Delete(debt).Error; err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return nil
}

func (s *DebtService) deleteProjectedExpenses(debtID uint) error {
	if err := database.DB.
		Where("debt_id = ?", debtID).
		Delete(&models.Expense{}).Error; err != nil {
		return fmt.Errorf("delete projected expenses: %w", err)
	}
	return nil
}
