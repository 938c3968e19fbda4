package service

import (
	"testing"

	"budget/database"
	"budget/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func expenseColumns() []string {
	return []string{"id", "user_id", "month", "year", "category", "scope", "amount", "note", "debt_id"}
}

func TestMonthlyPayment(t *testing.T) {
	got, err := MonthlyPayment(12000000, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4000000), got)

	got, err = MonthlyPayment(12000000, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(3000000), got)

	// rounds up so the debt is retired in exactly N installments
	got, err = MonthlyPayment(10, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)

	_, err = MonthlyPayment(1000, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = MonthlyPayment(1000, -3)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = MonthlyPayment(0, 3)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMonthlyPayment_SumBounds(t *testing.T) {
	cases := []struct {
		total  int64
		months int
	}{
		{12000000, 3},
		{10, 3},
		{1, 12},
		{999999, 7},
		{5000000, 36},
	}
	for _, tc := range cases {
		payment, err := MonthlyPayment(tc.total, tc.months)
		require.NoError(t, err)
		sum := payment * int64(tc.months)
		assert.GreaterOrEqual(t, sum, tc.total)
		assert.LessOrEqual(t, sum, tc.total+int64(tc.months)-1)
	}
}

func TestProjectSchedule_MonthWrap(t *testing.T) {
	debt := &models.Debt{
		StartMonth:     11,
		StartYear:      2024,
		Months:         4,
		MonthlyPayment: 250000,
	}

	schedule := ProjectSchedule(debt)
	require.Len(t, schedule, 4)
	assert.Equal(t, ScheduledPayment{Month: 11, Year: 2024, Amount: 250000}, schedule[0])
	assert.Equal(t, ScheduledPayment{Month: 12, Year: 2024, Amount: 250000}, schedule[1])
	assert.Equal(t, ScheduledPayment{Month: 1, Year: 2025, Amount: 250000}, schedule[2])
	assert.Equal(t, ScheduledPayment{Month: 2, Year: 2025, Amount: 250000}, schedule[3])
}

func TestProjectSchedule_LongSpan(t *testing.T) {
	debt := &models.Debt{
		StartMonth:     6,
		StartYear:      2023,
		Months:         36,
		MonthlyPayment: 100000,
	}

	schedule := ProjectSchedule(debt)
	require.Len(t, schedule, 36)
	assert.Equal(t, 6, schedule[0].Month)
	assert.Equal(t, 2023, schedule[0].Year)
	// 36 months from 6/2023 ends at 5/2026
	assert.Equal(t, 5, schedule[35].Month)
	assert.Equal(t, 2026, schedule[35].Year)
}

func TestPreviousMonth(t *testing.T) {
	m, y := PreviousMonth(2, 2024)
	assert.Equal(t, 1, m)
	assert.Equal(t, 2024, y)

	m, y = PreviousMonth(1, 2024)
	assert.Equal(t, 12, m)
	assert.Equal(t, 2023, y)
}

func TestDebtService_CreateDebt(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// persist the debt
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `debts`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// one lookup + insert per scheduled month
	for i := 0; i < 2; i++ {
		mock.ExpectQuery("SELECT .* FROM `expenses`").
			WillReturnRows(sqlmock.NewRows(expenseColumns()))
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `expenses`").
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
		mock.ExpectCommit()
	}

	debt := models.Debt{
		UserID:      1,
		Name:        "Laptop",
		TotalAmount: 5000000,
		Months:      2,
		StartMonth:  1,
		StartYear:   2024,
	}

	svc := NewDebtService()
	require.NoError(t, svc.CreateDebt(&debt))
	assert.Equal(t, int64(2500000), debt.MonthlyPayment)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebtService_CreateDebt_Invalid(t *testing.T) {
	svc := NewDebtService()

	err := svc.CreateDebt(&models.Debt{Name: "", TotalAmount: 1000, Months: 2, StartMonth: 1, StartYear: 2024})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.CreateDebt(&models.Debt{Name: "x", TotalAmount: 0, Months: 2, StartMonth: 1, StartYear: 2024})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.CreateDebt(&models.Debt{Name: "x", TotalAmount: 1000, Months: 0, StartMonth: 1, StartYear: 2024})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.CreateDebt(&models.Debt{Name: "x", TotalAmount: 1000, Months: 2, StartMonth: 13, StartYear: 2024})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDebtService_Reconcile_Idempotent(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	debt := models.Debt{
		ID:             7,
		UserID:         1,
		Name:           "Laptop",
		MonthlyPayment: 2500000,
		Months:         1,
		StartMonth:     1,
		StartYear:      2024,
	}
	schedule := ProjectSchedule(&debt)

	// the slot already holds the row from a previous run; the amount is
	// assigned, not added
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows(expenseColumns()).
			AddRow(42, 1, 1, 2024, models.CategoryCreditPayment, models.ScopeDaily, 2500000, "Debt repayment: Laptop", 7))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `expenses`").
		WithArgs(int64(2500000), "Debt repayment: Laptop", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := NewDebtService()
	require.NoError(t, svc.Reconcile(&debt, schedule))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebtService_Reconcile_PartialFailure(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	debt := models.Debt{
		ID:             3,
		UserID:         1,
		Name:           "Fridge",
		MonthlyPayment: 1000000,
		Months:         2,
		StartMonth:     11,
		StartYear:      2024,
	}
	schedule := ProjectSchedule(&debt)

	// first slot succeeds
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows(expenseColumns()))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// second slot fails on insert; the first is not rolled back
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows(expenseColumns()))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	svc := NewDebtService()
	err := svc.Reconcile(&debt, schedule)
	require.Error(t, err)

	var partial *PartialReconciliationError
	require.ErrorAs(t, err, &partial)
	require.Len(t, partial.Failed, 1)
	assert.Equal(t, 12, partial.Failed[0].Month)
	assert.Equal(t, 2024, partial.Failed[0].Year)
	assert.Contains(t, partial.Error(), "12/2024")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebtService_UpdateDebt_Reprojection(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	oldDebt := models.Debt{
		ID: 5, UserID: 1, Name: "Laptop",
		TotalAmount: 12000000, Months: 3,
		StartMonth: 1, StartYear: 2024,
		MonthlyPayment: 4000000,
	}
	newDebt := oldDebt
	newDebt.Months = 4

	// save the debt
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `debts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// delete phase completes before any create
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `expenses`").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	// four fresh slots at the new payment
	for i := 0; i < 4; i++ {
		mock.ExpectQuery("SELECT .* FROM `expenses`").
			WillReturnRows(sqlmock.NewRows(expenseColumns()))
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `expenses`").
			WillReturnResult(sqlmock.NewResult(int64(i+10), 1))
		mock.ExpectCommit()
	}

	svc := NewDebtService()
	require.NoError(t, svc.UpdateDebt(&oldDebt, &newDebt))
	assert.Equal(t, int64(3000000), newDebt.MonthlyPayment)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebtService_UpdateDebt_SkipWhenScheduleUnchanged(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	oldDebt := models.Debt{
		ID: 5, UserID: 1, Name: "Laptop",
		TotalAmount: 12000000, Months: 3,
		StartMonth: 1, StartYear: 2024,
		MonthlyPayment: 4000000,
	}
	newDebt := oldDebt
	newDebt.Note = "changed note only"

	// only the debt row is written, no re-projection
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `debts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := NewDebtService()
	require.NoError(t, svc.UpdateDebt(&oldDebt, &newDebt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebtService_DeleteDebt(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// projected expenses removed first, then the debt
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `expenses`").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `debts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	debt := models.Debt{ID: 5, UserID: 1, Name: "Laptop"}

	svc := NewDebtService()
	require.NoError(t, svc.DeleteDebt(&debt))
	require.NoError(t, mock.ExpectationsWereMet())
}
