package api

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebtRouter(userID uint) *gin.Engine {
	h := NewDebtHandler()
	r := gin.New()
	g := r.Group("/debts", withUser(userID))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func debtColumns() []string {
	return []string{"id", "user_id", "name", "total_amount", "months", "start_month", "start_year", "monthly_payment", "note"}
}

func TestDebtHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `debts`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	for i := 0; i < 2; i++ {
		mock.ExpectQuery("SELECT .* FROM `expenses`").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `expenses`").
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
		mock.ExpectCommit()
	}

	w := doJSON(newDebtRouter(1), http.MethodPost, "/debts", gin.H{
		"name":         "Laptop",
		"total_amount": 5000000,
		"months":       2,
		"start_month":  1,
		"start_year":   2024,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	// the monthly payment is derived server-side
	assert.Equal(t, float64(2500000), data["monthly_payment"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebtHandler_Create_InvalidPayload(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	// months below 1 never reaches the service
	w := doJSON(newDebtRouter(1), http.MethodPost, "/debts", gin.H{
		"name":         "Laptop",
		"total_amount": 5000000,
		"months":       0,
		"start_month":  1,
		"start_year":   2024,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDebtHandler_Get_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `debts`").
		WillReturnRows(sqlmock.NewRows(debtColumns()))

	w := doJSON(newDebtRouter(1), http.MethodGet, "/debts/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "debt not found", resp.Message)
}

func TestDebtHandler_Update_Reprojects(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `debts`").
		WillReturnRows(sqlmock.NewRows(debtColumns()).
			AddRow(5, 1, "Laptop", 12000000, 3, 1, 2024, 4000000, ""))

	// save, delete old projection, rebuild four slots
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `debts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `expenses`").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	for i := 0; i < 4; i++ {
		mock.ExpectQuery("SELECT .* FROM `expenses`").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `expenses`").
			WillReturnResult(sqlmock.NewResult(int64(i+10), 1))
		mock.ExpectCommit()
	}

	w := doJSON(newDebtRouter(1), http.MethodPut, "/debts/5", gin.H{
		"months": 4,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3000000), data["monthly_payment"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebtHandler_Delete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `debts`").
		WillReturnRows(sqlmock.NewRows(debtColumns()).
			AddRow(5, 1, "Laptop", 12000000, 3, 1, 2024, 4000000, ""))

	// projected expenses go first, then the debt
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `expenses`").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `debts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(newDebtRouter(1), http.MethodDelete, "/debts/5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
