package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budget/config"
	"budget/database"
	"budget/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

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

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			ExpireTime: time.Hour,
		},
	}
}

// withUser simulates an authenticated request by injecting the user ID the
// way JWTAuth would.
func withUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func userColumns() []string {
	return []string{"id", "username", "password", "email"}
}

func newAuthRouter() *gin.Engine {
	h := NewAuthHandler(testConfig())
	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns()))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := doJSON(newAuthRouter(), http.MethodPost, "/register", gin.H{
		"username": "testuser",
		"password": "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "registered", resp.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "testuser", "hash", ""))

	w := doJSON(newAuthRouter(), http.MethodPost, "/register", gin.H{
		"username": "testuser",
		"password": "password123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "username already taken", resp.Message)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	w := doJSON(newAuthRouter(), http.MethodPost, "/register", gin.H{
		"username": "testuser",
		"password": "123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	middleware.InitJWT(testConfig())

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "testuser", string(hashed), ""))

	w := doJSON(newAuthRouter(), http.MethodPost, "/login", gin.H{
		"username": "testuser",
		"password": "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "testuser", string(hashed), ""))

	w := doJSON(newAuthRouter(), http.MethodPost, "/login", gin.H{
		"username": "testuser",
		"password": "wrongpassword",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "wrong username or password", resp.Message)
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	w := doJSON(newAuthRouter(), http.MethodPost, "/login", gin.H{
		"username": "nobody",
		"password": "password123",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
