package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xforum/backend/internal/models"
	"github.com/xforum/backend/internal/repositories"
	"github.com/xforum/backend/pkg/validators"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type captureMailer struct {
	sent []string
}

func (m *captureMailer) Send(ctx context.Context, to, subject, body string) error {
	m.sent = append(m.sent, to+": "+subject)
	return nil
}

func newAuthTestEnv(t *testing.T) (*echo.Echo, *AuthHandler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	e := echo.New()
	e.Validator = validators.NewValidator()
	h := NewAuthHandler(repositories.NewPostgresUserRepository(db), &captureMailer{}, "test-secret", "http://localhost:8080")
	return e, h, db
}

func TestResetPasswordUpdatesHash(t *testing.T) {
	e, h, db := newAuthTestEnv(t)

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "old", Confirmed: true}
	require.NoError(t, db.Create(user).Error)

	token, err := h.generateActionToken(user.ID, "reset", resetTokenTTL)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"password":"longenough123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("token")
	c.SetParamValues(token)

	require.NoError(t, h.ResetPassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(fresh.PasswordHash), []byte("longenough123")))
}

func TestResetPasswordRejectsShortPassword(t *testing.T) {
	e, h, db := newAuthTestEnv(t)

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "old", Confirmed: true}
	require.NoError(t, db.Create(user).Error)

	token, err := h.generateActionToken(user.ID, "reset", resetTokenTTL)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"password":"short"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("token")
	c.SetParamValues(token)

	err = h.ResetPassword(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, "old", fresh.PasswordHash, "a rejected request must not touch the stored hash")
}

func TestResetPasswordRejectsWrongActionToken(t *testing.T) {
	e, h, db := newAuthTestEnv(t)

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "old", Confirmed: true}
	require.NoError(t, db.Create(user).Error)

	// A confirmation token must not be usable for resetting the password
	token, err := h.generateActionToken(user.ID, "confirm", confirmTokenTTL)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"password":"longenough123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("token")
	c.SetParamValues(token)

	err = h.ResetPassword(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
