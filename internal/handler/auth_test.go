package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakriti/events-backend/internal/config"
	"github.com/kalakriti/events-backend/internal/repository"
	"github.com/kalakriti/events-backend/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "handler-test-secret",
		AccessTTLMin: 30,
		BcryptCost:   4,
	}
}

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAuthHandler(testConfig(), repository.NewUserRepo(db)), mock
}

func doJSON(h echo.HandlerFunc, method, path, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func storedUserRows(passwordHash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"user_id", "email", "full_name", "password", "phone_number",
		"age", "address", "city", "state", "previous_experience",
		"role", "status", "created_at", "updated_at",
	}).AddRow("USER1234567", "asha@example.com", "Asha Rao", passwordHash, "9999999999",
		nil, nil, nil, nil, nil, "user", true, time.Now().UTC(), nil)
}

func TestSignupIssuesToken(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectExec(`INSERT INTO users (user_id, email, full_name, password, phone_number, age, address, city, state, previous_experience, role, status) VALUES (?,?,?,?,?,?,?,?,?,?,'user',1)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT user_id, email, full_name, password, phone_number, age, address, city, state, previous_experience, role, status, created_at, updated_at FROM users WHERE user_id=? AND status=1 LIMIT 1`).
		WillReturnRows(storedUserRows("$2a$10$hash"))

	rec, err := doJSON(h.Signup, http.MethodPost, "/v1/backend/signup",
		`{"email":"Asha@Example.com","password":"secret-enough","full_name":"Asha Rao","phone_number":"9999999999"}`)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Message     string `json:"message"`
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		User        struct {
			UserID string `json:"user_id"`
			Role   string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "User created successfully", body.Message)
	assert.Equal(t, "bearer", body.TokenType)
	assert.Equal(t, "USER1234567", body.User.UserID)

	claims, err := utils.VerifyAccessToken("handler-test-secret", body.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "USER1234567", claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestSignupMissingFields(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec, err := doJSON(h.Signup, http.MethodPost, "/v1/backend/signup",
		`{"email":"asha@example.com"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupDuplicateEmail(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectExec(`INSERT INTO users (user_id, email, full_name, password, phone_number, age, address, city, state, previous_experience, role, status) VALUES (?,?,?,?,?,?,?,?,?,?,'user',1)`).
		WillReturnError(errDuplicateEmail{})

	rec, err := doJSON(h.Signup, http.MethodPost, "/v1/backend/signup",
		`{"email":"asha@example.com","password":"secret-enough","full_name":"Asha Rao"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already registered")
}

type errDuplicateEmail struct{}

func (errDuplicateEmail) Error() string {
	return "Error 1062 (23000): Duplicate entry 'asha@example.com' for key 'uq_users_email'"
}

func TestSigninWrongPassword(t *testing.T) {
	h, mock := newAuthHandler(t)
	hash, err := utils.HashPassword("the-real-password", 4)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT user_id, email, full_name, password, phone_number, age, address, city, state, previous_experience, role, status, created_at, updated_at FROM users WHERE email=? AND status=1 LIMIT 1`).
		WithArgs("asha@example.com").
		WillReturnRows(storedUserRows(hash))

	rec, err := doJSON(h.Signin, http.MethodPost, "/v1/backend/signin",
		`{"email":"asha@example.com","password":"a-guess"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")
}

func TestSigninSuccess(t *testing.T) {
	h, mock := newAuthHandler(t)
	hash, err := utils.HashPassword("the-real-password", 4)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT user_id, email, full_name, password, phone_number, age, address, city, state, previous_experience, role, status, created_at, updated_at FROM users WHERE email=? AND status=1 LIMIT 1`).
		WithArgs("asha@example.com").
		WillReturnRows(storedUserRows(hash))

	rec, err := doJSON(h.Signin, http.MethodPost, "/v1/backend/signin",
		`{"email":"asha@example.com","password":"the-real-password"}`)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AccessToken   string    `json:"access_token"`
		TokenValidity time.Time `json:"token_validity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), body.TokenValidity, 10*time.Second)

	claims, err := utils.VerifyAccessToken("handler-test-secret", body.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "USER1234567", claims.UserID)
}

func TestSigninUnknownEmail(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectQuery(`SELECT user_id, email, full_name, password, phone_number, age, address, city, state, previous_experience, role, status, created_at, updated_at FROM users WHERE email=? AND status=1 LIMIT 1`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	rec, err := doJSON(h.Signin, http.MethodPost, "/v1/backend/signin",
		`{"email":"nobody@example.com","password":"whatever"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
