package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/fintrackhq/fintrack-api/internal/services"
	"github.com/fintrackhq/fintrack-api/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Setup("test")
	os.Exit(m.Run())
}

func TestRespondError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrUnauthorized, http.StatusUnauthorized},
		{services.ErrInvalidState, http.StatusConflict},
		{services.ErrDuplicate, http.StatusConflict},
		{services.ErrValidation, http.StatusUnprocessableEntity},
		{services.ErrExceedsRemaining, http.StatusUnprocessableEntity},
		{services.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}

func TestParseID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "17"}}

	id, ok := parseID(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(17), id)
}

func TestParseID_Invalid(t *testing.T) {
	for _, value := range []string{"abc", "0", "-3", ""} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: value}}

		_, ok := parseID(c, "id")

		assert.False(t, ok, "value %q", value)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestDateRangeFromQuery(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?from=2026-01-01&to=2026-06-30", nil)

	rng, ok := dateRangeFromQuery(c)

	assert.True(t, ok)
	assert.Equal(t, "2026-01-01", *rng.From)
	assert.Equal(t, "2026-06-30", *rng.To)
}

func TestDateRangeFromQuery_Empty(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	rng, ok := dateRangeFromQuery(c)

	assert.True(t, ok)
	assert.Nil(t, rng.From)
	assert.Nil(t, rng.To)
}

func TestDateRangeFromQuery_BadDate(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?from=01-01-2026", nil)

	_, ok := dateRangeFromQuery(c)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
