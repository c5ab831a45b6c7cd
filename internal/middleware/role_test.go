package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoleCheck(t *testing.T, callerRole interface{}, allowed ...string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/venues", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if callerRole != nil {
		c.Set("role", callerRole)
	}

	called := false
	h := RequireRole(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, called
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	rec, called := runRoleCheck(t, "owner", "owner")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	rec, called := runRoleCheck(t, "user", "owner")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "only users with role owner are allowed to access", body["message"])
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	rec, called := runRoleCheck(t, nil, "owner")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestRequireRoleAcceptsAnyListedRole(t *testing.T) {
	for _, role := range []string{"user", "owner"} {
		rec, called := runRoleCheck(t, role, "user", "owner")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
	}
}
