package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/ibitrepair/workshop/internal/tokens"
)

func testManager() *tokens.Manager {
	return &tokens.Manager{
		Secret:     []byte("test-secret"),
		Issuer:     "workshop-api",
		Audience:   "workshop-clients",
		AccessTTL:  time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, header string, extra ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(extra) - 1; i >= 0; i-- {
		handler = extra[i](handler)
	}
	return rec, mw(handler)(c)
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	tm := testManager()
	signed, _, err := tm.SignAccess(42, "admin", "ADMIN")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err = Middleware(tm)(func(c echo.Context) error {
		called = true
		require.EqualValues(t, 42, UserID(c))
		require.Equal(t, "admin", c.Get(CtxUsername))
		require.Equal(t, "ADMIN", c.Get(CtxRole))
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	require.True(t, called)
}

func TestMiddlewareRejections(t *testing.T) {
	tm := testManager()

	for name, header := range map[string]string{
		"missing header": "",
		"no bearer":      "Token abc",
		"empty token":    "Bearer ",
		"garbage":        "Bearer not-a-jwt",
	} {
		_, err := doRequest(t, Middleware(tm), header)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he, name)
		require.Equal(t, http.StatusUnauthorized, he.Code, name)
	}

	// expired tokens get the same 401 as malformed ones
	expired := testManager()
	expired.AccessTTL = -time.Minute
	signed, _, err := expired.SignAccess(1, "u", "ADMIN")
	require.NoError(t, err)
	_, err = doRequest(t, Middleware(tm), "Bearer "+signed)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireRole(t *testing.T) {
	tm := testManager()

	run := func(role string, required ...string) error {
		signed, _, err := tm.SignAccess(1, "u", role)
		require.NoError(t, err)
		_, err = doRequest(t, Middleware(tm), "Bearer "+signed, RequireRole(required...))
		return err
	}

	require.NoError(t, run("ADMIN", "ADMIN", "MANAGER"))
	require.NoError(t, run("MANAGER", "ADMIN", "MANAGER"))

	err := run("TECHNICIAN", "ADMIN", "MANAGER")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusForbidden, he.Code)
}
