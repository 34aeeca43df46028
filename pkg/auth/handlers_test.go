package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shelfmark/shelfmark/pkg/binder"
	"github.com/shelfmark/shelfmark/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerTestContext(t *testing.T, method, path, payload string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	var req *http.Request
	if payload == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func responseCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	return nil
}

func TestHandlerSetup_CreatesStaffUserAndSetsCookie(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{authService: NewService(db, "test-secret")}

	c, rr := newHandlerTestContext(t, http.MethodPost, "/auth/setup", `{"username":"admin","password":"password123"}`)

	err := h.setup(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"is_staff":true`)
	assert.NotContains(t, rr.Body.String(), "password")

	cookie := responseCookie(rr)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestHandlerSetup_SecondCallForbidden(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{authService: NewService(db, "test-secret")}

	c, _ := newHandlerTestContext(t, http.MethodPost, "/auth/setup", `{"username":"admin","password":"password123"}`)
	require.NoError(t, h.setup(c))

	c, _ = newHandlerTestContext(t, http.MethodPost, "/auth/setup", `{"username":"intruder","password":"password123"}`)
	err := h.setup(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusForbidden, codeErr.HTTPCode)
}

func TestHandlerLogin(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, "test-secret")
	h := &handler{authService: svc}

	_, err := svc.CreateFirstUser(context.Background(), "admin", "password123")
	require.NoError(t, err)

	c, rr := newHandlerTestContext(t, http.MethodPost, "/auth/login", `{"username":"admin","password":"password123"}`)
	require.NoError(t, h.login(c))
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, responseCookie(rr))

	c, _ = newHandlerTestContext(t, http.MethodPost, "/auth/login", `{"username":"admin","password":"wrongpassword"}`)
	err = h.login(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusUnauthorized, codeErr.HTTPCode)
}

func TestHandlerStatus(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, "test-secret")
	h := &handler{authService: svc}

	c, rr := newHandlerTestContext(t, http.MethodGet, "/auth/status", "")
	require.NoError(t, h.status(c))
	assert.Contains(t, rr.Body.String(), `"needs_setup":true`)

	_, err := svc.CreateFirstUser(context.Background(), "admin", "password123")
	require.NoError(t, err)

	c, rr = newHandlerTestContext(t, http.MethodGet, "/auth/status", "")
	require.NoError(t, h.status(c))
	assert.Contains(t, rr.Body.String(), `"needs_setup":false`)
}

func TestHandlerLogout_ClearsCookie(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{authService: NewService(db, "test-secret")}

	c, rr := newHandlerTestContext(t, http.MethodPost, "/auth/logout", "")
	require.NoError(t, h.logout(c))

	cookie := responseCookie(rr)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
