package middleware

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"confusion/internal/auth"
	"confusion/internal/config"
	apperrors "confusion/internal/errors"
	"confusion/internal/model"
	"confusion/internal/repository"
)

type fixture struct {
	users   *repository.MemoryUserRepository
	jwt     *auth.JWTService
	alice   *model.User
	admin   *model.User
	tokens  *auth.MemoryTokenStore
	handler echo.HandlerFunc
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:  repository.NewMemoryUserRepository(),
		jwt:    auth.NewJWTService("test-secret"),
		tokens: auth.NewMemoryTokenStore(),
	}
	f.alice = f.addUser(t, "alice", "pw123", false)
	f.admin = f.addUser(t, "admin", "secret", true)
	f.handler = func(c echo.Context) error {
		id := IdentityFrom(c)
		return c.String(http.StatusOK, id.Username)
	}
	return f
}

func (f *fixture) addUser(t *testing.T, username, password string, admin bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{Username: username, PasswordHash: string(hash), Admin: admin}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) token(t *testing.T, u *model.User) string {
	t.Helper()
	token, _, err := f.jwt.GenerateToken(u.ID, u.Username)
	require.NoError(t, err)
	return token
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(false, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return e
}

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestAuthenticate_Token(t *testing.T) {
	f := newFixture(t)
	authn := NewAuthenticator(config.StrategyToken, auth.NewVerifier(f.users, f.jwt, f.tokens), nil)

	e := newEcho()
	e.GET("/me", f.handler, authn.Authenticate(), RequireUser())
	e.POST("/dishes", f.handler, authn.Authenticate(), RequireAdmin())

	tests := []struct {
		name      string
		method    string
		path      string
		header    string
		status    int
		body      string
		challenge bool
	}{
		{name: "missing token", method: http.MethodGet, path: "/me", status: http.StatusUnauthorized, challenge: true},
		{name: "garbage token", method: http.MethodGet, path: "/me", header: "Bearer nope", status: http.StatusUnauthorized, challenge: true},
		{name: "valid token", method: http.MethodGet, path: "/me", header: "Bearer " + f.token(t, f.alice), status: http.StatusOK, body: "alice"},
		{name: "user on admin route", method: http.MethodPost, path: "/dishes", header: "Bearer " + f.token(t, f.alice), status: http.StatusForbidden},
		{name: "admin on admin route", method: http.MethodPost, path: "/dishes", header: "Bearer " + f.token(t, f.admin), status: http.StatusOK, body: "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
			if tt.challenge {
				assert.Equal(t, "Basic", rec.Header().Get(echo.HeaderWWWAuthenticate))
			}
		})
	}
}

func TestAuthenticate_TokenRevoked(t *testing.T) {
	f := newFixture(t)
	authn := NewAuthenticator(config.StrategyToken, auth.NewVerifier(f.users, f.jwt, f.tokens), nil)
	e := newEcho()
	e.GET("/me", f.handler, authn.Authenticate())

	token, claims, err := f.jwt.GenerateToken(f.alice.ID, f.alice.Username)
	require.NoError(t, err)
	require.NoError(t, f.tokens.BlacklistToken(context.Background(), claims.ID, auth.TokenExpiry))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_Session(t *testing.T) {
	f := newFixture(t)
	manager := auth.NewSessionManager(sessions.NewCookieStore([]byte("session-secret")))
	authn := NewAuthenticator(config.StrategySession, auth.NewVerifier(f.users, f.jwt, f.tokens), manager)
	e := newEcho()
	e.GET("/me", f.handler, authn.Authenticate(), RequireUser())

	// no session, no basic header
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Basic", rec.Header().Get(echo.HeaderWWWAuthenticate))

	// wrong password
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, basicHeader("alice", "wrong"))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// basic establishes a session
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, basicHeader("alice", "pw123"))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookie, cookies[0].Name)

	// the session alone is enough afterwards
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestGates_WithoutIdentity(t *testing.T) {
	e := newEcho()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/user", ok, RequireUser())
	e.GET("/admin", ok, RequireAdmin())

	for _, path := range []string{"/user", "/admin"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestCORSWithOrigins(t *testing.T) {
	e := newEcho()
	e.POST("/dishes", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		CORSWithOrigins([]string{"https://localhost:3000"}))

	tests := []struct {
		origin  string
		allowed string
	}{
		{"https://localhost:3000", "https://localhost:3000"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/dishes", nil)
		req.Header.Set(echo.HeaderOrigin, tt.origin)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, tt.allowed, rec.Header().Get(echo.HeaderAccessControlAllowOrigin), tt.origin)
	}
}

func TestCORSAny(t *testing.T) {
	e := newEcho()
	e.GET("/dishes", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, CORSAny())

	req := httptest.NewRequest(http.MethodGet, "/dishes", nil)
	req.Header.Set(echo.HeaderOrigin, "https://anywhere.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestRateLimit(t *testing.T) {
	e := newEcho()
	e.POST("/users/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(1))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/login", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes[1:], http.StatusTooManyRequests)
}

func TestRateLimit_Disabled(t *testing.T) {
	e := newEcho()
	e.POST("/users/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(0))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/login", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
