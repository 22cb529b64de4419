package auth

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "confusion/internal/errors"
	"confusion/internal/model"
	"confusion/internal/repository"
)

func newUser(t *testing.T, repo *repository.MemoryUserRepository, username, password string, admin bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{Username: username, PasswordHash: string(hash), Admin: admin}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestParseBasicHeader(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("alice:pw:123"))

	tests := []struct {
		name   string
		header string
		want   Basic
		ok     bool
	}{
		{"valid", "Basic " + encoded, Basic{Username: "alice", Password: "pw:123"}, true},
		{"lowercase scheme", "basic " + encoded, Basic{Username: "alice", Password: "pw:123"}, true},
		{"missing", "", Basic{}, false},
		{"bearer", "Bearer abc", Basic{}, false},
		{"bad base64", "Basic !!!", Basic{}, false},
		{"no colon", "Basic " + base64.StdEncoding.EncodeToString([]byte("alice")), Basic{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBasicHeader(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBearerHeader(t *testing.T) {
	got, ok := ParseBearerHeader("Bearer abc.def.ghi")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", got.Token)

	_, ok = ParseBearerHeader("Bearer ")
	assert.False(t, ok)
	_, ok = ParseBearerHeader("Basic abc")
	assert.False(t, ok)
}

func TestJWTService(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	token, claims, err := svc.GenerateToken(userID, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, 5*time.Second)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), parsed.UserID)
	assert.Equal(t, claims.ID, parsed.ID)

	_, err = NewJWTService("other-secret").ValidateToken(token)
	assert.Error(t, err)

	expired := NewJWTService("test-secret")
	expired.now = func() time.Time { return time.Now().Add(-2 * TokenExpiry) }
	old, _, err := expired.GenerateToken(userID, "alice")
	require.NoError(t, err)
	_, err = svc.ValidateToken(old)
	assert.Error(t, err)
}

func TestJWTService_RejectsTokenWithoutID(t *testing.T) {
	claims := &Claims{UserID: uuid.NewString(), RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewJWTService("test-secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestVerifier(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepository()
	alice := newUser(t, users, "alice", "pw123", false)
	jwtSvc := NewJWTService("test-secret")
	tokens := NewMemoryTokenStore()
	verifier := NewVerifier(users, jwtSvc, tokens)

	aliceToken, aliceClaims, err := jwtSvc.GenerateToken(alice.ID, alice.Username)
	require.NoError(t, err)
	ghostToken, _, err := jwtSvc.GenerateToken(uuid.New(), "ghost")
	require.NoError(t, err)
	revokedToken, revokedClaims, err := jwtSvc.GenerateToken(alice.ID, alice.Username)
	require.NoError(t, err)
	require.NoError(t, tokens.BlacklistToken(ctx, revokedClaims.ID, time.Hour))

	tests := []struct {
		name    string
		cred    Credential
		wantErr error
	}{
		{"basic ok", Basic{Username: "alice", Password: "pw123"}, nil},
		{"basic wrong password", Basic{Username: "alice", Password: "nope"}, apperrors.ErrInvalidCredentials},
		{"basic unknown user", Basic{Username: "bob", Password: "pw123"}, apperrors.ErrInvalidCredentials},
		{"basic empty", Basic{}, apperrors.ErrUnauthenticated},
		{"session ok", Session{UserID: alice.ID, Authenticated: true}, nil},
		{"session not authenticated", Session{UserID: alice.ID}, apperrors.ErrUnauthenticated},
		{"session unknown user", Session{UserID: uuid.New(), Authenticated: true}, apperrors.ErrUnauthenticated},
		{"bearer ok", Bearer{Token: aliceToken}, nil},
		{"bearer garbage", Bearer{Token: "not-a-token"}, apperrors.ErrInvalidToken},
		{"bearer unknown user", Bearer{Token: ghostToken}, apperrors.ErrInvalidToken},
		{"bearer revoked", Bearer{Token: revokedToken}, apperrors.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := verifier.Verify(ctx, tt.cred)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, alice.ID, id.ID)
			assert.Equal(t, "alice", id.Username)
		})
	}

	id, err := verifier.Verify(ctx, Bearer{Token: aliceToken})
	require.NoError(t, err)
	assert.Equal(t, aliceClaims.ID, id.TokenID)
	assert.False(t, id.ExpiresAt.IsZero())
}

func TestVerifier_AdminFlagComesFromStore(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepository()
	alice := newUser(t, users, "alice", "pw123", false)
	jwtSvc := NewJWTService("test-secret")
	verifier := NewVerifier(users, jwtSvc, NewMemoryTokenStore())

	token, _, err := jwtSvc.GenerateToken(alice.ID, alice.Username)
	require.NoError(t, err)

	id, err := verifier.Verify(ctx, Bearer{Token: token})
	require.NoError(t, err)
	assert.False(t, id.Admin)

	alice.Admin = true
	require.NoError(t, users.Update(ctx, alice))

	id, err = verifier.Verify(ctx, Bearer{Token: token})
	require.NoError(t, err)
	assert.True(t, id.Admin)
}

func TestGates(t *testing.T) {
	user := &Identity{ID: uuid.New()}
	admin := &Identity{ID: uuid.New(), Admin: true}

	assert.ErrorIs(t, RequireAuthenticated(nil), apperrors.ErrUnauthenticated)
	assert.NoError(t, RequireAuthenticated(user))

	assert.ErrorIs(t, RequireAdmin(nil), apperrors.ErrUnauthenticated)
	assert.ErrorIs(t, RequireAdmin(user), apperrors.ErrNotAdmin)
	assert.NoError(t, RequireAdmin(admin))
}

func TestMemoryTokenStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTokenStore()

	require.NoError(t, store.BlacklistToken(ctx, "a", time.Minute))
	require.NoError(t, store.BlacklistToken(ctx, "expired", 0))

	revoked, err := store.IsTokenBlacklisted(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = store.IsTokenBlacklisted(ctx, "expired")
	assert.False(t, revoked)

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	revoked, _ = store.IsTokenBlacklisted(ctx, "a")
	assert.False(t, revoked)
}

func TestTokenStore_NilCacheNeverRevokes(t *testing.T) {
	store := NewTokenStore(nil)

	require.NoError(t, store.BlacklistToken(context.Background(), "a", time.Minute))
	revoked, err := store.IsTokenBlacklisted(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionManager(t *testing.T) {
	manager := NewSessionManager(sessions.NewCookieStore([]byte("session-secret")))
	id := &Identity{ID: uuid.New(), Username: "alice"}

	// no cookie yet
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, Session{}, manager.Load(req))
	destroyed, err := manager.Destroy(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.False(t, destroyed)

	rec := httptest.NewRecorder()
	require.NoError(t, manager.Issue(rec, req, id))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	assert.Equal(t, Session{UserID: id.ID, Authenticated: true}, manager.Load(next))

	rec = httptest.NewRecorder()
	destroyed, err = manager.Destroy(rec, next)
	require.NoError(t, err)
	assert.True(t, destroyed)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.True(t, cleared[0].MaxAge < 0)
}
