package auth

import (
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// SessionCookie is the name of the cookie carrying the session id.
const SessionCookie = "session-id"

const (
	sessionUserKey          = "user_id"
	sessionAuthenticatedKey = "authenticated"
)

// SessionManager issues and destroys server-side sessions.
type SessionManager struct {
	store sessions.Store
}

// NewSessionManager wraps any gorilla session store.
func NewSessionManager(store sessions.Store) *SessionManager {
	return &SessionManager{store: store}
}

// NewFilesystemSessionManager keeps session records as files under dir.
func NewFilesystemSessionManager(dir, secret string) (*SessionManager, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	store := sessions.NewFilesystemStore(dir, []byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(TokenExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return NewSessionManager(store), nil
}

// Load returns the marker of the request's session. An unknown or undecodable
// session id yields an unauthenticated marker.
func (m *SessionManager) Load(r *http.Request) Session {
	sess, err := m.store.Get(r, SessionCookie)
	if err != nil || sess.IsNew {
		return Session{}
	}
	authenticated, _ := sess.Values[sessionAuthenticatedKey].(bool)
	raw, _ := sess.Values[sessionUserKey].(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return Session{}
	}
	return Session{UserID: userID, Authenticated: authenticated}
}

// Issue marks the request's session authenticated for id and sets the cookie.
func (m *SessionManager) Issue(w http.ResponseWriter, r *http.Request, id *Identity) error {
	// Get returns a fresh session alongside a decode error; issuing replaces it anyway.
	sess, _ := m.store.Get(r, SessionCookie)
	sess.Values[sessionUserKey] = id.ID.String()
	sess.Values[sessionAuthenticatedKey] = true
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Destroy invalidates the request's session and tells the client to drop the cookie.
// It reports false when the request carried no session.
func (m *SessionManager) Destroy(w http.ResponseWriter, r *http.Request) (bool, error) {
	sess, err := m.store.Get(r, SessionCookie)
	if err != nil || sess.IsNew {
		return false, nil
	}
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return true, fmt.Errorf("destroy session: %w", err)
	}
	return true, nil
}
