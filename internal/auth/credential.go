package auth

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Credential is something a request presents to prove who it is.
// The set is closed: Basic, Session and Bearer.
type Credential interface {
	credential()
}

// Basic is a username/password pair, from an Authorization header or a login body.
type Basic struct {
	Username string
	Password string
}

// Session is the marker stored in an established server-side session.
type Session struct {
	UserID        uuid.UUID
	Authenticated bool
}

// Bearer is a signed token taken from the Authorization header.
type Bearer struct {
	Token string
}

func (Basic) credential()   {}
func (Session) credential() {}
func (Bearer) credential()  {}

// Identity is the authenticated user a request runs as.
type Identity struct {
	ID       uuid.UUID
	Username string
	Admin    bool

	// TokenID and ExpiresAt are set when the identity came from a bearer token.
	TokenID   string
	ExpiresAt time.Time
}

// ParseBasicHeader decodes an "Authorization: Basic base64(user:pass)" header value.
func ParseBasicHeader(header string) (Basic, bool) {
	const prefix = "Basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return Basic{}, false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return Basic{}, false
	}
	username, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		return Basic{}, false
	}
	return Basic{Username: username, Password: password}, true
}

// ParseBearerHeader extracts the token of an "Authorization: Bearer <token>" header value.
func ParseBearerHeader(header string) (Bearer, bool) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return Bearer{}, false
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return Bearer{}, false
	}
	return Bearer{Token: token}, true
}
