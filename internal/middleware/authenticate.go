// Package middleware holds the echo middleware that authenticates requests and
// applies the per-route gates, CORS policies and rate limits.
package middleware

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"confusion/internal/auth"
	"confusion/internal/config"
	apperrors "confusion/internal/errors"
)

const (
	identityKey    = "identity"
	verifyErrorKey = "identity_error"
)

// IdentityFrom returns the identity attached by Authenticate, or nil.
func IdentityFrom(c echo.Context) *auth.Identity {
	id, _ := c.Get(identityKey).(*auth.Identity)
	return id
}

// SetIdentity attaches id to the request context.
func SetIdentity(c echo.Context, id *auth.Identity) {
	c.Set(identityKey, id)
}

// Authenticator resolves the caller's identity using the configured strategy.
type Authenticator struct {
	strategy config.AuthStrategy
	verifier *auth.Verifier
	sessions *auth.SessionManager
}

// NewAuthenticator builds an Authenticator. sessions may be nil under the token strategy.
func NewAuthenticator(strategy config.AuthStrategy, verifier *auth.Verifier, sessions *auth.SessionManager) *Authenticator {
	return &Authenticator{strategy: strategy, verifier: verifier, sessions: sessions}
}

// Strategy reports the active strategy.
func (a *Authenticator) Strategy() config.AuthStrategy {
	return a.strategy
}

// Verifier exposes the verifier for handlers that check credentials themselves.
func (a *Authenticator) Verifier() *auth.Verifier {
	return a.verifier
}

// Sessions exposes the session manager; nil under the token strategy.
func (a *Authenticator) Sessions() *auth.SessionManager {
	return a.sessions
}

// Authenticate rejects requests that carry no valid credential and attaches the identity otherwise.
func (a *Authenticator) Authenticate() echo.MiddlewareFunc {
	if a.strategy == config.StrategySession {
		return a.session
	}
	return a.bearer()
}

func (a *Authenticator) bearer() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: identityKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			id, err := a.verifier.Verify(c.Request().Context(), auth.Bearer{Token: token})
			if err != nil {
				c.Set(verifyErrorKey, err)
				return nil, err
			}
			return id, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if verr, ok := c.Get(verifyErrorKey).(error); ok && verr != nil {
				return verr
			}
			return apperrors.ErrUnauthenticated
		},
	})
}

// session trusts an authenticated session and otherwise falls back to HTTP Basic,
// establishing a session when the pair checks out.
func (a *Authenticator) session(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if marker := a.sessions.Load(c.Request()); marker.Authenticated {
			id, err := a.verifier.Verify(ctx, marker)
			if err == nil {
				SetIdentity(c, id)
				return next(c)
			}
			if !errors.Is(err, apperrors.ErrUnauthenticated) {
				return err
			}
		}

		basic, ok := auth.ParseBasicHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return apperrors.ErrUnauthenticated
		}
		id, err := a.verifier.Verify(ctx, basic)
		if err != nil {
			return err
		}
		if err := a.sessions.Issue(c.Response(), c.Request(), id); err != nil {
			return err
		}
		SetIdentity(c, id)
		return next(c)
	}
}
