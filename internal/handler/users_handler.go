package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"confusion/internal/auth"
	"confusion/internal/config"
	apperrors "confusion/internal/errors"
	"confusion/internal/middleware"
	"confusion/internal/model"
	"confusion/internal/service"
)

// UsersHandler handles account endpoints.
type UsersHandler struct {
	authService service.AuthService
	authn       *middleware.Authenticator
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(authService service.AuthService, authn *middleware.Authenticator) *UsersHandler {
	return &UsersHandler{authService: authService, authn: authn}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// LoginRequest carries the credentials of a login. Both fields may be left out
// in favor of an HTTP Basic header.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by a token login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Status  string `json:"status"`
}

// ChangePasswordRequest represents a password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// TokenCheckResponse reports whether the presented bearer token is valid.
type TokenCheckResponse struct {
	Status  string      `json:"status"`
	Success bool        `json:"success"`
	User    *TokenUser  `json:"user,omitempty"`
	Err     interface{} `json:"err,omitempty"`
}

// TokenUser is the account a valid token belongs to.
type TokenUser struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UsersHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// Signup godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/signup [post]
func (h *UsersHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusResponse{Success: true, Status: "Registration Successful!"})
}

// Login godoc
// @Summary Log in
// @Description Under the token strategy the response carries a bearer token. Under the session strategy a session cookie is set.
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest false "Credentials; an HTTP Basic header is accepted instead"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/login [post]
func (h *UsersHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	if h.authn.Strategy() == config.StrategySession {
		if marker := h.authn.Sessions().Load(c.Request()); marker.Authenticated {
			if _, err := h.authn.Verifier().Verify(ctx, marker); err == nil {
				return c.String(http.StatusOK, "You are already authenticated!")
			}
		}
	}

	cred, err := loginCredential(c)
	if err != nil {
		return err
	}
	id, err := h.authService.Login(ctx, cred.Username, cred.Password)
	if err != nil {
		return err
	}

	if h.authn.Strategy() == config.StrategySession {
		if err := h.authn.Sessions().Issue(c.Response(), c.Request(), id); err != nil {
			return err
		}
		return c.String(http.StatusOK, "You are authenticated!")
	}

	token, err := h.authService.IssueToken(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Token:   token,
		Status:  "You are successfully logged in!",
	})
}

// loginCredential reads the username/password from the body, falling back to a Basic header.
func loginCredential(c echo.Context) (auth.Basic, error) {
	var req LoginRequest
	if err := bindBody(c, &req); err != nil {
		return auth.Basic{}, err
	}
	if req.Username != "" {
		return auth.Basic{Username: req.Username, Password: req.Password}, nil
	}
	if basic, ok := auth.ParseBasicHeader(c.Request().Header.Get(echo.HeaderAuthorization)); ok {
		return basic, nil
	}
	return auth.Basic{}, apperrors.ErrUnauthenticated
}

// Logout godoc
// @Summary Log out
// @Description Destroys the session, or revokes the presented bearer token until it expires.
// @Tags users
// @Produce json
// @Success 200 {object} StatusResponse
// @Success 302 "Session destroyed, redirected to /"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/logout [get]
func (h *UsersHandler) Logout(c echo.Context) error {
	if h.authn.Strategy() == config.StrategySession {
		destroyed, err := h.authn.Sessions().Destroy(c.Response(), c.Request())
		if err != nil {
			return err
		}
		if !destroyed {
			return apperrors.ErrNotLoggedIn
		}
		return c.Redirect(http.StatusFound, "/")
	}

	bearer, ok := auth.ParseBearerHeader(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		return apperrors.ErrNotLoggedIn
	}
	ctx := c.Request().Context()
	id, err := h.authn.Verifier().Verify(ctx, bearer)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(ctx, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusResponse{Success: true, Status: "You are successfully logged out!"})
}

// ChangePassword godoc
// @Summary Change your password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/password [put]
func (h *UsersHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := middleware.IdentityFrom(c)
	if err := h.authService.ChangePassword(c.Request().Context(), id.ID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusResponse{Success: true, Status: "Password changed successfully!"})
}

// CheckJWTToken godoc
// @Summary Check a bearer token
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TokenCheckResponse
// @Failure 401 {object} TokenCheckResponse
// @Router /users/checkJWTtoken [get]
func (h *UsersHandler) CheckJWTToken(c echo.Context) error {
	invalid := func(err error) error {
		return c.JSON(http.StatusUnauthorized, TokenCheckResponse{
			Status:  "JWT invalid!",
			Success: false,
			Err:     err.Error(),
		})
	}

	bearer, ok := auth.ParseBearerHeader(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		return invalid(apperrors.ErrUnauthenticated)
	}
	id, err := h.authn.Verifier().Verify(c.Request().Context(), bearer)
	if err != nil {
		return invalid(err)
	}
	return c.JSON(http.StatusOK, TokenCheckResponse{
		Status:  "JWT valid!",
		Success: true,
		User:    &TokenUser{ID: id.ID.String(), Username: id.Username, Admin: id.Admin},
	})
}
