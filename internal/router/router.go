package router

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"confusion/internal/config"
	apperrors "confusion/internal/errors"
	"confusion/internal/handler"
	"confusion/internal/logging"
	"confusion/internal/metrics"
	"confusion/internal/middleware"
	"confusion/internal/model"
)

const defaultBodyLimit = "10M"

// Handlers bundles the endpoint handlers mounted by Register.
type Handlers struct {
	Dishes     *handler.DishHandler
	Promotions *handler.CatalogHandler[model.Promotion]
	Leaders    *handler.CatalogHandler[model.Leader]
	Favorites  *handler.FavoritesHandler
	Users      *handler.UsersHandler
	Upload     *handler.UploadHandler
	Seed       *handler.SeedHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *slog.Logger,
	authn *middleware.Authenticator,
	m *metrics.Metrics,
	h Handlers,
) {
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(cfg.IsDevelopment(), logger)
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(echomw.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit(bodyLimit(cfg)))
	e.Use(m.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	r := newRoutes(e, cfg, authn)

	registerCatalog(r, "/dishes", "dishId", h.Dishes.CatalogHandler)
	r.at("/dishes/:dishId/comments").
		get(h.Dishes.Comments).
		post(r.user, h.Dishes.AddComment).
		put(r.user, handler.Unsupported).
		delete(r.admin, h.Dishes.DeleteAllComments)
	r.at("/dishes/:dishId/comments/:commentId").
		get(h.Dishes.Comment).
		post(r.user, handler.Unsupported).
		put(r.user, h.Dishes.UpdateComment).
		delete(r.user, h.Dishes.DeleteComment)

	registerCatalog(r, "/promotions", "promoId", h.Promotions)
	registerCatalog(r, "/leaders", "leaderId", h.Leaders)

	r.at("/favorites").
		getGated(r.user, h.Favorites.GetFavorites).
		post(r.user, h.Favorites.AddFavorites).
		put(r.user, handler.Unsupported).
		delete(r.user, h.Favorites.RemoveFavorites)
	r.at("/favorites/:dishId").
		getGated(r.user, handler.Unsupported).
		post(r.user, h.Favorites.AddFavorite).
		put(r.user, handler.Unsupported).
		delete(r.user, h.Favorites.RemoveFavorite)

	limit := middleware.RateLimit(cfg.AuthRateLimit)
	r.at("/users").getGated(r.admin, h.Users.ListUsers)
	r.at("/users/signup").post([]echo.MiddlewareFunc{limit}, h.Users.Signup)
	r.at("/users/login").post([]echo.MiddlewareFunc{limit}, h.Users.Login)
	r.at("/users/logout").getGated(nil, h.Users.Logout)
	r.at("/users/password").put(r.user, h.Users.ChangePassword)
	r.at("/users/checkJWTtoken").getGated(nil, h.Users.CheckJWTToken)

	r.at("/imageUpload").
		getGated(r.admin, handler.Unsupported).
		post(r.admin, h.Upload.UploadImage).
		put(r.admin, handler.Unsupported).
		delete(r.admin, handler.Unsupported)

	r.at("/seed").post(r.admin, h.Seed.SeedMenu)
}

func bodyLimit(cfg *config.Config) string {
	if cfg.BodyLimit == "" {
		return defaultBodyLimit
	}
	return cfg.BodyLimit
}

// registerCatalog mounts the list and item routes shared by dishes, promotions and leaders.
func registerCatalog[T any](r *routes, base, param string, h *handler.CatalogHandler[T]) {
	r.at(base).
		get(h.List).
		post(r.admin, h.Create).
		put(r.admin, handler.Unsupported).
		delete(r.admin, h.DeleteAll)
	r.at(base+"/:"+param).
		get(h.Get).
		post(r.admin, handler.Unsupported).
		put(r.admin, h.Update).
		delete(r.admin, h.Delete)
}

// routes builds per-path pipelines: CORS policy first, then the gate stages.
type routes struct {
	e         *echo.Echo
	anyOrigin echo.MiddlewareFunc
	allowList echo.MiddlewareFunc
	user      []echo.MiddlewareFunc
	admin     []echo.MiddlewareFunc
}

func newRoutes(e *echo.Echo, cfg *config.Config, authn *middleware.Authenticator) *routes {
	return &routes{
		e:         e,
		anyOrigin: middleware.CORSAny(),
		allowList: middleware.CORSWithOrigins(cfg.CORSOrigins),
		user:      []echo.MiddlewareFunc{authn.Authenticate(), middleware.RequireUser()},
		admin:     []echo.MiddlewareFunc{authn.Authenticate(), middleware.RequireAdmin()},
	}
}

// at starts a path and answers its preflight requests under the allow-list.
func (r *routes) at(path string) *pathRoutes {
	r.e.OPTIONS(path, func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, r.allowList)
	return &pathRoutes{r: r, path: path}
}

type pathRoutes struct {
	r    *routes
	path string
}

func (p *pathRoutes) chain(gate []echo.MiddlewareFunc) []echo.MiddlewareFunc {
	return append([]echo.MiddlewareFunc{p.r.allowList}, gate...)
}

// get mounts a public read under the permissive CORS policy.
func (p *pathRoutes) get(h echo.HandlerFunc) *pathRoutes {
	p.r.e.GET(p.path, h, p.r.anyOrigin)
	return p
}

// getGated mounts a read that stays behind the allow-list.
func (p *pathRoutes) getGated(gate []echo.MiddlewareFunc, h echo.HandlerFunc) *pathRoutes {
	p.r.e.GET(p.path, h, p.chain(gate)...)
	return p
}

func (p *pathRoutes) post(gate []echo.MiddlewareFunc, h echo.HandlerFunc) *pathRoutes {
	p.r.e.POST(p.path, h, p.chain(gate)...)
	return p
}

func (p *pathRoutes) put(gate []echo.MiddlewareFunc, h echo.HandlerFunc) *pathRoutes {
	p.r.e.PUT(p.path, h, p.chain(gate)...)
	return p
}

func (p *pathRoutes) delete(gate []echo.MiddlewareFunc, h echo.HandlerFunc) *pathRoutes {
	p.r.e.DELETE(p.path, h, p.chain(gate)...)
	return p
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
