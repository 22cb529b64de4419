package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	_ "confusion/docs" // swagger docs

	"confusion/internal/auth"
	"confusion/internal/cache"
	"confusion/internal/config"
	"confusion/internal/db"
	"confusion/internal/handler"
	"confusion/internal/logging"
	"confusion/internal/metrics"
	"confusion/internal/middleware"
	"confusion/internal/model"
	"confusion/internal/repository"
	"confusion/internal/router"
	"confusion/internal/service"
	"confusion/internal/storage"
)

// repositories is the persistence backend chosen by DB_DRIVER.
type repositories struct {
	users      repository.UserRepository
	dishes     repository.DishRepository
	promotions repository.CatalogRepository[model.Promotion]
	leaders    repository.CatalogRepository[model.Leader]
	favorites  repository.FavoritesRepository
}

// @title conFusion Menu API
// @version 1.0
// @description Restaurant menu API: dishes with comments, promotions, leaders, per-user favorites and image uploads.
// @host localhost:3000
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Env, os.Stdout)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(cfg, logger)
	if err != nil {
		return err
	}

	cacheClient := openCache(ctx, cfg, logger)
	defer cacheClient.Close()

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	var tokenStore auth.TokenStoreInterface = auth.NewTokenStore(cacheClient)
	if cfg.DBDriver == "memory" {
		tokenStore = auth.NewMemoryTokenStore()
	}
	verifier := auth.NewVerifier(repos.users, jwtService, tokenStore)

	var sessions *auth.SessionManager
	if cfg.AuthStrategy == config.StrategySession {
		sessions, err = auth.NewFilesystemSessionManager(cfg.SessionDir, cfg.SessionSecret)
		if err != nil {
			return err
		}
	}
	authn := middleware.NewAuthenticator(cfg.AuthStrategy, verifier, sessions)

	images, err := openImageStore(ctx, cfg)
	if err != nil {
		return err
	}

	// Initialize services
	authService := service.NewAuthService(repos.users, verifier, jwtService, tokenStore, cacheClient)
	dishService := service.NewDishService(repos.dishes, cacheClient)
	promotionService := service.NewPromotionService(repos.promotions, cacheClient)
	leaderService := service.NewLeaderService(repos.leaders, cacheClient)
	favoritesService := service.NewFavoritesService(repos.favorites, repos.dishes)
	uploadService := service.NewUploadService(images)
	seeder := service.NewMenuSeeder(dishService, promotionService, leaderService, repos.users, cacheClient)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, logger, authn, metrics.New(), router.Handlers{
		Dishes:     handler.NewDishHandler(dishService),
		Promotions: handler.NewPromotionHandler(promotionService),
		Leaders:    handler.NewLeaderHandler(leaderService),
		Favorites:  handler.NewFavoritesHandler(favoritesService),
		Users:      handler.NewUsersHandler(authService, authn),
		Upload:     handler.NewUploadHandler(uploadService),
		Seed:       handler.NewSeedHandler(seeder),
	})

	addr := ":" + cfg.ServerPort
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "auth_strategy", cfg.AuthStrategy, "db_driver", cfg.DBDriver,
			"swagger", swaggerURL(cfg))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openRepositories(cfg *config.Config, logger *slog.Logger) (*repositories, error) {
	if cfg.DBDriver == "memory" {
		logger.Info("using in-memory storage")
		return &repositories{
			users:      repository.NewMemoryUserRepository(),
			dishes:     repository.NewMemoryDishRepository(),
			promotions: repository.NewMemoryPromotionRepository(),
			leaders:    repository.NewMemoryLeaderRepository(),
			favorites:  repository.NewMemoryFavoritesRepository(),
		}, nil
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return nil, err
	}
	if cfg.ResetDB {
		logger.Warn("RESET_DB set, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		return nil, err
	}
	return &repositories{
		users:      repository.NewUserRepository(gormDB),
		dishes:     repository.NewDishRepository(gormDB),
		promotions: repository.NewCatalogRepository[model.Promotion](gormDB),
		leaders:    repository.NewCatalogRepository[model.Leader](gormDB),
		favorites:  repository.NewFavoritesRepository(gormDB),
	}, nil
}

// openCache returns nil under the memory driver: entries cached by an earlier
// process would outlive the data they describe.
func openCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) *cache.Client {
	if cfg.DBDriver == "memory" {
		return nil
	}
	c := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := c.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, serving without cache", "addr", cfg.RedisAddr, "err", err)
	}
	return c
}

func openImageStore(ctx context.Context, cfg *config.Config) (storage.ImageStore, error) {
	if cfg.S3.Enabled() {
		return storage.NewS3Store(ctx, cfg.S3)
	}
	return storage.NewDiskStore(cfg.UploadDir)
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
