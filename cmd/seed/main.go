package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"confusion/internal/cache"
	"confusion/internal/config"
	"confusion/internal/db"
	"confusion/internal/logging"
	"confusion/internal/model"
	"confusion/internal/repository"
	"confusion/internal/service"
)

func main() {
	file := flag.String("file", "db.json", "menu document with dishes, promotions and leaders")
	admin := flag.String("admin", "admin", "username of the admin account to ensure; empty skips it")
	password := flag.String("password", "", "password for a newly created admin account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Env, os.Stdout)

	if err := run(context.Background(), cfg, logger, *file, *admin, *password); err != nil {
		logger.Error("seed failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, file, admin, password string) error {
	if cfg.DBDriver != "mysql" {
		return fmt.Errorf("seeding needs DB_DRIVER=mysql, got %q", cfg.DBDriver)
	}

	menu, err := readMenu(file)
	if err != nil {
		return err
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		return err
	}
	logger.Info("connected to database")

	// writes go through the services so a running server's cache is invalidated
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	users := repository.NewUserRepository(gormDB)
	seeder := service.NewMenuSeeder(
		service.NewDishService(repository.NewDishRepository(gormDB), cacheClient),
		service.NewPromotionService(repository.NewCatalogRepository[model.Promotion](gormDB), cacheClient),
		service.NewLeaderService(repository.NewCatalogRepository[model.Leader](gormDB), cacheClient),
		users,
		cacheClient,
	)

	result, err := seeder.Seed(ctx, *menu)
	if err != nil {
		return err
	}
	logger.Info("menu seeded",
		"dishes", result.Dishes,
		"promotions", result.Promotions,
		"leaders", result.Leaders,
		"skipped", result.Skipped)

	if admin == "" {
		return nil
	}
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}
	if password == "" {
		return fmt.Errorf("admin %q needs -password or ADMIN_PASSWORD", admin)
	}
	user, err := seeder.EnsureAdmin(ctx, admin, password)
	if err != nil {
		return err
	}
	logger.Info("admin ready", "username", user.Username, "id", user.ID)
	return nil
}

func readMenu(path string) (*service.Menu, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu: %w", err)
	}
	var menu service.Menu
	if err := json.Unmarshal(raw, &menu); err != nil {
		return nil, fmt.Errorf("parse menu %s: %w", path, err)
	}
	return &menu, nil
}
