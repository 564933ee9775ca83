package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"job-portal/internal/config"
	"job-portal/internal/database/migration"
	"job-portal/internal/database/seeder"
	"job-portal/internal/delivery/http/handler"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/delivery/http/routes"
	v1 "job-portal/internal/delivery/http/routes/v1"
	"job-portal/internal/ws"
	"job-portal/migrations"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(runCtx context.Context, c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	routes.NewRegistry(buildDeps(runCtx, c)).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects dependencies, migrates, optionally seeds and starts the
// websocket hub. The returned cleanup stops the hub and closes connections.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	runner := migration.Runner{Source: migration.Source(cfg.App.MigrationsDir, migrations.Files), Logger: logger}
	if err := runner.Run(ctx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	if cfg.App.RunSeeders {
		sr := seeder.Runner{Seeders: seeder.Defaults(cfg), Logger: logger}
		if err := sr.Run(ctx, c.DB); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("seed: %w", err)
		}
	}

	runCtx, stop := context.WithCancel(context.Background())
	go c.Hub.Run(runCtx.Done())

	app := New(runCtx, c)
	cleanup := func() error {
		stop()
		return c.Close()
	}
	return app, cleanup, nil
}

func buildDeps(runCtx context.Context, c *Container) v1.Deps {
	return v1.Deps{
		AuthMw:       middleware.NewAuthMiddleware(c.JWT),
		Health:       handler.NewHealthHandler(c.DB, c.Cache, c.Jobs, c.Applications, c.Hub),
		Auth:         handler.NewAuthHandler(c.AuthUC),
		Jobs:         handler.NewJobHandler(c.JobUC),
		Applications: handler.NewApplicationHandler(c.ApplicationUC),
		Users:        handler.NewUserHandler(c.UserUC),
		Admin:        handler.NewAdminHandler(runCtx, c.Precompute, c.PrecomputeParams(), c.Logger),
		WS:           ws.NewHandler(c.Hub, c.JWT, c.Logger),
	}
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
