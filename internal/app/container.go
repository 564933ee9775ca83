package app

import (
	"context"
	"errors"
	"log"
	"time"

	"job-portal/internal/config"
	"job-portal/internal/database"
	dbpostgres "job-portal/internal/database/postgres"
	"job-portal/internal/domain/user"
	"job-portal/internal/infrastructure/cache"
	"job-portal/internal/pipeline"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/policy"
	"job-portal/internal/repository"
	"job-portal/internal/usecase"
	"job-portal/internal/ws"
)

type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Cache  *cache.Redis
	JWT    jwt.Service
	Hub    *ws.Hub

	Users        user.Repository
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository
	Matches      repository.JobMatchRepository

	AuthUC        usecase.AuthUsecase
	UserUC        usecase.UserUsecase
	JobUC         usecase.JobUsecase
	ApplicationUC usecase.ApplicationUsecase
	Precompute    *pipeline.MatchPrecompute
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, cfg.App.AppName)
	if err != nil {
		return nil, err
	}

	return Assemble(cfg, logger, db), nil
}

// Assemble wires repositories, usecases and the hub on top of an open database.
func Assemble(cfg config.Config, logger *log.Logger, db database.DB) *Container {
	if logger == nil {
		logger = log.Default()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
		Hub: ws.NewHub(logger),
	}

	c.Users = repository.NewPostgresUserRepository(db)
	c.Jobs = repository.NewPostgresJobRepository(db)
	c.Applications = repository.NewPostgresApplicationRepository(db)
	c.Matches = repository.NewPostgresJobMatchRepository(db)

	notifier := ws.NewNotifier(c.Hub, logger)
	c.AuthUC = usecase.NewAuthUsecase(c.Users, c.JWT)
	c.UserUC = usecase.NewUserUsecase(c.Users, c.Cache, logger)
	c.JobUC = usecase.NewJobUsecase(c.Jobs, c.Applications, c.Users, c.Cache, cfg.Matching.CacheTTL, notifier, logger)
	c.ApplicationUC = usecase.NewApplicationUsecase(
		c.Applications,
		c.Jobs,
		c.Users,
		policy.NewTransitionPolicy(cfg.Application.StrictTransitions),
		notifier,
		logger,
	)
	c.Precompute = pipeline.NewMatchPrecompute(c.Users, c.Jobs, c.Matches, c.Cache, logger)

	return c
}

func (c *Container) PrecomputeParams() pipeline.PrecomputeParams {
	return pipeline.PrecomputeParams{
		Workers:       c.Config.Matching.Workers,
		RatePerSecond: c.Config.Matching.RatePerSecond,
		CacheTTL:      c.Config.Matching.CacheTTL,
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
