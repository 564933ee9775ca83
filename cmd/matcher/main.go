package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-portal/internal/app"
	"job-portal/internal/config"
	"job-portal/internal/database/migration"
	"job-portal/internal/pipeline"
	"job-portal/migrations"
)

func main() {
	workers := flag.Int("workers", 0, "worker count (defaults to MATCH_WORKERS)")
	rps := flag.Int("rps", -1, "users ranked per second, 0 for unlimited (defaults to MATCH_RATE_PER_SECOND)")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	r := migration.Runner{Source: migration.Source(cfg.App.MigrationsDir, migrations.Files)}
	if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	params := c.PrecomputeParams()
	if *workers > 0 {
		params.Workers = *workers
	}
	if *rps >= 0 {
		params.RatePerSecond = *rps
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	sum, err := c.Precompute.Run(ctx, params)
	if err != nil {
		if errors.Is(err, pipeline.ErrAlreadyRunning) {
			log.Printf("matcher=run status=skipped reason=locked")
			return
		}
		log.Printf("matcher=run status=error err=%v", err)
		os.Exit(1)
	}

	log.Printf("matcher=run status=ok users=%d jobs=%d matched=%d failed=%d duration=%s",
		sum.Users, sum.Jobs, sum.Matched, sum.Failed, sum.Duration)
}
