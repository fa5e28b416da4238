package main

import (
	"context"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gomonte/adapters/postgres"
	"gomonte/app"
	"gomonte/domain/estimate"
	"gomonte/internal/api"
	"gomonte/internal/config"
	"gomonte/internal/testkit"
	"gomonte/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[API] invalid configuration: %v", err)
	}

	repo, err := buildRepository(cfg)
	if err != nil {
		log.Fatalf("[API] failed to initialize run store: %v", err)
	}

	defaults := estimate.Params{
		RTol:      cfg.Engine.RTol,
		MaxTrials: cfg.Engine.MaxTrials,
		BatchSize: cfg.Engine.BatchSize,
		Workers:   cfg.Engine.Workers,
		Sampler:   "uniform",
	}

	server := api.NewServer(app.NewEstimatorService(repo), repo, defaults)

	addr := ":" + cfg.Server.Port
	log.Printf("[API] listening on %s", addr)
	if err := http.ListenAndServe(addr, server); err != nil {
		log.Fatalf("[API] server failed: %v", err)
	}
}

func buildRepository(cfg *config.Config) (ports.RunRepositoryPort, error) {
	if cfg.Database.URL == "" {
		log.Println("[API] DATABASE_URL not set, run history is in-memory only")
		return testkit.NewMemoryRunRepository(), nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	repo := postgres.NewRunRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}
