package main

import (
	"context"
	"log"

	"github.com/screentocode/screen-to-code-backend/config"
	cronjob "github.com/screentocode/screen-to-code-backend/internal/account/cron"
	"github.com/screentocode/screen-to-code-backend/internal/account/repository"
	"github.com/screentocode/screen-to-code-backend/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()
	deps := bootstrap.RouterDeps{
		ServiceName: "screen-to-code-backend",
		Cfg:         cfg,
	}

	if cfg.Account.Backend == "postgres" || cfg.Account.DatabaseDSN != "" {
		db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Account.DatabaseDSN})
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer db.Close()
		deps.DB = db
	}

	if cfg.Account.Backend == "redis" {
		rdb, err := bootstrap.OpenRedis(ctx, cfg.Account.RedisAddr)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		deps.Redis = rdb
	}

	deps.TrialStore = bootstrap.NewTrialStore(cfg, deps.DB, deps.Redis)

	// The in-memory store needs its expired records swept; the other
	// backends expire on their own.
	if mem, ok := deps.TrialStore.(*repository.TrialMemoryRepository); ok {
		sweeper := cronjob.NewSweeper(mem)
		sweeper.Start()
		defer sweeper.Stop()
	}

	r := bootstrap.BuildRouter(deps)

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
