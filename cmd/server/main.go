package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/fairpitch/matchcore/internal/api"
	"github.com/fairpitch/matchcore/internal/publish"
	"github.com/fairpitch/matchcore/internal/store"
	"github.com/fairpitch/matchcore/internal/suspension"
	"github.com/fairpitch/matchcore/internal/validate"
)

type config struct {
	Addr      string `env:"MATCHCORE_ADDR" envDefault:":8080"`
	DBPath    string `env:"MATCHCORE_DB_PATH" envDefault:"matchcore.db"`
	RedisAddr string `env:"MATCHCORE_REDIS_ADDR"`
}

func main() {
	logger := log.New(os.Stdout, "[SERVER] ", log.LstdFlags)

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatalf("parse config: %v", err)
	}

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatalf("migrate database: %v", err)
	}

	suspensions := suspension.NewStore(db)
	if err := suspensions.Load(); err != nil {
		logger.Fatalf("hydrate suspensions: %v", err)
	}

	var publisher *publish.Publisher
	if cfg.RedisAddr != "" {
		publisher = publish.New(cfg.RedisAddr)
		defer publisher.Close()
	}

	server := api.NewServer(db, suspensions, validate.New(validate.DefaultConfig()), publisher)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Printf("listening on %s (db=%s redis=%q)", cfg.Addr, cfg.DBPath, cfg.RedisAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("serve: %v", err)
		}
	}()

	<-done
	logger.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}
