// Library management system API server.
//
// Wires configuration, storage, services and the HTTP router, then runs
// until interrupted. A background sweep flags overdue loans on a fixed
// interval.
//
// @title        Library Management System API
// @version      1.0
// @description  Session-gated REST API for the library catalog, loan ledger and member notifications.
// @BasePath     /v1
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pmbajaj/Lib-Management-System/internal/api"
	"github.com/pmbajaj/Lib-Management-System/internal/core/service"
	"github.com/pmbajaj/Lib-Management-System/internal/infrastructure/config"
	mongodb "github.com/pmbajaj/Lib-Management-System/internal/infrastructure/db/mongo"
	redisdb "github.com/pmbajaj/Lib-Management-System/internal/infrastructure/db/redis"
	"github.com/pmbajaj/Lib-Management-System/internal/infrastructure/queue"
	"github.com/pmbajaj/Lib-Management-System/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	identityRepo := mongodb.NewIdentityRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	loanRepo := mongodb.NewLoanRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"identities":    identityRepo.EnsureIndexes,
		"books":         bookRepo.EnsureIndexes,
		"loans":         loanRepo.EnsureIndexes,
		"notifications": notificationRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	sessionStore := redisdb.NewSessionStore(rdb, cfg.TokenTTL)
	resetTokens := redisdb.NewResetTokenStore(rdb)

	// --- Services ---
	authService, err := service.NewAuthService(identityRepo, sessionStore, resetTokens, cfg.JWTSecret, cfg.TokenTTL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("auth service initialisation failed")
	}

	notificationService := service.NewNotificationService(notificationRepo, log)
	dispatcher := queue.NewDispatcher(0, notificationService, log)
	dispatcher.Start(ctx)

	bookService := service.NewBookService(bookRepo, log)
	loanService := service.NewLoanService(loanRepo, bookRepo, dispatcher, log)
	reportService := service.NewReportService(bookRepo, loanRepo, identityRepo)

	// --- Overdue sweep ---
	go func() {
		ticker := time.NewTicker(cfg.OverdueSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				flagged, err := loanService.SweepOverdue(ctx)
				if err != nil {
					log.Error().Err(err).Msg("overdue sweep failed")
					continue
				}
				if flagged > 0 {
					log.Info().Int("flagged", flagged).Msg("overdue loans flagged")
				}
			}
		}
	}()

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		JWTSecret:     cfg.JWTSecret,
		Log:           log,
		Mongo:         db,
		Redis:         rdb,
		Auth:          authService,
		Sessions:      sessionStore,
		Users:         identityRepo,
		Books:         bookService,
		Loans:         loanService,
		Notifications: notificationService,
		Reports:       reportService,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
