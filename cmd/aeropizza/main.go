package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aeropizza/backend/internal/admin"
	"github.com/aeropizza/backend/internal/catalog"
	"github.com/aeropizza/backend/internal/config"
	"github.com/aeropizza/backend/internal/db"
	handlerHttp "github.com/aeropizza/backend/internal/handler/http"
	"github.com/aeropizza/backend/internal/notify"
	"github.com/aeropizza/backend/internal/order"
	"github.com/aeropizza/backend/internal/pix"
	"github.com/aeropizza/backend/internal/stats"
	"github.com/aeropizza/backend/internal/user"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Info().Msg("Starting aeropizza backend...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx := context.Background()

	database, err := db.New(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := database.ApplyMigrations(cfg.Postgres); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	catalogRepo := catalog.NewRepository(database.Pool)
	catalogSvc := catalog.NewService(catalogRepo)

	orderRepo := order.NewRepository(database.Pool)
	orderSvc := order.NewService(orderRepo, catalogSvc)

	userRepo := user.NewRepository(database.Pool)
	userSvc := user.NewService(userRepo)

	adminRepo := admin.NewRepository(database.Pool)
	adminSvc := admin.NewService(adminRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	pixRepo := pix.NewRepository(database.Pool)
	pixSvc := pix.NewService(pixRepo)

	statsSvc := stats.NewService(database.Pool)

	composer := notify.NewComposer(pixSvc, 3*time.Second)

	if err := catalogSvc.SeedCategories(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to seed default categories")
	}

	if cfg.Auth.SeedAdminEmail != "" && cfg.Auth.SeedAdminPassword != "" {
		err := adminSvc.Seed(ctx, []admin.Seed{{
			Name:     cfg.Auth.SeedAdminName,
			Email:    cfg.Auth.SeedAdminEmail,
			Password: cfg.Auth.SeedAdminPassword,
		}})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to seed initial admin")
		}
	}

	router := handlerHttp.NewRouter(handlerHttp.Handlers{
		Orders:  handlerHttp.NewOrderHandler(orderSvc),
		Catalog: handlerHttp.NewCatalogHandler(catalogSvc),
		Users:   handlerHttp.NewUserHandler(userSvc),
		Admins:  handlerHttp.NewAdminHandler(adminSvc),
		Pix:     handlerHttp.NewPixHandler(pixSvc),
		Stats:   handlerHttp.NewStatsHandler(statsSvc),
		Notify:  handlerHttp.NewNotifyHandler(orderSvc, userSvc, composer, cfg.WhatsApp.PhoneNumber),
	}, adminSvc)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("port", cfg.App.Port).Msg("Could not listen")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	database.Close()

	log.Info().Msg("Aeropizza backend stopped gracefully.")
}
