package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/noteshare/notes-api/internal/api"
	"github.com/noteshare/notes-api/internal/core/service"
	"github.com/noteshare/notes-api/internal/infrastructure/config"
	mongostore "github.com/noteshare/notes-api/internal/infrastructure/db/mongo"
	redisstore "github.com/noteshare/notes-api/internal/infrastructure/db/redis"
	"github.com/noteshare/notes-api/internal/realtime"
	"github.com/noteshare/notes-api/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; write the failure and bail.
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	noteRepo := mongostore.NewNoteRepository(db)
	userRepo := mongostore.NewUserRepository(db)
	if err := noteRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("note indexes failed")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}

	// ── Redis ────────────────────────────────────────────────
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	presence := redisstore.NewPresence(rdb)
	if err := presence.Reset(ctx); err != nil {
		log.Warn().Err(err).Msg("presence reset failed")
	}

	// ── Gateway + services ───────────────────────────────────
	hub := realtime.NewHub(presence, log)
	go hub.Run(ctx)

	noteService := service.NewNoteService(noteRepo, hub, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	gateway := realtime.NewHandler(hub, noteService, log)

	// ── Router ───────────────────────────────────────────────
	e := api.NewRouter(api.Dependencies{
		Notes:       noteService,
		Auth:        authService,
		Verifier:    authService,
		Gateway:     gateway,
		NoteCounter: noteRepo,
		ConnCounter: presence,
		Mongo:       db,
		Redis:       rdb,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	if err := e.Shutdown(shutCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	cancel() // stop the hub and drop gateway clients
}
