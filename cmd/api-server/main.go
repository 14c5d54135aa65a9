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

	"github.com/psicare/clinic-scheduling/internal/api"
	"github.com/psicare/clinic-scheduling/internal/clinic"
	"github.com/psicare/clinic-scheduling/internal/config"
	"github.com/psicare/clinic-scheduling/internal/crypt"
	"github.com/psicare/clinic-scheduling/internal/db"
	"github.com/psicare/clinic-scheduling/internal/media"
	redisclient "github.com/psicare/clinic-scheduling/internal/redis"
)

const version = "0.3.0"

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "api-server").Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}
	if cfg.Env == "dev" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Msg("api-server starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	log.Info().Msg("connected to Postgres")

	if err := db.Bootstrap(rootCtx, pgPool); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap error")
	}

	rdb, err := redisclient.NewRedisClient(rootCtx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing redis")
		}
	}()
	log.Info().Msg("connected to Redis")

	encryptor, err := crypt.New(cfg.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("encryption key error")
	}

	repo := clinic.NewPgRepository(pgPool)
	locker := redisclient.NewRedisScheduleLocker(rdb, cfg.LockTTL)
	mediaStore := media.NewFSStore(cfg.MediaDir)

	router := api.NewRouter(api.RouterConfig{
		Registry:     clinic.NewRegistryService(repo, log),
		Slots:        clinic.NewSlotService(repo, locker, log),
		Appointments: clinic.NewAppointmentService(repo, locker, log),
		Agenda:       clinic.NewAgendaService(repo, locker, log),
		Notes:        clinic.NewNotesService(repo, encryptor, log),
		Deletion:     clinic.NewDeletionService(repo, mediaStore, log),
		PgPool:       pgPool,
		Redis:        rdb,
		Env:          cfg.Env,
		Version:      version,
		Logger:       log,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
