package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	controller "github.com/Itish41/ActionNotes/controller"
	"github.com/Itish41/ActionNotes/initializers"
	middleware "github.com/Itish41/ActionNotes/middleware"
	service "github.com/Itish41/ActionNotes/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := initializers.LoadEnv(); err != nil {
		log.Fatal().Err(err).Msg("[CRITICAL] Failed to load env")
	}
	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("[CRITICAL] Invalid configuration")
	}
	initializers.SetupLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	if err := initializers.ConnectDB(cfg.DatabaseURL, cfg.LogLevel == "debug"); err != nil {
		log.Fatal().Err(err).Msg("[CRITICAL] Failed to initialize database connection")
	}
	if err := initializers.Migrate(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("[CRITICAL] Failed to run database migrations")
	}

	notesService := service.NewNotesService(service.NewGormStore(initializers.DB), options(cfg)...)

	if err := controller.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("[CRITICAL] Failed to register validators")
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.GlobalRateLimiter.Limit())
	controller.RegisterRoutes(router, controller.NewController(notesService), middleware.StrictRateLimiter.Limit())

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("[CRITICAL] Server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("Server stopped")
}

// options enables the integrations whose settings are present.
func options(cfg *initializers.Config) []service.Option {
	var opts []service.Option

	if cfg.SearchEnabled() {
		indexer, err := service.NewElasticIndexer(cfg.ElasticsearchIndex, cfg.ElasticsearchURL)
		if err != nil {
			log.Fatal().Err(err).Msg("[CRITICAL] Failed to initialize search index")
		}
		opts = append(opts, service.WithIndexer(indexer))
		log.Info().Str("index", cfg.ElasticsearchIndex).Msg("Search index enabled")
	}

	if cfg.ArchiveEnabled() {
		archiver, err := service.NewS3Archiver(service.S3Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("[CRITICAL] Failed to initialize import archive")
		}
		opts = append(opts, service.WithArchiver(archiver))
		log.Info().Str("bucket", cfg.S3Bucket).Msg("Import archive enabled")
	}

	if cfg.LLMEnabled() {
		opts = append(opts, service.WithChatClient(service.NewOpenAIChatClient(cfg.LLMAPIURL, cfg.LLMAPIKey, cfg.LLMModel)))
		log.Info().Str("model", cfg.LLMModel).Msg("LLM extraction enabled")
	} else {
		log.Warn().Msg("Neither LLM_API_KEY nor LLM_API_URL set, llm mode falls back to heuristic extraction")
	}

	if cfg.MailEnabled() {
		opts = append(opts, service.WithNotifier(service.NewSMTPNotifier(service.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})))
		log.Info().Str("host", cfg.SMTPHost).Msg("Assignment emails enabled")
	}

	return opts
}
