package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/config"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/database"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/handler"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/jobs"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/middleware"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/pipeline"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/provider"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/redis"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/repository"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/service"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/transport"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	sessionRepo := repository.NewSessionRepository(redisClient)
	feedbackRepo := repository.NewFeedbackRepository(db.DB)
	messageLogRepo := repository.NewMessageLogRepository(db.DB)

	var searchers []provider.SearchProvider
	if cfg.SerperAPIKey != "" {
		searchers = append(searchers, provider.NewSerperClient(cfg.SerperAPIKey, cfg.SearchTimeout()))
	}
	if cfg.SerpAPIKey != "" {
		searchers = append(searchers, provider.NewSerpAPIClient(cfg.SerpAPIKey, cfg.SearchTimeout()))
	}

	var synthesizers []provider.SynthesisProvider
	if cfg.OpenAIAPIKey != "" {
		synthesizers = append(synthesizers, provider.NewChatClient(
			"openai", provider.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.SynthesisTimeout(),
		))
	}
	if cfg.GroqAPIKey != "" {
		synthesizers = append(synthesizers, provider.NewChatClient(
			"groq", provider.GroqBaseURL, cfg.GroqAPIKey, cfg.GroqModel, cfg.SynthesisTimeout(),
		))
	}

	verifier := pipeline.NewVerifier(searchers, synthesizers)

	messenger := transport.NewTwilioMessenger(
		cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber,
	)
	dispatcher := transport.NewDispatcher(messenger, cfg.SendPacing())

	sessionService := service.NewSessionService(sessionRepo, cfg.SessionTTL(), cfg.DefaultLocale)
	feedbackService := service.NewFeedbackService(feedbackRepo)
	conversationService := service.NewConversationService(
		sessionService, feedbackService, verifier, dispatcher, messageLogRepo,
	)

	twilioSignatureMiddleware := middleware.NewTwilioSignatureMiddleware(cfg.TwilioAuthToken)
	senderRateLimitMiddleware := middleware.NewSenderRateLimitMiddleware(redisClient.Client, cfg.WebhookRateLimitPerMin)
	adminAuthMiddleware := middleware.NewAdminAuthMiddleware(cfg.AdminToken)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)

	whatsappHandler := handler.NewWhatsAppHandler(conversationService)
	adminHandler := handler.NewAdminHandler(messageLogRepo, feedbackRepo, adminAuthMiddleware.Handler)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/whatsapp", func(r chi.Router) {
		r.Use(twilioSignatureMiddleware.Handler)
		r.With(senderRateLimitMiddleware.Handler).Post("/webhook", whatsappHandler.Webhook)
		r.Post("/status", whatsappHandler.StatusCallback)
	})

	r.Mount("/admin", adminHandler.Routes())

	cleanupJob := jobs.NewCleanupJob(
		feedbackRepo, messageLogRepo,
		cfg.FeedbackRetention(), config.MessageLogRetention, config.CleanupJobInterval,
	)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
