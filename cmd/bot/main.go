package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/moviemate/moviemate-bot/internal/api"
	"github.com/moviemate/moviemate-bot/internal/api/handler"
	"github.com/moviemate/moviemate-bot/internal/catalog/tmdb"
	"github.com/moviemate/moviemate-bot/internal/config"
	"github.com/moviemate/moviemate-bot/internal/dialog"
	"github.com/moviemate/moviemate-bot/internal/domain"
	"github.com/moviemate/moviemate-bot/internal/repository/memory"
	"github.com/moviemate/moviemate-bot/internal/repository/redis"
	"github.com/moviemate/moviemate-bot/internal/repository/supabase"
	"github.com/moviemate/moviemate-bot/internal/telegram"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			fmt.Printf("Loaded .env from: %s\n", p)
			break
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.Logging)

	log.Info().
		Str("mode", cfg.Telegram.Mode).
		Bool("redis", cfg.Redis.Enabled).
		Msg("Starting MovieMate bot")

	// Initialize repositories
	supaClient := supabase.NewClient(cfg.Supabase)
	userRepo := supabase.NewUserRepository(supaClient)
	movieRepo := supabase.NewMovieRepository(supaClient)
	tmdbClient := tmdb.NewClient(cfg.TMDB)

	// Initialize session store and flood limiter
	var sessions domain.SessionStore
	var limiter telegram.FloodLimiter
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		sessions = redis.NewSessionStore(redisClient, cfg.Session.TTL)
		if cfg.Session.FloodLimit > 0 {
			limiter = redis.NewFloodLimiter(redisClient, cfg.Session.FloodLimit)
		}
	} else {
		sessions = memory.NewSessionStore(cfg.Session.TTL)
	}

	// Initialize bot
	tgClient := telegram.NewClient(cfg.Telegram.Token)
	controller := dialog.NewController(userRepo, movieRepo, tmdbClient, sessions)
	bot := telegram.NewBot(tgClient, controller, limiter)

	me, err := tgClient.GetMe(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to verify bot token")
	}
	log.Info().Str("username", me.Username).Msg("Bot authorized")

	// HTTP server for health endpoints and, in webhook mode, updates
	var pingers []handler.Pinger
	if redisClient != nil {
		pingers = append(pingers, redisClient)
	}
	router := api.NewRouter(cfg, bot, pingers...)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())

	if cfg.Telegram.Mode == "webhook" {
		if err := tgClient.SetWebhook(ctx, cfg.Telegram.WebhookURL, cfg.Telegram.WebhookSecret); err != nil {
			log.Fatal().Err(err).Msg("Failed to set webhook")
		}
		log.Info().Str("url", cfg.Telegram.WebhookURL).Msg("Webhook registered")
	} else {
		poller := telegram.NewPoller(tgClient, bot, cfg.Telegram.PollTimeout)
		go func() {
			if err := poller.Run(ctx); err != nil && err != context.Canceled {
				log.Error().Err(err).Msg("Poller stopped")
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Bot stopped")
}

func setupLogger(cfg config.LoggingConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	if cfg.File != "" {
		writer, err := rotatelogs.New(
			cfg.File,
			rotatelogs.WithRotationTime(cfg.RotateTime),
			rotatelogs.WithMaxAge(cfg.MaxAge),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open log file")
		}
		out = writer
	} else if os.Getenv("ENV") != "production" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	log.Logger = log.Output(out)
}
