package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careloop/backend/internal/adapters/cache"
	"github.com/careloop/backend/internal/adapters/database"
	"github.com/careloop/backend/internal/api/handlers"
	"github.com/careloop/backend/internal/api/routes"
	"github.com/careloop/backend/internal/application/queue"
	"github.com/careloop/backend/internal/application/services"
	"github.com/careloop/backend/internal/domain/providers"
	"github.com/careloop/backend/internal/infrastructure/clients/gemini"
	"github.com/careloop/backend/internal/infrastructure/clients/openai"
	"github.com/careloop/backend/internal/infrastructure/clients/postgres"
	"github.com/careloop/backend/internal/infrastructure/clients/redis"
	"github.com/careloop/backend/internal/infrastructure/notifications"
	"github.com/careloop/backend/internal/infrastructure/observability"
	"github.com/careloop/backend/pkg/config"
	"github.com/careloop/backend/pkg/secrets"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Local development convenience; deployed environments set real env vars.
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional Vault KV source for secrets like JWT_SECRET and API keys.
	vaultCfg := secrets.LoadVaultConfigFromEnv()
	if vaultResult, err := secrets.ApplyVaultSecrets(ctx, vaultCfg); err != nil {
		log.Warn().Err(err).Msg("Failed to load secrets from Vault")
	} else if vaultResult.Enabled {
		log.Info().
			Str("path", vaultResult.Path).
			Int("loaded", vaultResult.Loaded).
			Int("skipped", vaultResult.Skipped).
			Msg("Vault secrets applied")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Initialize Redis client. The app works without it: rate limiting and
	// board caching fall back to process memory.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized successfully")
	}

	// Remote text-generation providers. Either may be absent; the
	// orchestrators degrade to local answers.
	var chatGenerator providers.TextGenerator
	if cfg.OpenAI.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set; chat runs on the knowledge table only")
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize OpenAI client")
		} else {
			chatGenerator = openaiClient
		}
	}

	var triageGenerator providers.TextGenerator
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set; triage runs on severity rules only")
	} else {
		geminiClient, err := gemini.NewClient(ctx, &cfg.Gemini)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			triageGenerator = geminiClient
		}
	}

	// Initialize adapters
	userAdapter := database.NewUserAdapter(pgClient)
	postAdapter := database.NewPostAdapter(pgClient)
	bookingAdapter := database.NewBookingAdapter(pgClient)

	// One shared queue so chat and triage traffic is serialized against the
	// remote providers together.
	outboundQueue := queue.New()

	// Initialize services
	authService := services.NewAuthService(userAdapter, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	chatService := services.NewChatService(services.NewKeywordResponder(), outboundQueue, chatGenerator)
	triageService := services.NewTriageService(outboundQueue, triageGenerator)
	bookingService := services.NewBookingService(bookingAdapter)
	if sender, err := notifications.NewWhatsAppSender(); err == nil {
		bookingService.SetNotifier(sender)
		log.Info().Msg("WhatsApp booking confirmations enabled")
	}
	communityService := services.NewCommunityService(postAdapter, cacheProvider)
	dashboardService := services.NewDashboardService()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(chatService, cacheProvider)
	triageHandler := handlers.NewTriageHandler(triageService)
	telemedicineHandler := handlers.NewTelemedicineHandler(bookingService)
	communityHandler := handlers.NewCommunityHandler(communityService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	var staticHandler *handlers.StaticHandler
	if _, err := os.Stat(cfg.Static.Dir); err == nil {
		staticHandler = handlers.NewStaticHandler(cfg.Static.Dir)
	} else {
		log.Warn().Str("dir", cfg.Static.Dir).Msg("Static asset directory not found, frontend serving disabled")
	}

	router := routes.NewRouter(
		authHandler,
		chatHandler,
		triageHandler,
		telemedicineHandler,
		communityHandler,
		dashboardHandler,
		staticHandler,
		authService,
		metrics,
	)

	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
