package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/config"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/entities"
	repo "github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/interfaces/repository"
	Iservices "github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/interfaces/services"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/handlers"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/logger"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/provider"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/repository"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/routes"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/infra/services"
	"github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/middleware"
	client "github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/pkg"
)

const (
	messageRetention = 365 * 24 * time.Hour
	leadRetention    = 2 * 365 * 24 * time.Hour
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	ctx := context.Background()
	log := logger.NewLogger(ctx, cfg.LogLevel, true)

	// Store connectivity decides degraded mode, never startup failure: a
	// live call must survive a storage outage or bad credentials.
	var businessRepo repo.Repository[entities.Business]
	var messageRepo *repository.MongoRepository[entities.TurnMessage]
	var leadRepo *repository.MongoRepository[entities.LeadRecord]

	if cfg.MongoConfigured() {
		mongoClient, err := client.MongoClient(cfg.MongoURI)
		if err != nil {
			log.Warn(fmt.Sprintf("Document store unreachable, running in degraded mode: %v", err))
		} else {
			db := mongoClient.Database(cfg.MongoDatabase)
			businessRepo = repository.NewMongoRepository[entities.Business](db)
			messageRepo = repository.NewMongoRepository[entities.TurnMessage](db)
			leadRepo = repository.NewMongoRepository[entities.LeadRecord](db)

			if err := messageRepo.EnsureTTLIndex(ctx, repo.MessagesCollection, "created_at", messageRetention); err != nil {
				log.Warn(fmt.Sprintf("Failed to ensure message TTL index: %v", err))
			}
			if err := leadRepo.EnsureTTLIndex(ctx, repo.LeadsCollection, "last_contact", leadRetention); err != nil {
				log.Warn(fmt.Sprintf("Failed to ensure lead TTL index: %v", err))
			}
		}
	} else {
		log.Warn("MONGODB_URI missing or malformed, running in degraded mode")
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		c, err := client.RedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn(fmt.Sprintf("Redis unreachable, audio cache disabled: %v", err))
		} else {
			redisClient = c
		}
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	sessions := repository.NewSessionCache(repository.DefaultSessionCapacity)

	var businessSvc Iservices.IBusinessService = services.NewBusinessService(businessRepo, log)
	var leadAnalyzer Iservices.ILeadAnalyzer = services.NewLeadAnalyzer(log)

	var conversationSvc Iservices.IConversationService
	if messageRepo != nil && leadRepo != nil {
		conversationSvc = services.NewConversationService(messageRepo, leadRepo, sessions, log)
	} else {
		conversationSvc = services.NewConversationService(nil, nil, sessions, log)
	}

	responseProvider := provider.NewAzureOpenAIProvider(log, httpClient, cfg.OpenAIEndpoint, cfg.OpenAIDeployment, cfg.OpenAIAPIKey)
	speechProvider := provider.NewAzureSpeechProvider(log, httpClient, redisClient, cfg.SpeechKey, cfg.SpeechRegion, cfg.BlobContainerURL, cfg.BlobSASToken)

	var callSvc Iservices.ICallService = services.NewCallService(
		log, businessSvc, conversationSvc, leadAnalyzer, responseProvider, speechProvider, cfg.ConfidenceThreshold,
	)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	twilioHandlers := handlers.NewTwilioHandlers(log, callSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(log, conversationSvc)
	businessHandlers := handlers.NewBusinessHandlers(log, cfg.DashboardToken, businessSvc)

	routes := routes.NewRoutes(router, twilioHandlers, dashboardHandlers, businessHandlers)
	routes.Init()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Error during shutdown: %s", err))
	}
	log.Info("Server stopped")
}
