package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stressdost/internal/cache"
	"stressdost/internal/config"
	"stressdost/internal/repository"
	"stressdost/internal/service"
	"stressdost/internal/transport/rest"
	"stressdost/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Question: %s", aiConfig.Models.Question)
	log.Printf("  Prefill:  %s", aiConfig.Models.Prefill)
	log.Printf("  Causes:   %s", aiConfig.Models.Causes)
	log.Printf("  Gate:     %s", aiConfig.Models.Gate)
	log.Printf("  Popups:   %s", aiConfig.Models.Popups)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:  configured ✓")
	} else {
		log.Println("  API Key:  NOT SET (keyword fallbacks only)")
	}

	// MongoDB connection; without a URI the in-memory store is used
	var sessionRepo repository.SessionRepo
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			log.Fatal("Failed to ping MongoDB:", err)
		}
		log.Println("Connected to MongoDB")

		sessionRepo = repository.NewSessionRepo(mongoClient, cfg.MongoDatabase)
	} else {
		log.Println("Warning: MONGO_URI not set, using in-memory session store")
		sessionRepo = repository.NewMemorySessionRepo()
	}

	// Redis connection; without a URI sessions are read straight from the store
	if cfg.RedisURI != "" {
		redisAddr := strings.TrimPrefix(cfg.RedisURI, "redis://")
		rdb := redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}
		log.Println("Connected to Redis")

		sessionCache := cache.NewSessionCache(rdb)
		sessionRepo = cache.NewCachedSessionRepo(sessionRepo, sessionCache)
	} else {
		log.Println("Warning: REDIS_URI not set, session cache disabled")
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize services
	llm := service.NewLLMClient(aiConfig)
	causeSvc := service.NewCauseService(llm, aiConfig)
	prefillSvc := service.NewPrefillService(llm, aiConfig)
	gateSvc := service.NewGateService(llm, aiConfig)
	questionSvc := service.NewQuestionService(llm, aiConfig)
	popupSvc := service.NewPopupService(llm, aiConfig)

	interviewSvc := service.NewInterviewService(
		sessionRepo,
		causeSvc,
		prefillSvc,
		gateSvc,
		questionSvc,
		popupSvc,
		cfg,
	)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	interviewSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		InterviewService: interviewSvc,
		WSHub:            wsHub,
	}
	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /session/start")
		log.Println("  POST /session/{id}/answer")
		log.Println("  POST /session/{id}/next-question")
		log.Println("  GET  /session/{id}/status")
		log.Println("  GET  /session/{id}/debug")
		log.Println("  POST /session/{id}/start-simulation")
		log.Println("  POST /session/{id}/test-popup")
		log.Println("  WS   /ws/session/{id}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
