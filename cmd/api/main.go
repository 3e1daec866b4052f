package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	handlerHttp "github.com/curately/curately/internal/handler/http"
	redisclient "github.com/curately/curately/internal/infrastructure/cache"
	"github.com/curately/curately/internal/infrastructure/config"
	"github.com/curately/curately/internal/infrastructure/database"
	"github.com/curately/curately/internal/infrastructure/jwt"
	"github.com/curately/curately/internal/infrastructure/logger"
	"github.com/curately/curately/internal/infrastructure/repository/mongodb"
	"github.com/curately/curately/internal/infrastructure/store"
	"github.com/curately/curately/internal/infrastructure/uuidgen"
	"github.com/curately/curately/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable not set")
	}
	dbName := os.Getenv("MONGODB_DB_NAME")
	if dbName == "" {
		log.Fatal("MONGODB_DB_NAME environment variable not set")
	}
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Fatal("REDIS_URL environment variable not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()

	// Establish Redis connection
	rdb, err := redisclient.NewRedisFromURL(ctx, redisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisclient.Close(rdb)

	// Dependency Injection: Repositories
	db := mongoClient.Client.Database(dbName)
	curationRepo := mongodb.NewCurationRepository(db)
	likeRepo := mongodb.NewLikeRepository(db)
	memberRepo := mongodb.NewMemberRepository(db)
	if err := likeRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure like indexes: %v", err)
	}

	// Dependency Injection: Services
	counterStore := store.NewCounterStore(rdb)
	appLogger := logger.NewStdLogger()
	appConfig := config.NewConfig()
	uuidGenerator := uuidgen.NewGenerator()
	jwtManager := jwt.NewManager(jwtSecret)

	// Dependency Injection: Usecases
	engagementUsecase := usecase.NewEngagementUsecase(counterStore, curationRepo, memberRepo, appLogger, appConfig)
	recommendUsecase := usecase.NewRecommendationUsecase(counterStore, curationRepo, appLogger, appConfig)
	curationUsecase := usecase.NewCurationUsecase(curationRepo, likeRepo, counterStore, engagementUsecase, uuidGenerator, appLogger)
	syncUsecase := usecase.NewSyncUsecase(counterStore, curationRepo, likeRepo, memberRepo, uuidGenerator, appLogger, appConfig)

	// Reconciliation job: single instance, serialized runs.
	go syncUsecase.Run(ctx)

	// Setup API routes
	router := gin.Default()
	appRouter := handlerHttp.NewRouter(curationUsecase, engagementUsecase, recommendUsecase, jwtManager)
	appRouter.SetupRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		log.Printf("Server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
