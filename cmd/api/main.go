package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	handlerHttp "github.com/mikiasgoitom/Convene/internal/handler/http"
	redisclient "github.com/mikiasgoitom/Convene/internal/infrastructure/cache"
	"github.com/mikiasgoitom/Convene/internal/infrastructure/config"
	database "github.com/mikiasgoitom/Convene/internal/infrastructure/database"
	"github.com/mikiasgoitom/Convene/internal/infrastructure/external_services"
	"github.com/mikiasgoitom/Convene/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/Convene/internal/infrastructure/logger"
	"github.com/mikiasgoitom/Convene/internal/infrastructure/metrics"
	passwordservice "github.com/mikiasgoitom/Convene/internal/infrastructure/password_service"
	randomgenerator "github.com/mikiasgoitom/Convene/internal/infrastructure/random_generator"
	"github.com/mikiasgoitom/Convene/internal/infrastructure/repository/mongodb"
	miniostore "github.com/mikiasgoitom/Convene/internal/infrastructure/storage/minio"
	"github.com/mikiasgoitom/Convene/internal/infrastructure/store"
	"github.com/mikiasgoitom/Convene/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/Convene/internal/infrastructure/validator"
	"github.com/mikiasgoitom/Convene/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration from .env (if present) and the environment
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLogger := logger.New(appConfig.LogLevel)

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(ctx, appConfig.Mongo.URI, appConfig.Mongo.DBName)
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Errorf("Failed to disconnect from MongoDB: %v", err)
		}
	}()
	if err := database.EnsureIndexes(ctx, mongoClient.DB); err != nil {
		appLogger.Fatalf("Failed to create MongoDB indexes: %v", err)
	}

	// Register custom validators
	validator.RegisterCustomValidators()

	// Dependency Injection: Services
	uuidGenerator := uuidgen.NewGenerator()
	randomGenerator := randomgenerator.NewRandomGenerator()
	appValidator := validator.NewValidator()
	hasher := passwordservice.NewHasher(appConfig.BcryptCost)
	jwtManager, err := jwt.NewJWTManager(appConfig.JWT.Secret, appConfig.AccessTokenTTL, appConfig.JWT.Issuer)
	if err != nil {
		appLogger.Fatalf("Failed to initialize JWT manager: %v", err)
	}
	jwtService := jwt.NewJWTService(jwtManager)
	mailService := external_services.NewEmailService(
		appConfig.Email.Host, appConfig.Email.Port,
		appConfig.Email.Username, appConfig.Email.Password, appConfig.Email.From,
	)
	collector := metrics.NewCollector(prometheus.DefaultRegisterer)

	minioClient, err := miniostore.Dial(appConfig.Minio.Endpoint, appConfig.Minio.AccessKey, appConfig.Minio.SecretKey, appConfig.Minio.UseSSL)
	if err != nil {
		appLogger.Fatalf("Failed to create MinIO client: %v", err)
	}
	assetStore, err := miniostore.NewClient(ctx, minioClient, appConfig.Minio.Bucket, appConfig.Minio.PublicBaseURL, uuidGenerator)
	if err != nil {
		appLogger.Fatalf("Failed to prepare profile picture bucket: %v", err)
	}

	// Dependency Injection: Repositories
	userRepo := mongodb.NewMongoUserRepository(mongoClient.DB.Collection(database.UsersCollection))
	conversationRepo := mongodb.NewConversationRepository(mongoClient.DB, uuidGenerator)

	// Dependency Injection: Usecases
	userUsecase := usecase.NewUserUsecase(userRepo, hasher, jwtService, mailService, appLogger, appConfig, appValidator, uuidGenerator, collector)
	pictureUsecase := usecase.NewProfilePictureUsecase(userRepo, assetStore, appLogger, collector)
	conversationUsecase := usecase.NewConversationUsecase(conversationRepo, userRepo, uuidGenerator, appLogger, collector)

	// Optional Dependency Injection: Redis cache
	if appConfig.RedisEnabled() {
		rdb, err := redisclient.NewRedisClient(ctx, appConfig.Redis.URL)
		if err != nil {
			appLogger.Warnf("Redis unavailable, profile cache disabled: %v", err)
		} else {
			defer rdb.Close()
			userCache := store.NewUserCacheStore(rdb, appConfig.Redis.CacheTTL)
			userUsecase.SetUserCache(userCache)
			pictureUsecase.SetUserCache(userCache)
		}
	}

	// Setup API routes
	router := gin.Default()
	appRouter := handlerHttp.NewRouter(
		userUsecase, pictureUsecase, conversationUsecase,
		jwtService, appConfig, randomGenerator,
		handlerHttp.RouterOptions{
			AllowedOrigins:     appConfig.CORSAllowedOrigins,
			RateLimitPerSecond: appConfig.RateLimitPerSecond,
			EnableGoogleLogin:  appConfig.GoogleEnabled(),
			MetricsHandler:     promhttp.Handler(),
			RequestRecorder:    collector,
		},
	)
	appRouter.SetupRoutes(router)

	// Start the server
	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Infof("Server running on port %s", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Infof("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Server shutdown failed: %v", err)
	}
}
