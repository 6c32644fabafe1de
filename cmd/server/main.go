package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"push-relay/internal/config"
	"push-relay/internal/handler"
	"push-relay/internal/middleware"
	"push-relay/internal/repository"
	"push-relay/internal/service"
	"push-relay/pkg/logger"

	firebase "firebase.google.com/go/v4"
	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redis "github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

func main() {
	// Загрузка переменных окружения (.env опционален в production)
	// Загружаем до чтения конфигурации
	loadDotEnv()

	// --- Configuration ---
	// Отсутствие FIREBASE_CREDENTIALS_PATH - фатальная ошибка загрузки:
	// сервис не должен принимать трафик без учетных данных
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	log, err := logger.New(logger.Config{
		Level:    cfg.Log.Level,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.Log.Level))
	zap.L().Info("Configuration loaded",
		zap.String("tokenBackend", cfg.Tokens.Backend),
		zap.String("senderNameMode", cfg.Dispatch.SenderNameMode),
		zap.String("pushProvider", cfg.Dispatch.PushProvider),
	)

	// --- Firebase (FCM + Firestore) ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := os.Stat(cfg.Firebase.CredentialsPath); err != nil {
		zap.L().Fatal("Firebase credentials file is not readable",
			zap.String("path", cfg.Firebase.CredentialsPath),
			zap.Error(err),
		)
	}

	var fbCfg *firebase.Config
	if cfg.Firebase.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.Firebase.ProjectID}
	}
	app, err := firebase.NewApp(ctx, fbCfg, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	if err != nil {
		zap.L().Fatal("Failed to initialize Firebase App", zap.Error(err))
	}

	// Провайдер отправки: реальный FCM или заглушка для development.
	// Firestore нужен в обоих режимах - хранилище записей не заглушается.
	var pushSender service.PushSender
	if cfg.Dispatch.PushProvider == config.PushProviderStub {
		pushSender = service.NewStubPushSender(log)
		zap.L().Warn("PUSH_PROVIDER=stub: уведомления логируются, отправка в FCM отключена")
	} else {
		messagingClient, err := app.Messaging(ctx)
		if err != nil {
			zap.L().Fatal("Failed to get FCM Messaging client", zap.Error(err))
		}
		pushSender = service.NewFCMSender(messagingClient, log)
		zap.L().Info("FCM Messaging client initialized")
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		zap.L().Fatal("Failed to get Firestore client", zap.Error(err))
	}
	defer firestoreClient.Close()
	zap.L().Info("Firestore client initialized")

	// --- Redis (опционально: бэкенд токенов и/или rate limiter) ---
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = setupRedis(ctx, cfg)
		if err != nil {
			zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		zap.L().Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// --- Dependency Injection ---
	userRepo := repository.NewFirestoreUserRepository(firestoreClient, log)

	var tokenStore repository.TokenStore = userRepo
	if cfg.Tokens.Backend == config.TokenBackendRedis {
		tokenStore = repository.NewRedisTokenRepository(redisClient, log)
	}

	nameResolver := service.NewSenderNameResolver(cfg.Dispatch.SenderNameMode, userRepo, log)

	dispatcher := service.NewDispatchService(
		userRepo, tokenStore, nameResolver, pushSender, log, cfg.Dispatch.CallTimeout)
	registry := service.NewTokenRegistry(
		userRepo, tokenStore, log, cfg.Tokens.RequireUser, cfg.Dispatch.CallTimeout)

	relayHandler := handler.NewRelayHandler(dispatcher, registry, cfg.Version, log)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	// Configure CORS Middleware
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		zap.L().Info("CORSAllowedOrigins not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Health Check Endpoint
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Register Application Routes
	relayHandler.RegisterRoutes(router, buildDispatchRateLimit(cfg, redisClient))

	// Prometheus Middleware применяем после регистрации роутов
	p.Use(router)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// loadDotEnv подхватывает .env, если он есть. В production файла обычно нет.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}
}

// setupRedis подключается к Redis и проверяет соединение.
func setupRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// buildDispatchRateLimit настраивает лимит на отправку уведомлений.
// При наличии Redis состояние лимитера хранится там, иначе - в памяти процесса.
func buildDispatchRateLimit(cfg *config.Config, redisClient *redis.Client) gin.HandlerFunc {
	if cfg.Dispatch.RateLimitPerMinute == 0 {
		return nil
	}

	var store rateli.Store
	if redisClient != nil {
		store = rateli.RedisStore(&rateli.RedisOptions{
			RedisClient: redisClient,
			Rate:        time.Minute,
			Limit:       cfg.Dispatch.RateLimitPerMinute,
		})
	} else {
		store = rateli.InMemoryStore(&rateli.InMemoryOptions{
			Rate:  time.Minute,
			Limit: cfg.Dispatch.RateLimitPerMinute,
		})
	}

	return rateli.RateLimiter(store, &rateli.Options{
		ErrorHandler: func(c *gin.Context, info rateli.Info) {
			zap.L().Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.String(http.StatusTooManyRequests, "Too many requests. Try again in "+time.Until(info.ResetTime).String())
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
