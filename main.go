package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lexdesk/lexdesk/handlers"
	"github.com/lexdesk/lexdesk/internal/analytics"
	"github.com/lexdesk/lexdesk/internal/attorneys"
	"github.com/lexdesk/lexdesk/internal/cases"
	"github.com/lexdesk/lexdesk/internal/clients"
	"github.com/lexdesk/lexdesk/internal/config"
	"github.com/lexdesk/lexdesk/internal/database"
	"github.com/lexdesk/lexdesk/internal/documents"
	"github.com/lexdesk/lexdesk/internal/search"
	"github.com/lexdesk/lexdesk/internal/sessions"
	"github.com/lexdesk/lexdesk/internal/storage"
	"github.com/lexdesk/lexdesk/pkg/logger"
	"github.com/lexdesk/lexdesk/pkg/metrics"
	"github.com/lexdesk/lexdesk/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.MongoDB.URI == "" {
		logger.Fatalf("MONGODB_URI is required")
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsCfg))

	// Connect to Redis early so the rate limiter and token blacklist can use
	// it when configured. Both features degrade gracefully without it.
	var redisClient *redis.Client
	var blacklist sessions.Blacklist
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err == nil {
			blacklist = sessions.NewRedisBlacklist(redisClient)
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		} else {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		}
	}

	// The limiter sits ahead of auth so login/register are covered too; at
	// this point in the chain no identity is resolved yet, so every bucket
	// keys on client IP.
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	ctx := context.Background()

	// Retry/backoff when connecting to MongoDB to tolerate startup races
	const maxAttempts = 5
	backoff := time.Second
	var mongoClient *mongo.Client
	var mongoErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		mongoClient, mongoErr = database.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if mongoErr == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, mongoErr)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if mongoErr != nil {
		logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, mongoErr)
	}
	mongoOK := true
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	db := mongoClient.Database(cfg.MongoDB.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Fatalf("failed to ensure indexes: %v", err)
	}

	attorneyRepo := attorneys.NewMongoRepository(db.Collection("attorneys"))
	clientRepo := clients.NewMongoRepository(db.Collection("clients"))
	caseRepo := cases.NewMongoRepository(db.Collection("cases"))

	attorneySvc := attorneys.NewService(attorneyRepo)
	clientSvc := clients.NewService(clientRepo)
	caseSvc := cases.NewService(caseRepo, clientRepo)
	searchSvc := search.NewService(caseRepo, clientRepo)
	analyticsSvc := analytics.NewService(caseSvc, clientRepo)

	// blob storage for case documents
	var blobs storage.BlobStore
	var blobsOK bool
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		ms, err := storage.NewMinIOStorage(mcfg)
		if err != nil {
			logger.Warnf("minio unavailable, document uploads disabled: %v", err)
		} else {
			blobs = ms
			blobsOK = true
		}
	} else {
		logger.Warnf("MINIO_ENDPOINT not set, document uploads disabled")
	}

	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"mongodb": mongoOK,
			"storage": blobsOK,
			"redis":   redisClient != nil || cfg.Redis.Host == "",
		}
		ready := mongoOK
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	api := r.Group("/api")
	handlers.NewAuthHandler(cfg, attorneySvc, blacklist).Register(api)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg, blacklist))
	handlers.NewClientHandler(clientSvc).Register(protected)
	handlers.NewCaseHandler(caseSvc).Register(protected)
	handlers.NewSearchHandler(searchSvc).Register(protected)
	handlers.NewDashboardHandler(analyticsSvc).Register(protected)
	if blobs != nil {
		docSvc := documents.NewService(caseRepo, blobs)
		handlers.NewDocumentHandler(cfg, docSvc).Register(protected)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("config summary: mongo=%v redis=%v storage=%v jwt_secret_set=%v", mongoOK, redisClient != nil, blobsOK, cfg.JWT.Secret != "")
	logger.Infof("starting lexdesk API on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
