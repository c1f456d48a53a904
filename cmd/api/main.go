package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	_ "pharmaops/docs"
	"pharmaops/internal/config"
	"pharmaops/internal/database"
	"pharmaops/internal/events"
	"pharmaops/internal/handler"
	"pharmaops/internal/middleware"
	"pharmaops/internal/repository"
	"pharmaops/internal/service"
	"pharmaops/internal/storage"
	"pharmaops/internal/websocket"
	"pharmaops/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           PharmaOps Compliance API
// @version         1.0
// @description     Pharmaceutical supply-chain compliance: rules, document review, order lifecycle and a hash-chained audit trail.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLog, err := logger.New(cfg.Log.Environment, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		zapLog.Fatal("Database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zapLog.Fatal("Database migration failed", zap.Error(err))
	}
	zapLog.Info("Connected to PostgreSQL successfully", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(zapLog.Named("ws"))
	go wsHub.Run(ctx)

	publishers := events.Multi{wsHub}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer func() { _ = rdb.Close() }()
		publishers = append(publishers, events.NewRedisPublisher(rdb, cfg.Redis.Channel, zapLog.Named("redis")))
		zapLog.Info("Redis event sink enabled", zap.String("addr", cfg.Redis.Addr))
	}
	if cfg.NATS.URL != "" {
		nc, err := nats.Connect(cfg.NATS.URL, nats.Name("pharmaops-api"))
		if err != nil {
			zapLog.Fatal("NATS connection failed", zap.Error(err))
		}
		defer func() { _ = nc.Drain() }()
		publishers = append(publishers, events.NewNATSPublisher(nc, cfg.NATS.SubjectPrefix, zapLog.Named("nats")))
		zapLog.Info("NATS event sink enabled", zap.String("url", cfg.NATS.URL))
	}

	var verifier service.ObjectVerifier
	minioClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		zapLog.Fatal("MinIO client failed", zap.Error(err))
	}
	if minioClient != nil {
		verifier = storage.NewMinIOVerifier(minioClient, cfg.MinIO.Bucket)
		zapLog.Info("Content references verified against MinIO", zap.String("bucket", cfg.MinIO.Bucket))
	}

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	productRepo := repository.NewProductRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	requirementRepo := repository.NewRequirementRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)

	auditService := service.NewAuditService(repository.NewAuditRepository(db), txManager, zapLog.Named("audit"))
	ruleService := service.NewRuleService(ruleRepo, productRepo, auditService, txManager, zapLog.Named("rules"))
	productService := service.NewProductService(productRepo, auditService, txManager, zapLog.Named("products"))
	vendorService := service.NewVendorService(vendorRepo, orderRepo, auditService, txManager, publishers, zapLog.Named("vendors"))
	orderService := service.NewOrderService(orderRepo, vendorRepo, productRepo, documentRepo, shipmentRepo,
		service.NewRequirementGenerator(ruleService), auditService, txManager, publishers, zapLog.Named("orders"))
	documentService := service.NewDocumentService(documentRepo, requirementRepo, orderRepo, productRepo,
		orderService, auditService, txManager, verifier, publishers, zapLog.Named("documents"))
	statisticsService := service.NewStatisticsService(repository.NewStatisticsRepository(db))

	// Set up Gin Router
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(zapLog.Named("http")))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws"})))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DB_UNAVAILABLE"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK", "ws_clients": wsHub.ClientCount()})
	})

	secret := []byte(cfg.JWT.Secret)
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, secret)
	})

	handler.Mount(router, secret,
		handler.NewProductHandler(productService, ruleService),
		handler.NewVendorHandler(vendorService),
		handler.NewOrderHandler(orderService, documentService),
		handler.NewDocumentHandler(documentService),
		handler.NewAuditHandler(auditService),
		handler.NewStatisticsHandler(statisticsService),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLog.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Graceful shutdown failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
