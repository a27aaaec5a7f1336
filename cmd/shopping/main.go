// ShoppingService 主程序
// 功能：商品目录、购物车、结算下单、心愿单的一致性引擎
// 架构：基于 DDD + Gin + GORM + Kafka（出站消息表异步投递）
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/wyfcoding/shopping/internal/cart/application"
	cartadapter "github.com/wyfcoding/shopping/internal/cart/infrastructure/adapter"
	cartmessaging "github.com/wyfcoding/shopping/internal/cart/infrastructure/messaging"
	cartmysql "github.com/wyfcoding/shopping/internal/cart/infrastructure/persistence/mysql"
	carthttp "github.com/wyfcoding/shopping/internal/cart/interfaces/http"
	catalogapp "github.com/wyfcoding/shopping/internal/catalog/application"
	catalogadapter "github.com/wyfcoding/shopping/internal/catalog/infrastructure/adapter"
	catalogmessaging "github.com/wyfcoding/shopping/internal/catalog/infrastructure/messaging"
	catalogmysql "github.com/wyfcoding/shopping/internal/catalog/infrastructure/persistence/mysql"
	cataloghttp "github.com/wyfcoding/shopping/internal/catalog/interfaces/http"
	orderapp "github.com/wyfcoding/shopping/internal/order/application"
	orderadapter "github.com/wyfcoding/shopping/internal/order/infrastructure/adapter"
	ordermysql "github.com/wyfcoding/shopping/internal/order/infrastructure/persistence/mysql"
	orderhttp "github.com/wyfcoding/shopping/internal/order/interfaces/http"
	wishlistapp "github.com/wyfcoding/shopping/internal/wishlist/application"
	wishlistadapter "github.com/wyfcoding/shopping/internal/wishlist/infrastructure/adapter"
	wishlistmysql "github.com/wyfcoding/shopping/internal/wishlist/infrastructure/persistence/mysql"
	wishlisthttp "github.com/wyfcoding/shopping/internal/wishlist/interfaces/http"

	cartdomain "github.com/wyfcoding/shopping/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
	orderdomain "github.com/wyfcoding/shopping/internal/order/domain"
	wishlistdomain "github.com/wyfcoding/shopping/internal/wishlist/domain"

	"github.com/wyfcoding/shopping/pkg/cache"
	"github.com/wyfcoding/shopping/pkg/config"
	"github.com/wyfcoding/shopping/pkg/db"
	"github.com/wyfcoding/shopping/pkg/keylock"
	"github.com/wyfcoding/shopping/pkg/logger"
	"github.com/wyfcoding/shopping/pkg/metrics"
	"github.com/wyfcoding/shopping/pkg/middleware"
	"github.com/wyfcoding/shopping/pkg/mq"
	"github.com/wyfcoding/shopping/pkg/outbox"
	"github.com/wyfcoding/shopping/pkg/ratelimit"
)

func main() {
	// 1. 加载配置
	configPath := flag.String("config", "configs/shopping/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	loggerCfg := logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}
	if err := logger.Init(loggerCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger.Info(ctx, "Starting ShoppingService",
		"service", cfg.ServiceName,
		"version", cfg.Version,
		"environment", cfg.Environment,
	)

	// 3. 初始化数据库
	dbCfg := db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	}
	database, err := db.Init(dbCfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize database", "error", err)
	}
	defer database.Close()

	// 开发环境自动建表，生产环境走独立的迁移流程
	if cfg.Environment == "dev" {
		err = database.AutoMigrate(
			&catalogdomain.Product{},
			&cartdomain.Cart{},
			&cartdomain.CartItem{},
			&orderdomain.Order{},
			&orderdomain.OrderItem{},
			&wishlistdomain.Wishlist{},
			&wishlistdomain.WishlistItem{},
			&outbox.Message{},
		)
		if err != nil {
			logger.Fatal(ctx, "Failed to migrate database", "error", err)
		}
	}

	// 4. 初始化 Redis
	redisCfg := cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}
	redisCache, err := cache.New(redisCfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize Redis", "error", err)
	}
	defer redisCache.Close()

	// 5. 初始化限流器
	rateLimiter := ratelimit.NewRedisRateLimiter(redisCache.GetClient())

	// 6. 初始化 Kafka 生产者与出站消息处理器
	producer, err := mq.NewProducer(mq.KafkaConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		MaxRetries:     cfg.Kafka.MaxRetries,
		RetryBackoff:   cfg.Kafka.RetryBackoff,
		SessionTimeout: cfg.Kafka.SessionTimeout,
	})
	if err != nil {
		logger.Fatal(ctx, "Failed to create Kafka producer", "error", err)
	}
	defer producer.Close()

	outboxManager := outbox.NewManager(database.DB)
	processor := outbox.NewProcessor(
		outboxManager,
		producer.SendRaw,
		cfg.Outbox.BatchSize,
		time.Duration(cfg.Outbox.PollInterval)*time.Millisecond,
	)

	// 7. 初始化仓储
	productRepo := catalogmysql.NewProductRepository(database.DB)
	cartRepo := cartmysql.NewCartRepository(database.DB)
	orderRepo := ordermysql.NewOrderRepository(database.DB)
	wishlistRepo := wishlistmysql.NewWishlistRepository(database.DB)

	// 8. 初始化跨上下文适配器
	cartProductReader := cartadapter.NewProductReader(productRepo)
	orderCartReader := orderadapter.NewCartReader(cartRepo)
	orderProductReader := orderadapter.NewProductReader(productRepo)
	wishlistProductReader := wishlistadapter.NewProductReader(productRepo)
	cartScrubber := catalogadapter.NewCartScrubber(cartRepo)
	wishlistScrubber := catalogadapter.NewWishlistScrubber(wishlistRepo)
	orderChecker := catalogadapter.NewOrderReferenceChecker(orderRepo)

	// 9. 初始化应用服务
	// 购物车与结算共享同一把键锁，结算期间同一购物车的写操作互斥
	cartLocks := keylock.New()

	catalogPublisher := catalogmessaging.NewOutboxPublisher(outboxManager)
	cartPublisher := cartmessaging.NewOutboxPublisher(outboxManager)

	catalogCmd := catalogapp.NewCatalogCommandService(productRepo, cartScrubber, wishlistScrubber, orderChecker, catalogPublisher)
	catalogQuery := catalogapp.NewCatalogQueryService(productRepo)
	cartCmd := cartapp.NewCartCommandService(cartRepo, cartProductReader, cartPublisher, cartLocks)
	cartQuery := cartapp.NewCartQueryService(cartRepo, cartProductReader)
	checkoutTx := ordermysql.NewCheckoutTx(database, outboxManager)
	checkout := orderapp.NewCheckoutService(orderCartReader, orderProductReader, checkoutTx, cartLocks)
	orderQuery := orderapp.NewOrderQueryService(orderRepo, orderProductReader)
	wishlistSvc := wishlistapp.NewWishlistService(wishlistRepo, wishlistProductReader)

	// 10. 初始化指标
	metricsInstance := metrics.New(cfg.ServiceName)
	if err := metricsInstance.Register(); err != nil {
		logger.Fatal(ctx, "Failed to register metrics", "error", err)
	}
	if cfg.Metrics.Enabled {
		if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Fatal(ctx, "Failed to start metrics HTTP server", "error", err)
		}
	}

	// 11. 创建 HTTP 服务器
	httpServer := createHTTPServer(cfg, metricsInstance, rateLimiter,
		cataloghttp.NewCatalogHandler(catalogCmd, catalogQuery, metricsInstance),
		carthttp.NewCartHandler(cartCmd, cartQuery, metricsInstance),
		orderhttp.NewOrderHandler(checkout, orderQuery, metricsInstance),
		wishlisthttp.NewWishlistHandler(wishlistSvc),
	)

	// 12. 启动出站消息处理器
	go processor.Start()

	// 13. 启动 HTTP 服务器
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		logger.Info(ctx, "Starting HTTP server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server error", "error", err)
		}
	}()

	// 14. 优雅关停
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info(ctx, "Shutting down ShoppingService")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP server shutdown error", "error", err)
	}

	processor.Stop()

	logger.Info(ctx, "ShoppingService stopped")
}

type routeRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// createHTTPServer 创建 HTTP 服务器
func createHTTPServer(
	cfg *config.Config,
	m *metrics.Metrics,
	rateLimiter ratelimit.RateLimiter,
	handlers ...routeRegistrar,
) *http.Server {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 添加中间件
	router.Use(middleware.GinLoggingMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinMetricsMiddleware(m))
	router.Use(middleware.RateLimitMiddleware(rateLimiter, cfg.RateLimit))

	// 注册路由
	api := router.Group("/api/v1")
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   cfg.ServiceName,
			"timestamp": time.Now().Unix(),
		})
	})

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}
}
