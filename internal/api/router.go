package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-recommender/internal/api/handlers/health"
	recommendHandler "recipe-recommender/internal/api/handlers/recommend"
	shoppingHandler "recipe-recommender/internal/api/handlers/shopping"
	"recipe-recommender/internal/api/middleware"
	recommendService "recipe-recommender/internal/core/recommend"
	shoppingService "recipe-recommender/internal/core/shopping"
	"recipe-recommender/internal/core/store"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)，本服務只接收 JSON
	maxBodySize = 1 << 20
)

// BuildStore 依配置組裝資料儲存層
// memory 模式用於開發與測試，remote 模式走外部記錄服務
// Redis 啟用時包裝一層購物清單持久化
func BuildStore(cfg *config.Config) (store.Store, func() error, error) {
	var base store.Store
	switch cfg.Store.Mode {
	case "memory":
		base = store.NewMemoryStore()
	case "remote":
		base = store.NewRemoteStore(cfg.Store.BaseURL, cfg.Store.Timeout)
	default:
		return nil, nil, fmt.Errorf("unknown store mode: %s", cfg.Store.Mode)
	}

	if !cfg.Store.RedisEnabled {
		return base, func() error { return nil }, nil
	}

	redisStore, err := store.NewRedisListStore(base, cfg.Store.RedisAddr, cfg.Store.RedisTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
	}
	return redisStore, redisStore.Close, nil
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, st store.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("store_mode", cfg.Store.Mode),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 速率限制
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	if st == nil {
		common.LogError("Store is nil")
		return nil, fmt.Errorf("store is nil")
	}

	// 初始化服務
	recommendSvc := recommendService.NewService(st)
	shoppingSvc := shoppingService.NewService(st)

	common.LogInfo("Services initialized successfully",
		zap.String("store_mode", cfg.Store.Mode),
		zap.Bool("redis_enabled", cfg.Store.RedisEnabled),
		zap.String("environment", cfg.App.Env),
	)

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// 設置配置
		c.Set("config", cfg)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		recommendHandlerInstance := recommendHandler.NewHandler(recommendSvc)
		shoppingHandlerInstance := shoppingHandler.NewHandler(shoppingSvc)

		// 推薦相關路由
		recommendGroup := api.Group("/recommendations")
		{
			recommendGroup.GET("", recommendHandlerInstance.HandleRecommendations)
			recommendGroup.GET("/trending", recommendHandlerInstance.HandleTrending)
			recommendGroup.GET("/summary", recommendHandlerInstance.HandleSummary)
		}

		// 相似食譜
		api.GET("/recipes/:id/similar", recommendHandlerInstance.HandleSimilar)

		// 購物清單相關路由
		shoppingGroup := api.Group("/shopping-lists")
		{
			// 產生端點對重複提交做去重
			shoppingGroup.POST("/generate", middleware.Deduplication(cfg), shoppingHandlerInstance.HandleGenerate)
			shoppingGroup.GET("", shoppingHandlerInstance.HandleList)
			shoppingGroup.GET("/:id", shoppingHandlerInstance.HandleGet)
			shoppingGroup.PATCH("/:id/items/:name", shoppingHandlerInstance.HandleSetItemChecked)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("store_mode", cfg.Store.Mode),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
