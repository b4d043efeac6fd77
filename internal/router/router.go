package router

import (
	"fmt"
	"strings"

	"github.com/catalog-next/internal/config"
	publichandlers "github.com/catalog-next/internal/http/handlers/public"
	"github.com/catalog-next/internal/logger"
	"github.com/catalog-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	if cfg.Security.RateLimit.Enabled {
		redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
		if redisPrefix == "" {
			redisPrefix = "catalog"
		}
		rule := RateLimitRule{
			Prefix:        fmt.Sprintf("%s:rate:api", redisPrefix),
			WindowSeconds: cfg.Security.RateLimit.WindowSeconds,
			MaxRequests:   cfg.Security.RateLimit.MaxRequests,
		}
		apiV1.Use(RateLimitMiddleware(c.Cache.Client(), rule, KeyByIP))
	}

	{
		catalog := apiV1.Group("/catalog")
		{
			catalog.GET("/products", publicHandler.ListProducts)
			catalog.GET("/products/search", publicHandler.SearchProducts)
			catalog.GET("/products/:slug", publicHandler.GetProduct)
			catalog.GET("/categories/:slug", publicHandler.GetCategory)
			catalog.GET("/categories/:slug/products", publicHandler.ListCategoryProducts)
			catalog.GET("/categories/:slug/top-products", publicHandler.GetCategoryTopProducts)
		}
	}

	// 健康检查
	r.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
