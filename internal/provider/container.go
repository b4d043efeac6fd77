package provider

import (
	"time"

	"github.com/catalog-next/internal/cache"
	"github.com/catalog-next/internal/config"
	"github.com/catalog-next/internal/logger"
	"github.com/catalog-next/internal/queue"
	"github.com/catalog-next/internal/repository"
	"github.com/catalog-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	Cache       *cache.Cache
	QueueClient *queue.Client

	// Repositories
	CatalogRepo   repository.CatalogRepository
	CategoryRepo  repository.CategoryRepository
	AttributeRepo repository.AttributeRepository

	// Services
	CatalogService *service.CatalogService
	Catalog        *service.CachedCatalog
}

// NewContainer 初始化容器，数据库句柄由调用方注入
func NewContainer(cfg *config.Config, db *gorm.DB) *Container {
	store := cache.New(cache.Options{
		Enabled:  cfg.Redis.Enabled,
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
	})

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		DB:          db,
		Cache:       store,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	c.CatalogRepo = repository.NewCatalogRepository(c.DB)
	c.CategoryRepo = repository.NewCategoryRepository(c.DB)
	c.AttributeRepo = repository.NewAttributeRepository(c.DB)
}

func (c *Container) initServices() {
	tree := service.NewCategoryTreeResolver(c.CategoryRepo, c.Config.Catalog.MaxTreeDepth)
	c.CatalogService = service.NewCatalogService(
		c.CatalogRepo,
		c.CategoryRepo,
		c.AttributeRepo,
		tree,
		c.Config.Catalog.TopLimit,
	)
	c.Catalog = service.NewCachedCatalog(c.CatalogService, c.Cache, cacheTTL(c.Config.Catalog), logger.Z())
}

func cacheTTL(cfg config.CatalogConfig) service.CacheTTL {
	return service.CacheTTL{
		Listing:     time.Duration(cfg.TTLListingSeconds) * time.Second,
		Search:      time.Duration(cfg.TTLSearchSeconds) * time.Second,
		Detail:      time.Duration(cfg.TTLDetailSeconds) * time.Second,
		Category:    time.Duration(cfg.TTLCategorySeconds) * time.Second,
		CategoryTop: time.Duration(cfg.TTLTopSeconds) * time.Second,
	}
}
