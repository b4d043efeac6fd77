package main

import (
	"fmt"
	"log"
	"time"

	"github.com/catalog-next/internal/config"
	"github.com/catalog-next/internal/constants"
	"github.com/catalog-next/internal/logger"
	"github.com/catalog-next/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	})
	if err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 媒体素材
	mediaItems := []models.Media{
		{PublicID: models.NewPublicID(), Name: "category-electronics.jpg", AltText: "电子产品分类图", StorageKey: "https://images.unsplash.com/photo-1498049794561-7780e7231661?w=800", IsActive: true},
		{PublicID: models.NewPublicID(), Name: "banner-electronics.jpg", AltText: "电子产品横幅", StorageKey: "https://images.unsplash.com/photo-1517336714739-489689fd1ca8?w=1920", IsActive: true},
		{PublicID: models.NewPublicID(), Name: "category-audio.jpg", AltText: "音频设备分类图", StorageKey: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=800", IsActive: true},
		{PublicID: models.NewPublicID(), Name: "banner-audio.jpg", AltText: "音频设备横幅", StorageKey: "https://images.unsplash.com/photo-1484704849700-f032a568e944?w=1920", IsActive: true},
		{PublicID: models.NewPublicID(), Name: "category-wearables.jpg", AltText: "穿戴设备分类图", StorageKey: "https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800", IsActive: true},
		{PublicID: models.NewPublicID(), Name: "banner-wearables.jpg", AltText: "穿戴设备横幅", StorageKey: "https://images.unsplash.com/photo-1544117519-31a4b719223d?w=1920", IsActive: true},
		{PublicID: models.NewPublicID(), Name: "brand-soundcore.jpg", AltText: "Soundcore 品牌图", StorageKey: "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800", IsActive: true},
		{PublicID: models.NewPublicID(), Name: "brand-pulsefit.jpg", AltText: "PulseFit 品牌图", StorageKey: "https://images.unsplash.com/photo-1508685096489-7aacd43bd3b1?w=800", IsActive: true},
		{PublicID: models.NewPublicID(), Name: "product-earbuds.jpg", AltText: "无线耳机主图", StorageKey: "https://images.unsplash.com/photo-1606220945770-b5b6c2c55bf1?w=800", IsActive: true},
		{PublicID: models.NewPublicID(), Name: "product-earbuds-2.jpg", AltText: "无线耳机细节图", StorageKey: "https://images.unsplash.com/photo-1572569511254-d8f925fe2cbb?w=800", IsActive: true},
		{PublicID: models.NewPublicID(), Name: "product-watch.jpg", AltText: "智能手表主图", StorageKey: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=800", IsActive: true},
		{PublicID: models.NewPublicID(), Name: "product-speaker.jpg", AltText: "蓝牙音箱主图", StorageKey: "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=800", IsActive: true},
	}
	mediaIDs := map[string]uint{}
	for _, item := range mediaItems {
		var existing models.Media
		if err := db.Where("name = ?", item.Name).First(&existing).Error; err != nil {
			if err := db.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create media %s: %v", item.Name, err)
				continue
			}
			existing = item
			stdLog.Printf("Created media: %s", item.Name)
		}
		mediaIDs[existing.Name] = existing.ID
	}

	// 分类树：根分类 + 子分类
	electronicsID := upsertCategory(db, stdLog, models.Category{
		PublicID: models.NewPublicID(),
		Name:     "电子产品",
		Slug:     "electronics",
		ImageID:  mediaIDs["category-electronics.jpg"],
		BannerID: mediaIDs["banner-electronics.jpg"],
		IsActive: true,
	})
	audioID := upsertCategory(db, stdLog, models.Category{
		PublicID: models.NewPublicID(),
		Name:     "音频设备",
		Slug:     "audio",
		ParentID: &electronicsID,
		ImageID:  mediaIDs["category-audio.jpg"],
		BannerID: mediaIDs["banner-audio.jpg"],
		IsActive: true,
	})
	wearablesID := upsertCategory(db, stdLog, models.Category{
		PublicID: models.NewPublicID(),
		Name:     "穿戴设备",
		Slug:     "wearables",
		ParentID: &electronicsID,
		ImageID:  mediaIDs["category-wearables.jpg"],
		BannerID: mediaIDs["banner-wearables.jpg"],
		IsActive: true,
	})

	// 品牌
	brandIDs := map[string]uint{}
	brands := []models.Brand{
		{PublicID: models.NewPublicID(), Name: "Soundcore", Slug: "soundcore", Description: "音频设备品牌", ImageID: mediaIDs["brand-soundcore.jpg"], IsActive: true},
		{PublicID: models.NewPublicID(), Name: "PulseFit", Slug: "pulsefit", Description: "智能穿戴品牌", ImageID: mediaIDs["brand-pulsefit.jpg"], IsActive: true},
	}
	for _, brand := range brands {
		var existing models.Brand
		if err := db.Where("slug = ?", brand.Slug).First(&existing).Error; err != nil {
			if err := db.Create(&brand).Error; err != nil {
				stdLog.Printf("Failed to create brand %s: %v", brand.Slug, err)
				continue
			}
			existing = brand
			stdLog.Printf("Created brand: %s", brand.Slug)
		}
		brandIDs[existing.Slug] = existing.ID
	}

	// 标签
	tagIDs := map[string]uint{}
	tags := []models.Tag{
		{PublicID: models.NewPublicID(), Name: "无线", Slug: "wireless", IsActive: true},
		{PublicID: models.NewPublicID(), Name: "降噪", Slug: "noise-cancelling", IsActive: true},
		{PublicID: models.NewPublicID(), Name: "防水", Slug: "waterproof", IsActive: true},
	}
	for _, tag := range tags {
		var existing models.Tag
		if err := db.Where("slug = ?", tag.Slug).First(&existing).Error; err != nil {
			if err := db.Create(&tag).Error; err != nil {
				stdLog.Printf("Failed to create tag %s: %v", tag.Slug, err)
				continue
			}
			existing = tag
			stdLog.Printf("Created tag: %s", tag.Slug)
		}
		tagIDs[existing.Slug] = existing.ID
	}

	// 属性与属性值
	colorID := upsertAttribute(db, stdLog, "颜色", "color")
	sizeID := upsertAttribute(db, stdLog, "表带尺寸", "band-size")
	avIDs := map[string]uint{}
	attributeVariants := []models.AttributeVariant{
		{PublicID: models.NewPublicID(), Name: "黑色", AttributeID: colorID, IsActive: true},
		{PublicID: models.NewPublicID(), Name: "白色", AttributeID: colorID, IsActive: true},
		{PublicID: models.NewPublicID(), Name: "S", AttributeID: sizeID, IsActive: true},
		{PublicID: models.NewPublicID(), Name: "L", AttributeID: sizeID, IsActive: true},
	}
	for _, av := range attributeVariants {
		var existing models.AttributeVariant
		if err := db.Where("attribute_id = ? AND name = ?", av.AttributeID, av.Name).First(&existing).Error; err != nil {
			if err := db.Create(&av).Error; err != nil {
				stdLog.Printf("Failed to create attribute variant %s: %v", av.Name, err)
				continue
			}
			existing = av
			stdLog.Printf("Created attribute variant: %s", av.Name)
		}
		avIDs[existing.Name] = existing.ID
	}

	now := time.Now()
	saleStart := now.Add(-24 * time.Hour)
	saleEnd := now.AddDate(0, 0, 7)

	// 商品与变体
	seedProduct(db, stdLog, models.Product{
		PublicID:         models.NewPublicID(),
		Name:             "无线降噪耳机",
		Slug:             "wireless-earbuds",
		ProductNo:        productNo(),
		Description:      "采用蓝牙 5.0，支持主动降噪，续航 24 小时。",
		ShortDescription: "主动降噪，长续航",
		Type:             constants.ProductTypeVariable,
		Status:           constants.ProductStatusPublished,
		StockStatus:      constants.StockStatusInStock,
		ReturnPolicy:     constants.ReturnPolicy7Days,
		ExchangePolicy:   constants.ExchangePolicy7Days,
		DeliveryTime:     intPtr(2),
		Rating:           decimal.NewFromFloat(4.6),
		TotalSold:        320,
		IsActive:         true,
		BrandID:          uintPtr(brandIDs["soundcore"]),
		CategoryID:       audioID,
		SellerID:         1,
	}, []models.ProductVariant{
		{
			PublicID:        models.NewPublicID(),
			SKU:             "EARBUDS-BLK",
			RegularPrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			DiscountPrice:   models.MoneyPtr(decimal.NewFromFloat(79.99)),
			DiscountStartAt: &saleStart,
			DiscountEndAt:   &saleEnd,
			Stock:           intPtr(50),
			StockStatus:     constants.StockStatusInStock,
			IsActive:        true,
		},
		{
			PublicID:     models.NewPublicID(),
			SKU:          "EARBUDS-WHT",
			RegularPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(109.99)),
			Stock:        intPtr(30),
			StockStatus:  constants.StockStatusInStock,
			IsActive:     true,
		},
	}, map[string][]uint{
		"EARBUDS-BLK": {avIDs["黑色"]},
		"EARBUDS-WHT": {avIDs["白色"]},
	}, []uint{mediaIDs["product-earbuds.jpg"], mediaIDs["product-earbuds-2.jpg"]},
		[]uint{tagIDs["wireless"], tagIDs["noise-cancelling"]})

	seedProduct(db, stdLog, models.Product{
		PublicID:         models.NewPublicID(),
		Name:             "智能运动手表",
		Slug:             "smart-watch",
		ProductNo:        productNo(),
		Description:      "全天候心率监测，多种运动模式，50 米防水。",
		ShortDescription: "健康监测，运动追踪",
		Type:             constants.ProductTypeVariable,
		Status:           constants.ProductStatusPublished,
		StockStatus:      constants.StockStatusInStock,
		ReturnPolicy:     constants.ReturnPolicy3Days,
		ExchangePolicy:   constants.ExchangePolicy3Days,
		DeliveryTime:     intPtr(3),
		Rating:           decimal.NewFromFloat(4.8),
		TotalSold:        540,
		IsActive:         true,
		BrandID:          uintPtr(brandIDs["pulsefit"]),
		CategoryID:       wearablesID,
		SellerID:         1,
	}, []models.ProductVariant{
		{
			PublicID:     models.NewPublicID(),
			SKU:          "WATCH-S",
			RegularPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(199.99)),
			Stock:        intPtr(20),
			StockStatus:  constants.StockStatusInStock,
			IsActive:     true,
		},
		{
			PublicID:        models.NewPublicID(),
			SKU:             "WATCH-L",
			RegularPrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(209.99)),
			DiscountPrice:   models.MoneyPtr(decimal.NewFromFloat(169.99)),
			DiscountStartAt: &saleStart,
			DiscountEndAt:   &saleEnd,
			Stock:           intPtr(15),
			StockStatus:     constants.StockStatusInStock,
			IsActive:        true,
		},
	}, map[string][]uint{
		"WATCH-S": {avIDs["S"], avIDs["黑色"]},
		"WATCH-L": {avIDs["L"], avIDs["黑色"]},
	}, []uint{mediaIDs["product-watch.jpg"]},
		[]uint{tagIDs["waterproof"]})

	seedProduct(db, stdLog, models.Product{
		PublicID:         models.NewPublicID(),
		Name:             "便携蓝牙音箱",
		Slug:             "bluetooth-speaker",
		ProductNo:        productNo(),
		Description:      "360 度环绕音效，IPX7 防水，12 小时续航。",
		ShortDescription: "环绕音效，户外防水",
		Type:             constants.ProductTypeSimple,
		Status:           constants.ProductStatusPublished,
		StockStatus:      constants.StockStatusOutOfStock,
		ReturnPolicy:     constants.ReturnPolicyInstant,
		ExchangePolicy:   constants.ExchangePolicyNone,
		Rating:           decimal.NewFromFloat(4.2),
		TotalSold:        180,
		IsActive:         true,
		BrandID:          uintPtr(brandIDs["soundcore"]),
		CategoryID:       audioID,
		SellerID:         1,
	}, []models.ProductVariant{
		{
			PublicID:     models.NewPublicID(),
			SKU:          "SPEAKER-STD",
			RegularPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(59.99)),
			Stock:        intPtr(0),
			StockStatus:  constants.StockStatusOutOfStock,
			IsActive:     true,
		},
	}, nil, []uint{mediaIDs["product-speaker.jpg"]},
		[]uint{tagIDs["wireless"], tagIDs["waterproof"]})

	fmt.Println("\n✅ Catalog seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 12 Media assets")
	fmt.Println("- 3 Categories (electronics -> audio/wearables)")
	fmt.Println("- 2 Brands, 3 Tags")
	fmt.Println("- 2 Attributes with 4 attribute variants")
	fmt.Println("- 3 Products with 5 variants (discount windows included)")
}

// productNo 生成唯一商品编号
func productNo() string {
	return "P-" + uuid.NewString()[:18]
}

func intPtr(v int) *int {
	return &v
}

func uintPtr(v uint) *uint {
	if v == 0 {
		return nil
	}
	return &v
}

func upsertCategory(db *gorm.DB, stdLog *log.Logger, category models.Category) uint {
	var existing models.Category
	if err := db.Where("slug = ?", category.Slug).First(&existing).Error; err != nil {
		if err := db.Create(&category).Error; err != nil {
			stdLog.Printf("Failed to create category %s: %v", category.Slug, err)
			return 0
		}
		stdLog.Printf("Created category: %s", category.Slug)
		return category.ID
	}
	return existing.ID
}

func upsertAttribute(db *gorm.DB, stdLog *log.Logger, name, slug string) uint {
	var existing models.Attribute
	if err := db.Where("slug = ?", slug).First(&existing).Error; err != nil {
		attribute := models.Attribute{PublicID: models.NewPublicID(), Name: name, Slug: slug, IsActive: true}
		if err := db.Create(&attribute).Error; err != nil {
			stdLog.Printf("Failed to create attribute %s: %v", slug, err)
			return 0
		}
		stdLog.Printf("Created attribute: %s", slug)
		return attribute.ID
	}
	return existing.ID
}

// seedProduct 创建商品及其变体、规格值、图片与标签关联
func seedProduct(
	db *gorm.DB,
	stdLog *log.Logger,
	product models.Product,
	variants []models.ProductVariant,
	variantAttrs map[string][]uint,
	imageMediaIDs []uint,
	productTagIDs []uint,
) {
	var existing models.Product
	if err := db.Where("slug = ?", product.Slug).First(&existing).Error; err == nil {
		stdLog.Printf("Product already exists: %s", product.Slug)
		return
	}

	if err := db.Create(&product).Error; err != nil {
		stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
		return
	}
	stdLog.Printf("Created product: %s", product.Slug)

	for i := range variants {
		variants[i].ProductID = product.ID
		if err := db.Create(&variants[i]).Error; err != nil {
			stdLog.Printf("Failed to create variant %s: %v", variants[i].SKU, err)
			continue
		}
		for _, avID := range variantAttrs[variants[i].SKU] {
			if avID == 0 {
				continue
			}
			link := map[string]interface{}{
				"product_variant_id":   variants[i].ID,
				"attribute_variant_id": avID,
			}
			if err := db.Table("product_variant_attribute_variants").Create(link).Error; err != nil {
				stdLog.Printf("Failed to link variant %s attr %d: %v", variants[i].SKU, avID, err)
			}
		}
	}

	for priority, mediaID := range imageMediaIDs {
		if mediaID == 0 {
			continue
		}
		image := models.ProductImage{
			ProductID: product.ID,
			MediaID:   mediaID,
			Priority:  priority,
			IsActive:  true,
		}
		if err := db.Create(&image).Error; err != nil {
			stdLog.Printf("Failed to create product image for %s: %v", product.Slug, err)
		}
	}

	for _, tagID := range productTagIDs {
		if tagID == 0 {
			continue
		}
		link := map[string]interface{}{
			"product_id": product.ID,
			"tag_id":     tagID,
		}
		if err := db.Table("product_tags").Create(link).Error; err != nil {
			stdLog.Printf("Failed to link product %s tag %d: %v", product.Slug, tagID, err)
		}
	}
}
