package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/catalog-next/internal/models"
	"github.com/catalog-next/internal/repository"
)

// ProductSummaryView 商品摘要响应：列表、搜索、分类榜单共用的扁平结构。
// 价格与折扣字段在商品没有任何启用变体时整体缺失（null），不得输出为零。
type ProductSummaryView struct {
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	PublicID         string          `json:"public_id"`
	Rating           decimal.Decimal `json:"rating"`
	RegularPriceMin  *models.Money   `json:"regular_price_min"`
	RegularPriceMax  *models.Money   `json:"regular_price_max"`
	DiscountPriceMin *models.Money   `json:"discount_price_min"`
	DiscountPriceMax *models.Money   `json:"discount_price_max"`
	Discount         *int            `json:"discount"`
	TotalSold        int             `json:"total_sold"`
}

// BrandRef 品牌引用
type BrandRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryRef 分类引用
type CategoryRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// MediaView 媒体响应
type MediaView struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
	AltText  string `json:"alt_text"`
}

// AttributeVariantView 属性值响应（携带所属属性引用）
type AttributeVariantView struct {
	PublicID  string `json:"public_id"`
	Name      string `json:"name"`
	Attribute struct {
		PublicID string `json:"public_id"`
		Name     string `json:"name"`
	} `json:"attribute"`
}

// VariantView 变体响应，price 为投影时刻的有效售价
type VariantView struct {
	PublicID           string                 `json:"public_id"`
	SKU                string                 `json:"sku"`
	RegularPrice       models.Money           `json:"regular_price"`
	DiscountPrice      *models.Money          `json:"discount_price"`
	Price              models.Money           `json:"price"`
	DiscountPercentage *int                   `json:"discount_percentage"`
	Stock              *int                   `json:"stock"`
	StockStatus        string                 `json:"stock_status"`
	AttributeVariants  []AttributeVariantView `json:"attribute_variants"`
}

// AttributeView 属性响应（仅含商品变体实际使用的属性）
type AttributeView struct {
	Name     string      `json:"name"`
	Slug     string      `json:"slug"`
	PublicID string      `json:"public_id"`
	Variants []MemberRef `json:"variants"`
}

// MemberRef 轻量成员引用
type MemberRef struct {
	PublicID string `json:"public_id"`
	Name     string `json:"name"`
}

// ProductDetailView 商品详情响应
type ProductDetailView struct {
	Name             string          `json:"name"`
	PublicID         string          `json:"public_id"`
	Description      string          `json:"description"`
	StockStatus      string          `json:"stock_status"`
	Slug             string          `json:"slug"`
	Rating           decimal.Decimal `json:"rating"`
	Variants         []VariantView   `json:"variants"`
	Brand            *BrandRef       `json:"brand"`
	Category         CategoryRef     `json:"category"`
	Images           []MediaView     `json:"images"`
	Attributes       []AttributeView `json:"attributes"`
	RegularPriceMin  *models.Money   `json:"regular_price_min"`
	RegularPriceMax  *models.Money   `json:"regular_price_max"`
	DiscountPriceMin *models.Money   `json:"discount_price_min"`
	DiscountPriceMax *models.Money   `json:"discount_price_max"`
	Discount         *int            `json:"discount"`
	ReturnPolicy     string          `json:"return_policy"`
	ExchangePolicy   string          `json:"exchange_policy"`
	DeliveryTime     *int            `json:"delivery_time"`
	TotalSold        int             `json:"total_sold"`
}

// CategoryView 分类响应
type CategoryView struct {
	Name   string    `json:"name"`
	Image  MediaView `json:"image"`
	Banner MediaView `json:"banner"`
}

// CategoryTopProducts 分类榜单响应
type CategoryTopProducts struct {
	TopRated []ProductSummaryView `json:"top_rated"`
	TopSold  []ProductSummaryView `json:"top_sold"`
}

func newMediaView(m models.Media) MediaView {
	return MediaView{
		PublicID: m.PublicID,
		URL:      m.StorageKey,
		AltText:  m.AltText,
	}
}

// moneyFromNull 聚合列转金额指针，空值保持缺失
func moneyFromNull(d decimal.NullDecimal) *models.Money {
	if !d.Valid {
		return nil
	}
	return models.MoneyPtr(d.Decimal)
}

// percentFromNull 聚合折扣百分比转整数指针；空值或零百分比保持缺失
func percentFromNull(d decimal.NullDecimal) *int {
	if !d.Valid || d.Decimal.IsZero() {
		return nil
	}
	pct := int(d.Decimal.Round(0).IntPart())
	if pct == 0 {
		return nil
	}
	return &pct
}

// NewProductSummaryView 由商品实体与变体聚合投影摘要结构
func NewProductSummaryView(product models.Product, stats *repository.VariantStats) ProductSummaryView {
	view := ProductSummaryView{
		Name:      product.Name,
		Slug:      product.Slug,
		PublicID:  product.PublicID,
		Rating:    product.Rating,
		TotalSold: product.TotalSold,
	}
	if stats == nil {
		return view
	}
	view.RegularPriceMin = moneyFromNull(stats.RegularPriceMin)
	view.RegularPriceMax = moneyFromNull(stats.RegularPriceMax)
	view.DiscountPriceMin = moneyFromNull(stats.DiscountPriceMin)
	view.DiscountPriceMax = moneyFromNull(stats.DiscountPriceMax)
	view.Discount = percentFromNull(stats.MaxDiscountPercentage)
	return view
}

// newVariantView 投影单个变体，有效售价按 at 时刻计算
func newVariantView(variant models.ProductVariant, at time.Time) VariantView {
	view := VariantView{
		PublicID:      variant.PublicID,
		SKU:           variant.SKU,
		RegularPrice:  variant.RegularPrice,
		DiscountPrice: variant.DiscountPrice,
		Stock:         variant.Stock,
		StockStatus:   variant.StockStatus,
	}

	var discount *decimal.Decimal
	if variant.DiscountPrice != nil {
		d := variant.DiscountPrice.Decimal
		discount = &d
	}
	view.Price = models.NewMoneyFromDecimal(EffectivePrice(
		variant.RegularPrice.Decimal,
		discount,
		variant.DiscountStartAt,
		variant.DiscountEndAt,
		at,
	))

	if discount != nil {
		if pct, ok := DiscountPercent(variant.RegularPrice.Decimal, *discount); ok {
			view.DiscountPercentage = &pct
		}
	}

	view.AttributeVariants = make([]AttributeVariantView, 0, len(variant.AttributeVariants))
	for _, av := range variant.AttributeVariants {
		item := AttributeVariantView{PublicID: av.PublicID, Name: av.Name}
		if av.Attribute != nil {
			item.Attribute.PublicID = av.Attribute.PublicID
			item.Attribute.Name = av.Attribute.Name
		}
		view.AttributeVariants = append(view.AttributeVariants, item)
	}
	return view
}

// detailPriceAggregates 在内存中汇总详情页的价格区间与最大折扣百分比。
// 原价为 0 的变体不参与百分比计算；无任何折扣时折扣字段整体缺失。
func detailPriceAggregates(variants []models.ProductVariant) (regMin, regMax, discMin, discMax *models.Money, discount *int) {
	if len(variants) == 0 {
		return nil, nil, nil, nil, nil
	}

	var maxPct *decimal.Decimal
	for i := range variants {
		regular := variants[i].RegularPrice.Decimal
		if regMin == nil || regular.LessThan(regMin.Decimal) {
			regMin = models.MoneyPtr(regular)
		}
		if regMax == nil || regular.GreaterThan(regMax.Decimal) {
			regMax = models.MoneyPtr(regular)
		}

		if variants[i].DiscountPrice == nil || variants[i].DiscountPrice.IsZero() {
			continue
		}
		disc := variants[i].DiscountPrice.Decimal
		if discMin == nil || disc.LessThan(discMin.Decimal) {
			discMin = models.MoneyPtr(disc)
		}
		if discMax == nil || disc.GreaterThan(discMax.Decimal) {
			discMax = models.MoneyPtr(disc)
		}

		if regular.GreaterThan(decimal.Zero) {
			pct := regular.Sub(disc).Div(regular).Mul(decimal.NewFromInt(100))
			if maxPct == nil || pct.GreaterThan(*maxPct) {
				maxPct = &pct
			}
		}
	}

	if maxPct != nil {
		rounded := int(maxPct.Round(0).IntPart())
		if rounded != 0 {
			discount = &rounded
		}
	}
	return regMin, regMax, discMin, discMax, discount
}

// NewProductDetailView 投影商品详情。attributes 为商品变体实际使用的属性集合，
// 已按名称排序；at 用于变体有效售价计算。
func NewProductDetailView(product *models.Product, attributes []models.Attribute, at time.Time) *ProductDetailView {
	view := &ProductDetailView{
		Name:           product.Name,
		PublicID:       product.PublicID,
		Description:    product.Description,
		StockStatus:    product.StockStatus,
		Slug:           product.Slug,
		Rating:         product.Rating,
		ReturnPolicy:   product.ReturnPolicy,
		ExchangePolicy: product.ExchangePolicy,
		DeliveryTime:   product.DeliveryTime,
		TotalSold:      product.TotalSold,
	}

	if product.Brand != nil {
		view.Brand = &BrandRef{Name: product.Brand.Name, Slug: product.Brand.Slug}
	}
	view.Category = CategoryRef{Name: product.Category.Name, Slug: product.Category.Slug}

	view.Images = make([]MediaView, 0, len(product.Images))
	for _, image := range product.Images {
		view.Images = append(view.Images, newMediaView(image.Media))
	}

	view.Variants = make([]VariantView, 0, len(product.Variants))
	for _, variant := range product.Variants {
		view.Variants = append(view.Variants, newVariantView(variant, at))
	}

	view.RegularPriceMin, view.RegularPriceMax,
		view.DiscountPriceMin, view.DiscountPriceMax,
		view.Discount = detailPriceAggregates(product.Variants)

	view.Attributes = make([]AttributeView, 0, len(attributes))
	for _, attribute := range attributes {
		item := AttributeView{
			Name:     attribute.Name,
			Slug:     attribute.Slug,
			PublicID: attribute.PublicID,
			Variants: make([]MemberRef, 0, len(attribute.Variants)),
		}
		for _, av := range attribute.Variants {
			item.Variants = append(item.Variants, MemberRef{PublicID: av.PublicID, Name: av.Name})
		}
		view.Attributes = append(view.Attributes, item)
	}
	sort.Slice(view.Attributes, func(i, j int) bool {
		return view.Attributes[i].Name < view.Attributes[j].Name
	})

	return view
}
