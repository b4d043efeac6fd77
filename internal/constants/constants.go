package constants

// 商品生命周期状态常量
const (
	ProductStatusDraft     = "draft"
	ProductStatusPending   = "pending"
	ProductStatusPublished = "published"
	ProductStatusArchived  = "archived"
)

// 库存状态常量
const (
	StockStatusInStock    = "in_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// 商品类型常量
const (
	ProductTypeSimple   = "simple"
	ProductTypeVariable = "variable"
)

// 退货政策常量
const (
	ReturnPolicyInstant = "instant"
	ReturnPolicy3Days   = "3_days"
	ReturnPolicy7Days   = "7_days"
)

// 换货政策常量
const (
	ExchangePolicyNone  = "not_exchangeable"
	ExchangePolicy3Days = "3_days"
	ExchangePolicy7Days = "7_days"
)

// 异步任务类型常量
const (
	TaskStockStatusRollup = "catalog:stock_status_rollup"
)

// 队列名称常量
const (
	QueueDefault = "default"
)
