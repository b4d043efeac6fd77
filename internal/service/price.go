package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// EffectivePrice 计算某时刻的有效售价。折扣缺失或为零时返回原价；
// 折扣生效窗口为闭区间，单边窗口只校验存在的一侧，双边缺失恒生效。
func EffectivePrice(regular decimal.Decimal, discount *decimal.Decimal, start, end *time.Time, at time.Time) decimal.Decimal {
	if discount == nil || discount.IsZero() {
		return regular
	}

	var valid bool
	switch {
	case start == nil && end == nil:
		valid = true
	case start != nil && end != nil:
		valid = !at.Before(*start) && !at.After(*end)
	case start != nil:
		valid = !at.Before(*start)
	default:
		valid = !at.After(*end)
	}

	if valid {
		return *discount
	}
	return regular
}

// DiscountPercent 折扣百分比 (regular-discount)/regular*100，四舍五入取整。
// 原价非正或折扣为零时不产生百分比，返回 false。
func DiscountPercent(regular, discount decimal.Decimal) (int, bool) {
	if regular.LessThanOrEqual(decimal.Zero) || discount.IsZero() {
		return 0, false
	}
	pct := regular.Sub(discount).
		Div(regular).
		Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart()), true
}
