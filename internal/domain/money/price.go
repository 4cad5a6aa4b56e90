package money

import "github.com/shopspring/decimal"

// PriceScale は価格の小数点以下の桁数。価格列の NUMERIC(10, 2) に合わせる
const PriceScale = 2

// MaxPrice は価格の上限（この値を含まない）
var MaxPrice = decimal.New(1, 8)

// IsValidPrice は価格が0以上 MaxPrice 未満で、小数点以下 PriceScale 桁以内かを返す
func IsValidPrice(p decimal.Decimal) bool {
	if p.IsNegative() || p.GreaterThanOrEqual(MaxPrice) {
		return false
	}
	return p.Equal(p.Round(PriceScale))
}
