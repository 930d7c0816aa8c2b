package models

import "github.com/shopspring/decimal"

// Типы изменения цены пары
const (
	ChangePositive = "positive"
	ChangeNeutral  = "neutral"
	ChangeNegative = "negative"
)

// PairData - запись торговой пары в таблице рынка.
// Price, Change, High и Low - отображаемые значения, пересчитываются
// из PriceValue на каждом тике.
type PairData struct {
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name"`
	Price      string          `json:"price"`
	PriceValue decimal.Decimal `json:"priceValue"`
	Change     string          `json:"change"`
	ChangeType string          `json:"changeType"`
	Volume     string          `json:"volume"`
	High       decimal.Decimal `json:"high"`
	Low        decimal.Decimal `json:"low"`
	Pegged     bool            `json:"-"`
}

// BaseAsset - базовый актив пары ("VRT" для "VRT/USDT")
func (p *PairData) BaseAsset() string {
	for i := 0; i < len(p.Symbol); i++ {
		if p.Symbol[i] == '/' {
			return p.Symbol[:i]
		}
	}
	return p.Symbol
}

// QuoteAsset - котируемый актив пары ("USDT" для "VRT/USDT")
func (p *PairData) QuoteAsset() string {
	for i := 0; i < len(p.Symbol); i++ {
		if p.Symbol[i] == '/' {
			return p.Symbol[i+1:]
		}
	}
	return ""
}
