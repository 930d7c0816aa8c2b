package market

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viorex/viorex-exchange/internal/models"
)

// PeggedSymbol - пара, исключённая из случайного блуждания: цена
// постоянна, изменение всегда 0.0%
const PeggedSymbol = "VRDT/USDT"

// seedPairs возвращает стартовую таблицу рынка
func seedPairs() []models.PairData {
	return []models.PairData{
		{
			Symbol:     "VRT/USDT",
			Name:       "Viorex Token",
			Price:      "0.8500",
			PriceValue: decimal.RequireFromString("0.85"),
			Change:     "+5.20%",
			ChangeType: models.ChangePositive,
			Volume:     "2.5M",
			High:       decimal.RequireFromString("0.92"),
			Low:        decimal.RequireFromString("0.78"),
		},
		{
			Symbol:     PeggedSymbol,
			Name:       "Viorex Dollar",
			Price:      "1.0000",
			PriceValue: decimal.RequireFromString("1.00"),
			Change:     "0.00%",
			ChangeType: models.ChangeNeutral,
			Volume:     "1.8M",
			High:       decimal.RequireFromString("1.00"),
			Low:        decimal.RequireFromString("1.00"),
			Pegged:     true,
		},
		{
			Symbol:     "VRT/VRDT",
			Name:       "Viorex Pair",
			Price:      "0.8500",
			PriceValue: decimal.RequireFromString("0.85"),
			Change:     "+5.20%",
			ChangeType: models.ChangePositive,
			Volume:     "1.2M",
			High:       decimal.RequireFromString("0.90"),
			Low:        decimal.RequireFromString("0.80"),
		},
	}
}

// Table - таблица рынка в памяти: упорядоченный список пар,
// мутируется на месте каждым тиком. Между перезапусками не сохраняется.
type Table struct {
	mu    sync.RWMutex
	pairs []models.PairData
	rng   *rand.Rand
}

// NewTable создаёт таблицу со стартовыми значениями
func NewTable() *Table {
	return NewTableWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewTableWithSource создаёт таблицу с заданным источником случайности,
// чтобы тесты были детерминированными
func NewTableWithSource(src rand.Source) *Table {
	return &Table{
		pairs: seedPairs(),
		rng:   rand.New(src),
	}
}

// Tick применяет один шаг случайного блуждания ко всем парам, кроме
// привязанной: изменение из [-2%, +2%], цена умножается на (1 + change/100).
// Цена не ограничивается и может уходить сколь угодно далеко.
func (t *Table) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.pairs {
		pair := &t.pairs[i]
		if pair.Pegged {
			continue
		}

		change := (t.rng.Float64() - 0.5) * 4
		factor := decimal.NewFromFloat(1 + change/100)
		pair.PriceValue = pair.PriceValue.Mul(factor)

		pair.Price = pair.PriceValue.StringFixed(4)
		pair.Change = fmt.Sprintf("%+.2f%%", change)
		if change >= 0 {
			pair.ChangeType = models.ChangePositive
		} else {
			pair.ChangeType = models.ChangeNegative
		}
		if pair.PriceValue.GreaterThan(pair.High) {
			pair.High = pair.PriceValue
		}
		if pair.PriceValue.LessThan(pair.Low) {
			pair.Low = pair.PriceValue
		}
	}
}

// List возвращает копию таблицы в исходном порядке
func (t *Table) List() []models.PairData {
	t.mu.RLock()
	defer t.mu.RUnlock()

	pairs := make([]models.PairData, len(t.pairs))
	copy(pairs, t.pairs)
	return pairs
}

// Search возвращает пары, у которых базовый актив или название содержат
// запрос без учёта регистра. Пустой запрос возвращает всю таблицу.
// Матчим базовый актив, а не весь символ: иначе запрос "vrdt" цеплял бы
// котируемую ногу VRT/VRDT.
func (t *Table) Search(query string) []models.PairData {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return t.List()
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	var found []models.PairData
	for i := range t.pairs {
		pair := t.pairs[i]
		if strings.Contains(strings.ToLower(pair.BaseAsset()), query) ||
			strings.Contains(strings.ToLower(pair.Name), query) {
			found = append(found, pair)
		}
	}
	return found
}

// Get возвращает копию пары по символу
func (t *Table) Get(symbol string) (models.PairData, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := range t.pairs {
		if strings.EqualFold(t.pairs[i].Symbol, symbol) {
			return t.pairs[i], true
		}
	}
	return models.PairData{}, false
}
