package worker

import (
	"context"
	"sync"
	"time"

	"github.com/viorex/viorex-exchange/internal/logger"
	"github.com/viorex/viorex-exchange/internal/market"
	"github.com/viorex/viorex-exchange/internal/network/stream"
)

// MarketWorker - фоновый воркер симуляции рынка: раз в интервал
// двигает цены и рассылает свежий срез подписчикам.
// Догона нет: пропущенный тик просто пропущен, каждый тик независим.
type MarketWorker struct {
	Market       *market.Table
	Stream       *stream.Hub
	WaitGroup    sync.WaitGroup
	QuitChan     chan struct{}
	TickInterval time.Duration
}

// NewMarketWorker - конструктор воркера обновления цен
func NewMarketWorker(table *market.Table, hub *stream.Hub, interval time.Duration) *MarketWorker {
	return &MarketWorker{
		Market:       table,
		Stream:       hub,
		QuitChan:     make(chan struct{}),
		TickInterval: interval,
	}
}

// Start - запускает воркер в фоне
func (w *MarketWorker) Start(ctx context.Context) {
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает воркер
func (w *MarketWorker) Stop() {
	close(w.QuitChan)
	w.WaitGroup.Wait()
}

// Run - основная рабочая логика
func (w *MarketWorker) Run(ctx context.Context) {
	defer w.WaitGroup.Done()

	ticker := time.NewTicker(w.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("MarketWorker signal stop")
			return
		case <-ticker.C:
			w.ProcessTick()
		}
	}
}

// ProcessTick - один шаг симуляции
func (w *MarketWorker) ProcessTick() {
	w.Market.Tick()
	if w.Stream != nil {
		w.Stream.Broadcast(w.Market.List())
	}
	logger.Debug("Market tick applied")
}
