package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/viorex/viorex-exchange/internal/config"
	"github.com/viorex/viorex-exchange/internal/logger"
	"github.com/viorex/viorex-exchange/internal/market"
	"github.com/viorex/viorex-exchange/internal/network/router"
	"github.com/viorex/viorex-exchange/internal/network/stream"
	"github.com/viorex/viorex-exchange/internal/notifier"
	"github.com/viorex/viorex-exchange/internal/storage"
	"github.com/viorex/viorex-exchange/internal/worker"
)

func Run(config config.Config) {

	accounts, err := newAccountStorage(config.Store)
	if err != nil {
		logger.Panic("can't initialize account storage", err.Error())
	}
	defer accounts.Close()

	table := market.NewTable()
	notifications := notifier.NewHub(config.NotifyTTL)
	marketStream := stream.NewHub()

	router := router.NewRouter(config, accounts, table, notifications, marketStream)

	server := &http.Server{
		Addr:    config.Server.ListenAddr,
		Handler: router.HandleRouter(),
	}
	// Создание и запуск воркера симуляции рынка
	worker := worker.NewMarketWorker(table, marketStream, config.Market.TickInterval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info(
			"Starting server config:", config,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("error listen server", err.Error())
		}
	}()

	<-stop
	logger.Info("Shutdown server")
	worker.Stop()
	marketStream.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutdown server", err.Error())
	}
	logger.Info("Server stopped")
}

// Выбор бэкенда слота аккаунта по конфигу: PostgreSQL, затем Redis,
// затем файл, иначе память.
func newAccountStorage(cfg config.StoreConfig) (storage.AccountStorage, error) {
	switch {
	case cfg.DatabaseDSN != "":
		database, err := storage.NewDatabase(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := database.Initialize(); err != nil {
			return nil, err
		}
		return storage.NewPostgresStorage(database), nil
	case cfg.RedisAddr != "":
		return storage.NewRedisStorage(cfg.RedisAddr)
	case cfg.FilePath != "":
		return storage.NewFileStorage(cfg.FilePath), nil
	default:
		return storage.NewMemoryStorage(), nil
	}
}
