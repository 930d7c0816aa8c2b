package main

import (
	"fmt"

	"github.com/viorex/viorex-exchange/internal/app"
	"github.com/viorex/viorex-exchange/internal/config"
	"github.com/viorex/viorex-exchange/internal/logger"
)

func main() {
	// загрузка конфига
	config := config.NewConfig()
	// инициализация логгера
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		panic(fmt.Sprintf("can't initialize logger: %s ", err.Error()))
	}
	defer logger.Sync()
	// запуск сервиса
	app.Run(config)
}
