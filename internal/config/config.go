package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Arguments struct {
	ListenAddr           string        `env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret            string        `env:"JWT_SECRET" envDefault:"secret"`
	RateLimitRPS         int           `env:"RATE_LIMIT_RPS" envDefault:"0"`
	StoreFile            string        `env:"STORE_FILE" envDefault:"viorex_user.json"`
	DatabaseDSN          string        `env:"DATABASE_DSN" envDefault:""`
	RedisAddr            string        `env:"REDIS_ADDR" envDefault:""`
	TickInterval         time.Duration `env:"TICK_INTERVAL" envDefault:"8s"`
	NotifyTTL            time.Duration `env:"NOTIFY_TTL" envDefault:"4s"`
	TradeDelayMin        time.Duration `env:"TRADE_DELAY_MIN" envDefault:"1s"`
	TradeDelayMax        time.Duration `env:"TRADE_DELAY_MAX" envDefault:"1500ms"`
	AllowNegativeBalance bool          `env:"ALLOW_NEGATIVE_BALANCE" envDefault:"true"`
}

// ServerConfig модель настроек сервера
type ServerConfig struct {
	ListenAddr   string
	LogLevel     string
	JWTSecret    string
	RateLimitRPS int
}

// StoreConfig модель настроек хранилища аккаунта.
// Бэкенд выбирается по заполненным полям: DSN, потом Redis, потом файл.
type StoreConfig struct {
	FilePath    string
	DatabaseDSN string
	RedisAddr   string
}

// MarketConfig модель настроек симуляции рынка
type MarketConfig struct {
	TickInterval time.Duration
}

// TradeConfig модель настроек исполнения сделок
type TradeConfig struct {
	DelayMin             time.Duration
	DelayMax             time.Duration
	AllowNegativeBalance bool
}

// Config модель настроек сервиса
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Market MarketConfig
	Trade  TradeConfig
	// время жизни info/success уведомлений
	NotifyTTL time.Duration
}

func NewConfig() Config {
	// .env необязателен, переменные окружения имеют приоритет
	_ = godotenv.Load(".env")

	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		server    = pflag.StringP("server", "a", args.ListenAddr, "Server listen address in a form host:port.")
		logLevel  = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		secret    = pflag.StringP("secret", "s", args.JWTSecret, "Secret to JWT")
		storeFile = pflag.StringP("store", "f", args.StoreFile, "Path to the account slot file.")
		DSN       = pflag.StringP("dsn", "d", args.DatabaseDSN, "Database DSN (optional account backend)")
		redisAddr = pflag.StringP("redis", "r", args.RedisAddr, "Redis address (optional account backend)")
		tick      = pflag.DurationP("tick", "t", args.TickInterval, "Market tick interval.")
	)
	pflag.Parse()

	return Config{
		Server: ServerConfig{
			ListenAddr:   *server,
			LogLevel:     *logLevel,
			JWTSecret:    *secret,
			RateLimitRPS: args.RateLimitRPS,
		},
		Store: StoreConfig{
			FilePath:    *storeFile,
			DatabaseDSN: *DSN,
			RedisAddr:   *redisAddr,
		},
		Market: MarketConfig{
			TickInterval: *tick,
		},
		Trade: TradeConfig{
			DelayMin:             args.TradeDelayMin,
			DelayMax:             args.TradeDelayMax,
			AllowNegativeBalance: args.AllowNegativeBalance,
		},
		NotifyTTL: args.NotifyTTL,
	}
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr: "localhost:8080",
			LogLevel:   "info",
			JWTSecret:  "secret",
		},
		Store: StoreConfig{
			FilePath: "viorex_user.json",
		},
		Market: MarketConfig{
			TickInterval: 8 * time.Second,
		},
		Trade: TradeConfig{
			DelayMin:             time.Second,
			DelayMax:             1500 * time.Millisecond,
			AllowNegativeBalance: true,
		},
		NotifyTTL: 4 * time.Second,
	}
}
