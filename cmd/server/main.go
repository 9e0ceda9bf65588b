package main

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"depo-web/internal/auth"
	"depo-web/internal/config"
	"depo-web/internal/database"
	"depo-web/internal/server"
)

func main() {
	cfg := config.Load()

	logger := initLogger(cfg)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	database.Init(cfg)

	sessions := auth.NewManager(cfg, buildSessionStore(cfg))

	app := server.New(cfg, sessions)

	logger.Info("Sunucu çalışıyor", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}

func initLogger(cfg *config.Config) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.LogFormat == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func buildSessionStore(cfg *config.Config) auth.SessionStore {
	if cfg.RedisAddr == "" {
		zap.L().Warn("REDIS_ADDR tanımlı değil, oturumlar bellekte tutulacak")
		return auth.NewMemorySessionStore()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zap.L().Fatal("Redis bağlantısı kurulamadı", zap.Error(err))
	}

	zap.L().Info("Redis bağlantısı kuruldu", zap.String("addr", cfg.RedisAddr))
	return auth.NewRedisSessionStore(rdb)
}
