// application/cmd/bot/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"euro-rate-bot/application/bootstrap"
	"euro-rate-bot/internal/infrastructure/config"
	"euro-rate-bot/pkg/logger"
)

var (
	version   = "1.0.0"
	buildTime = "неизвестно"
)

func main() {
	var (
		cfgPath     string
		logLevel    string
		showVersion bool
	)

	flag.StringVar(&cfgPath, "config", ".env", "Путь к файлу конфигурации")
	flag.StringVar(&logLevel, "log-level", "", "Уровень логирования: debug, info, warn, error (переопределяет .env)")
	flag.BoolVar(&showVersion, "version", false, "Показать версию")
	flag.Parse()

	if showVersion {
		fmt.Printf("Euro Rate Bot v%s (сборка: %s)\n", version, buildTime)
		return
	}

	// 1. Загружаем конфигурацию
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("❌ Не удалось загрузить конфигурацию: %v", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	// 2. Логгер
	if err := initLogger(cfg); err != nil {
		fmt.Printf("❌ Не удалось инициализировать логгер: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("🚀 Запуск Euro Rate Bot v%s", version)
	logger.Info("📅 Время сборки: %s", buildTime)
	cfg.PrintSummary()

	// 3. Сборка приложения
	app, err := bootstrap.NewAppBuilder().
		WithConfig(cfg).
		Build()
	if err != nil {
		logger.Error("❌ Не удалось собрать приложение: %v", err)
		os.Exit(1)
	}

	// 4. Graceful shutdown по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logger.Error("❌ Приложение завершилось с ошибкой: %v", err)
		logger.Close()
		os.Exit(1)
	}

	logger.Info("👋 Euro Rate Bot остановлен")
}

// initLogger пишет в файл, а при ошибке откатывается на консоль
func initLogger(cfg *config.Config) error {
	opts := logger.Options{
		Level:     cfg.Logging.Level,
		DebugMode: cfg.Logging.DebugMode,
	}
	if cfg.Logging.ToFile {
		opts.FilePath = cfg.Logging.File
	}

	if err := logger.InitGlobal(opts); err != nil {
		fmt.Printf("❌ Не удалось инициализировать файловый логгер: %v. Переход на консольный...\n", err)
		opts.FilePath = ""
		return logger.InitGlobal(opts)
	}
	return nil
}
