// application/bootstrap/lifecycle.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"euro-rate-bot/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

// Run проверяет токен, запускает polling, планировщик и сервер статуса
// и блокируется до отмены ctx. Затем выполняет graceful shutdown.
func (app *Application) Run(ctx context.Context) error {
	app.mu.Lock()
	if app.running {
		app.mu.Unlock()
		return errors.New("приложение уже запущено")
	}
	app.running = true
	app.startTime = time.Now()
	app.mu.Unlock()

	logger.Info("🚀 Запуск приложения...")

	if err := app.telegramBot.Prepare(ctx); err != nil {
		app.setStopped()
		return fmt.Errorf("подготовка бота: %w", err)
	}

	if err := app.telegramBot.StartPolling(ctx); err != nil {
		app.setStopped()
		return fmt.Errorf("запуск polling: %w", err)
	}

	app.scheduler.Start(ctx)

	if app.statusServer != nil {
		app.statusServer.Start()
	}

	logger.Info("✅ Приложение запущено и работает: %v", app.Status())
	<-ctx.Done()
	logger.Info("🛑 Получен сигнал завершения...")

	return app.shutdownWithTimeout(shutdownTimeout)
}

// shutdownWithTimeout выполняет graceful shutdown с таймаутом
func (app *Application) shutdownWithTimeout(timeout time.Duration) error {
	logger.Info("⏳ Начинаем graceful shutdown (таймаут: %v)...", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- app.shutdown(ctx)
	}()

	select {
	case err := <-done:
		if err == nil {
			logger.Info("✅ Graceful shutdown завершен успешно")
		}
		return err
	case <-ctx.Done():
		logger.Warn("⚠️  Таймаут graceful shutdown, принудительное завершение")
		return ctx.Err()
	}
}

// shutdown останавливает компоненты в обратном порядке
func (app *Application) shutdown(ctx context.Context) error {
	var errs []error

	// 1. Сервер статуса
	if app.statusServer != nil {
		if err := app.statusServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("сервер статуса: %w", err))
		}
	}

	// 2. Планировщик
	app.scheduler.Stop()

	// 3. Polling
	app.telegramBot.StopPolling()

	logger.Info("📊 Состояние перед остановкой: %v", app.Status())

	app.mu.RLock()
	uptime := time.Since(app.startTime)
	app.mu.RUnlock()
	app.setStopped()

	logger.Info("✅ Приложение остановлено. Время работы: %v", uptime.Truncate(time.Second))
	return errors.Join(errs...)
}

func (app *Application) setStopped() {
	app.mu.Lock()
	app.running = false
	app.mu.Unlock()
}
