// application/bootstrap/app.go
package bootstrap

import (
	"sync"
	"time"

	"euro-rate-bot/application/scheduler"
	"euro-rate-bot/internal/core/domain/rates"
	"euro-rate-bot/internal/core/domain/recipients"
	"euro-rate-bot/internal/delivery/api"
	"euro-rate-bot/internal/delivery/telegram/app/bot"

	"github.com/prometheus/client_golang/prometheus"
)

// RateUpdateJob имя задачи планировщика, проверяющей курс
const RateUpdateJob = "rate_update"

// Application - собранное приложение: бот, рассылка, планировщик и сервер статуса
type Application struct {
	source     *rates.Source
	recipients *recipients.Set
	registry   *prometheus.Registry

	telegramBot  *bot.TelegramBot
	scheduler    *scheduler.Scheduler
	statusServer *api.Server

	mu        sync.RWMutex
	running   bool
	startTime time.Time
}

// Source возвращает источник курса
func (app *Application) Source() *rates.Source {
	return app.source
}

// Recipients возвращает множество получателей рассылки
func (app *Application) Recipients() *recipients.Set {
	return app.recipients
}

// Scheduler возвращает планировщик
func (app *Application) Scheduler() *scheduler.Scheduler {
	return app.scheduler
}

// Registry возвращает реестр метрик приложения
func (app *Application) Registry() *prometheus.Registry {
	return app.registry
}

// IsRunning true между Run и завершением
func (app *Application) IsRunning() bool {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.running
}

// Status краткое состояние приложения для логов
func (app *Application) Status() map[string]interface{} {
	app.mu.RLock()
	defer app.mu.RUnlock()

	status := map[string]interface{}{
		"running":    app.running,
		"recipients": app.recipients.Len(),
		"polling":    app.telegramBot.IsPolling(),
	}
	if app.running {
		status["uptime"] = time.Since(app.startTime).Truncate(time.Second).String()
	}
	if last, ok := app.source.Last(); ok {
		status["buy"] = last.Buy.String()
		status["sell"] = last.Sell.String()
	}
	return status
}
