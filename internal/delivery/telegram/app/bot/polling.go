// internal/delivery/telegram/app/bot/polling.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"euro-rate-bot/pkg/logger"
)

// PollingOptions параметры long polling
type PollingOptions struct {
	Timeout       int           // timeout getUpdates в секундах
	Limit         int           // максимум обновлений за запрос
	RetryInterval time.Duration // пауза после ошибки запроса
}

// PollingClient - цикл получения обновлений
type PollingClient struct {
	bot  *TelegramBot
	opts PollingOptions

	mu      sync.Mutex
	offset  int
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	workers sync.WaitGroup
}

// NewPollingClient создает новый polling клиент
func NewPollingClient(bot *TelegramBot, opts PollingOptions) *PollingClient {
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 5 * time.Second
	}
	return &PollingClient{
		bot:  bot,
		opts: opts,
	}
}

// Start запускает polling обновлений в фоновой горутине
func (pc *PollingClient) Start(ctx context.Context) error {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.running {
		return fmt.Errorf("polling already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	pc.cancel = cancel
	pc.done = make(chan struct{})
	pc.running = true

	logger.Info("🔄 Starting Telegram bot polling...")
	go pc.pollLoop(ctx)

	return nil
}

// Stop останавливает polling и ждет завершения обработчиков
func (pc *PollingClient) Stop() {
	pc.mu.Lock()
	if !pc.running {
		pc.mu.Unlock()
		return
	}
	cancel, done := pc.cancel, pc.done
	pc.mu.Unlock()

	cancel()
	<-done
	logger.Info("🛑 Telegram bot polling остановлен")
}

// IsRunning true, пока цикл polling активен
func (pc *PollingClient) IsRunning() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.running
}

// Offset следующий ожидаемый update_id
func (pc *PollingClient) Offset() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.offset
}

// pollLoop основной цикл polling
func (pc *PollingClient) pollLoop(ctx context.Context) {
	defer func() {
		pc.workers.Wait()
		pc.mu.Lock()
		pc.running = false
		close(pc.done)
		pc.mu.Unlock()
	}()

	for {
		if ctx.Err() != nil {
			return
		}

		if err := pc.fetchUpdates(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("❌ Error fetching updates: %v", err)
			select {
			case <-time.After(pc.opts.RetryInterval):
			case <-ctx.Done():
				return
			}
		}
	}
}

// fetchUpdates получает пачку обновлений и раздает их обработчикам
func (pc *PollingClient) fetchUpdates(ctx context.Context) error {
	updates, err := pc.bot.GetPollingClient().GetUpdates(ctx, pc.Offset(), pc.opts.Timeout, pc.opts.Limit)
	if err != nil {
		return err
	}

	for _, update := range updates {
		pc.mu.Lock()
		if update.UpdateID >= pc.offset {
			pc.offset = update.UpdateID + 1
		}
		pc.mu.Unlock()

		pc.workers.Add(1)
		go func() {
			defer pc.workers.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.Error("❌ Panic handling update %d: %v", update.UpdateID, r)
				}
			}()

			if err := pc.bot.HandleUpdate(ctx, update); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("❌ Error handling update %d: %v", update.UpdateID, err)
			}
		}()
	}
	return nil
}
