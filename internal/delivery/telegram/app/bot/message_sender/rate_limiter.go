// internal/delivery/telegram/app/bot/message_sender/rate_limiter.go
package message_sender

import (
	"context"
	"sync"
	"time"
)

// RateLimiter выдерживает минимальный интервал между отправками
type RateLimiter struct {
	interval time.Duration
	lastSend time.Time
	mu       sync.Mutex
}

// NewRateLimiter создает новый ограничитель
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		lastSend: time.Now().Add(-interval), // Можно отправлять сразу
	}
}

// Wait блокируется до освобождения слота или отмены контекста
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl == nil || rl.interval <= 0 {
		return ctx.Err()
	}

	rl.mu.Lock()
	now := time.Now()
	slot := rl.lastSend.Add(rl.interval)
	if slot.Before(now) {
		slot = now
	}
	rl.lastSend = slot
	rl.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
