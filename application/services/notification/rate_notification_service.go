// application/services/notification/rate_notification_service.go
package notification

import (
	"context"
	"time"

	"euro-rate-bot/internal/core/domain/rates"
	"euro-rate-bot/internal/core/domain/recipients"
	"euro-rate-bot/internal/delivery/telegram/app/bot/message_sender"
	"euro-rate-bot/pkg/logger"

	"github.com/google/uuid"
)

// Formatter текст уведомления об изменении курса
type Formatter interface {
	Changed(obs rates.Observation, at time.Time) string
}

// DeliveryObserver учитывает результаты рассылки (метрики)
type DeliveryObserver interface {
	ObserveDelivery(ok bool)
	SetRecipients(n int)
}

// TickStatus итог одного такта
type TickStatus string

const (
	TickUnavailable TickStatus = "unavailable"
	TickUnchanged   TickStatus = "unchanged"
	TickBroadcast   TickStatus = "broadcast"
)

// TickReport отчет о такте рассылки
type TickReport struct {
	RoundID   string
	Status    TickStatus
	Delivered []recipients.ID
	Failed    []recipients.ID
	Skipped   []recipients.ID // не обработаны из-за отмены контекста
}

// RateNotificationService - проверяет курс и рассылает уведомление об изменении
type RateNotificationService struct {
	source     rates.Poller
	recipients *recipients.Set
	sender     message_sender.MessageSender
	formatter  Formatter
	observer   DeliveryObserver
}

// NewRateNotificationService создает новый сервис. observer может быть nil.
func NewRateNotificationService(
	source rates.Poller,
	set *recipients.Set,
	sender message_sender.MessageSender,
	formatter Formatter,
	observer DeliveryObserver,
) *RateNotificationService {
	return &RateNotificationService{
		source:     source,
		recipients: set,
		sender:     sender,
		formatter:  formatter,
		observer:   observer,
	}
}

// Tick опрашивает источник и при изменении курса рассылает уведомление
// всем текущим получателям. Получатель, которому не удалось доставить
// сообщение, удаляется из рассылки; остальные доставки продолжаются.
func (s *RateNotificationService) Tick(ctx context.Context) TickReport {
	report := TickReport{RoundID: uuid.NewString()}

	result := s.source.Poll(ctx)
	switch {
	case !result.Fetched():
		report.Status = TickUnavailable
		logger.Debug("⏭️ [%s] Курс недоступен, рассылки нет", report.RoundID)
		return report
	case !result.Changed:
		report.Status = TickUnchanged
		logger.Debug("⏭️ [%s] Курс не изменился", report.RoundID)
		return report
	}

	report.Status = TickBroadcast
	text := s.formatter.Changed(result.Observation, result.FetchedAt)
	targets := s.recipients.Snapshot()

	logger.Info("📨 [%s] Рассылка изменения курса: %d получателей", report.RoundID, len(targets))

	for i, id := range targets {
		if ctx.Err() != nil {
			report.Skipped = append(report.Skipped, targets[i:]...)
			break
		}

		err := s.sender.Send(ctx, int64(id), text, nil)
		if err == nil {
			report.Delivered = append(report.Delivered, id)
			s.observeDelivery(true)
			continue
		}

		// Остановка процесса не считается ошибкой доставки получателю
		if ctx.Err() != nil {
			report.Skipped = append(report.Skipped, targets[i:]...)
			break
		}

		report.Failed = append(report.Failed, id)
		s.observeDelivery(false)
		s.recipients.Remove(id)

		if message_sender.IsBlocked(err) {
			logger.Warn("🚫 [%s] Чат %d недоступен, удален из рассылки: %v", report.RoundID, id, err)
		} else {
			logger.Warn("⚠️ [%s] Не удалось доставить в %d, удален из рассылки: %v", report.RoundID, id, err)
		}
	}

	if s.observer != nil {
		s.observer.SetRecipients(s.recipients.Len())
	}

	if len(report.Skipped) > 0 {
		logger.Warn("🛑 [%s] Рассылка прервана: %d получателей не обработано", report.RoundID, len(report.Skipped))
	}
	logger.Info("✅ [%s] Рассылка завершена: доставлено %d, ошибок %d",
		report.RoundID, len(report.Delivered), len(report.Failed))
	return report
}

// Run адаптер для планировщика
func (s *RateNotificationService) Run(ctx context.Context) error {
	s.Tick(ctx)
	return nil
}

func (s *RateNotificationService) observeDelivery(ok bool) {
	if s.observer != nil {
		s.observer.ObserveDelivery(ok)
	}
}
