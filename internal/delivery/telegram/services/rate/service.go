// internal/delivery/telegram/services/rate/service.go
package rate

import (
	"context"

	"euro-rate-bot/internal/core/domain/rates"
	"euro-rate-bot/internal/core/domain/recipients"
	"euro-rate-bot/internal/delivery/telegram/app/bot/buttons"
	"euro-rate-bot/internal/delivery/telegram/app/bot/formatters"
	"euro-rate-bot/pkg/logger"
)

// RecipientsGauge получает актуальное число получателей
type RecipientsGauge interface {
	SetRecipients(n int)
}

// serviceImpl реализация Service
type serviceImpl struct {
	source     rates.Poller
	recipients *recipients.Set
	formatter  *formatters.RateFormatter
	buttons    *buttons.ButtonBuilder
	gauge      RecipientsGauge
}

// NewService создает сервис запросов курса. gauge может быть nil.
func NewService(
	source rates.Poller,
	set *recipients.Set,
	formatter *formatters.RateFormatter,
	gauge RecipientsGauge,
) Service {
	return &serviceImpl{
		source:     source,
		recipients: set,
		formatter:  formatter,
		buttons:    buttons.NewButtonBuilder(),
		gauge:      gauge,
	}
}

// HandleQuery регистрирует пользователя и отвечает текущим курсом.
// Опрос обновляет последнее значение источника, поэтому следующая
// плановая проверка сравнивает уже с ним.
func (s *serviceImpl) HandleQuery(ctx context.Context, requester recipients.ID) QueryReply {
	added := s.recipients.Add(requester)
	if added {
		logger.Info("👤 Новый получатель рассылки: %d (всего %d)", requester, s.recipients.Len())
		if s.gauge != nil {
			s.gauge.SetRecipients(s.recipients.Len())
		}
	}

	result := s.source.Poll(ctx)

	return QueryReply{
		Text:      s.formatter.Reply(result),
		Keyboard:  s.buttons.CreateRateKeyboard(),
		Available: result.Fetched(),
		NewMember: added,
	}
}
