// internal/delivery/telegram/app/bot/handlers/messages/rate_button/handler.go
package rate_button

import (
	"context"

	"euro-rate-bot/internal/core/domain/recipients"
	"euro-rate-bot/internal/delivery/telegram/app/bot/constants"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers/base"
	ratecmd "euro-rate-bot/internal/delivery/telegram/app/bot/handlers/commands/rate"
	ratesvc "euro-rate-bot/internal/delivery/telegram/services/rate"
)

// rateButtonHandler нажатие кнопки «💶 Курс евро»
type rateButtonHandler struct {
	*base.BaseHandler
	service ratesvc.Service
}

// NewHandler создает обработчик текста кнопки курса
func NewHandler(service ratesvc.Service) handlers.Handler {
	return &rateButtonHandler{
		BaseHandler: &base.BaseHandler{
			Name:    "rate_button_handler",
			Command: constants.ButtonTexts.EuroRate,
			Type:    handlers.TypeMessage,
		},
		service: service,
	}
}

// Execute отвечает так же, как /rate
func (h *rateButtonHandler) Execute(ctx context.Context, params handlers.HandlerParams) (handlers.HandlerResult, error) {
	return ratecmd.Reply(h.service.HandleQuery(ctx, recipients.ID(params.ChatID)), params), nil
}
