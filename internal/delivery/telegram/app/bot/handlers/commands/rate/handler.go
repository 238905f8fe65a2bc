// internal/delivery/telegram/app/bot/handlers/commands/rate/handler.go
package rate

import (
	"context"

	"euro-rate-bot/internal/core/domain/recipients"
	"euro-rate-bot/internal/delivery/telegram/app/bot/constants"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers/base"
	ratesvc "euro-rate-bot/internal/delivery/telegram/services/rate"
)

// rateCommandHandler реализация обработчика команды /rate
type rateCommandHandler struct {
	*base.BaseHandler
	service ratesvc.Service
}

// NewHandler создает новый обработчик команды /rate
func NewHandler(service ratesvc.Service) handlers.Handler {
	return &rateCommandHandler{
		BaseHandler: &base.BaseHandler{
			Name:    "rate_command_handler",
			Command: constants.CommandRate,
			Type:    handlers.TypeCommand,
		},
		service: service,
	}
}

// Execute выполняет обработку команды /rate
func (h *rateCommandHandler) Execute(ctx context.Context, params handlers.HandlerParams) (handlers.HandlerResult, error) {
	return Reply(h.service.HandleQuery(ctx, recipients.ID(params.ChatID)), params), nil
}

// Reply превращает ответ сервиса в результат хэндлера
func Reply(reply ratesvc.QueryReply, params handlers.HandlerParams) handlers.HandlerResult {
	return handlers.HandlerResult{
		Message:  reply.Text,
		Keyboard: reply.Keyboard,
		Metadata: map[string]interface{}{
			"chat_id":    params.ChatID,
			"available":  reply.Available,
			"new_member": reply.NewMember,
		},
	}
}
