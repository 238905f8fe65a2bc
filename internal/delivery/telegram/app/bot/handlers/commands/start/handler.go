// internal/delivery/telegram/app/bot/handlers/commands/start/handler.go
package start

import (
	"context"

	"euro-rate-bot/internal/core/domain/recipients"
	"euro-rate-bot/internal/delivery/telegram/app/bot/constants"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers/base"
	"euro-rate-bot/internal/delivery/telegram/services/rate"
)

// startCommandHandler реализация обработчика команды /start
type startCommandHandler struct {
	*base.BaseHandler
	service rate.Service
}

// NewHandler создает новый обработчик команды /start
func NewHandler(service rate.Service) handlers.Handler {
	return &startCommandHandler{
		BaseHandler: &base.BaseHandler{
			Name:    "start_command_handler",
			Command: constants.CommandStart,
			Type:    handlers.TypeCommand,
		},
		service: service,
	}
}

// Execute приветствует пользователя, подписывает его и сразу показывает курс
func (h *startCommandHandler) Execute(ctx context.Context, params handlers.HandlerParams) (handlers.HandlerResult, error) {
	reply := h.service.HandleQuery(ctx, recipients.ID(params.ChatID))

	return handlers.HandlerResult{
		Message:  constants.GreetingText + "\n" + reply.Text,
		Keyboard: reply.Keyboard,
		Metadata: map[string]interface{}{
			"chat_id":    params.ChatID,
			"available":  reply.Available,
			"new_member": reply.NewMember,
		},
	}, nil
}
