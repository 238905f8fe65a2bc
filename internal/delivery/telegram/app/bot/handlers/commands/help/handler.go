// internal/delivery/telegram/app/bot/handlers/commands/help/handler.go
package help

import (
	"context"

	"euro-rate-bot/internal/delivery/telegram/app/bot/buttons"
	"euro-rate-bot/internal/delivery/telegram/app/bot/constants"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers/base"
)

// helpCommandHandler реализация обработчика команды /help
type helpCommandHandler struct {
	*base.BaseHandler
	buttons *buttons.ButtonBuilder
}

// NewHandler создает новый обработчик команды /help
func NewHandler() handlers.Handler {
	return &helpCommandHandler{
		BaseHandler: &base.BaseHandler{
			Name:    "help_command_handler",
			Command: constants.CommandHelp,
			Type:    handlers.TypeCommand,
		},
		buttons: buttons.NewButtonBuilder(),
	}
}

// Execute выполняет обработку команды /help
func (h *helpCommandHandler) Execute(ctx context.Context, params handlers.HandlerParams) (handlers.HandlerResult, error) {
	return handlers.HandlerResult{
		Message:  constants.HelpText,
		Keyboard: h.buttons.CreateRateKeyboard(),
		Metadata: map[string]interface{}{
			"chat_id": params.ChatID,
		},
	}, nil
}
