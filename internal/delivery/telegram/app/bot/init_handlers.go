// internal/delivery/telegram/app/bot/init_handlers.go
package bot

import (
	help_command "euro-rate-bot/internal/delivery/telegram/app/bot/handlers/commands/help"
	rate_command "euro-rate-bot/internal/delivery/telegram/app/bot/handlers/commands/rate"
	start_command "euro-rate-bot/internal/delivery/telegram/app/bot/handlers/commands/start"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers/messages/rate_button"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers/router"
	"euro-rate-bot/internal/delivery/telegram/services/rate"
	"euro-rate-bot/pkg/logger"
)

// InitHandlers регистрирует все хэндлеры бота в роутере
func InitHandlers(r router.Router, rateService rate.Service) {
	logger.Debug("🔧 Инициализация хэндлеров...")

	// Команды
	r.RegisterHandler(start_command.NewHandler(rateService))
	r.RegisterHandler(rate_command.NewHandler(rateService))
	r.RegisterHandler(help_command.NewHandler())

	// Текстовые сообщения (кнопки reply-клавиатуры)
	r.RegisterHandler(rate_button.NewHandler(rateService))

	logger.Info("✅ Зарегистрировано хэндлеров: %d", len(r.GetCommands()))
}
