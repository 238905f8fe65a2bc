// internal/delivery/telegram/app/bot/buttons/builder.go
package buttons

import (
	"euro-rate-bot/internal/delivery/telegram/app/bot/constants"
	"euro-rate-bot/internal/delivery/telegram/app/http_client"
)

// ButtonBuilder - построитель клавиатур
type ButtonBuilder struct{}

// NewButtonBuilder создает новый построитель кнопок
func NewButtonBuilder() *ButtonBuilder {
	return &ButtonBuilder{}
}

// CreateRateKeyboard reply-клавиатура с единственной кнопкой курса
func (b *ButtonBuilder) CreateRateKeyboard() http_client.ReplyKeyboardMarkup {
	return http_client.ReplyKeyboardMarkup{
		Keyboard: [][]http_client.KeyboardButton{
			{
				{Text: constants.ButtonTexts.EuroRate},
			},
		},
		ResizeKeyboard: true,
	}
}

// CreateBotCommands меню команд для setMyCommands
func (b *ButtonBuilder) CreateBotCommands() []http_client.BotCommand {
	commands := make([]http_client.BotCommand, 0, len(constants.CommandDescriptions))
	for _, c := range constants.CommandDescriptions {
		commands = append(commands, http_client.BotCommand{
			Command:     c.Command,
			Description: c.Description,
		})
	}
	return commands
}
