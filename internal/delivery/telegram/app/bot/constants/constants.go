// internal/delivery/telegram/app/bot/constants/constants.go
package constants

// ButtonTexts содержит тексты для кнопок
var ButtonTexts = struct {
	EuroRate string
}{
	EuroRate: "💶 Курс евро",
}

// Команды бота (без /)
const (
	CommandStart = "start"
	CommandRate  = "rate"
	CommandHelp  = "help"
)

// CommandDescriptions описания команд для setMyCommands, в порядке меню
var CommandDescriptions = []struct {
	Command     string
	Description string
}{
	{CommandStart, "Подписаться и получить текущий курс"},
	{CommandRate, "Текущий курс евро"},
	{CommandHelp, "Справка"},
}

// Тексты сообщений
const (
	GreetingText = "👋 Привет! Я буду присылать курс евро, когда он изменится.\n" +
		"Нажмите «💶 Курс евро», чтобы узнать курс прямо сейчас."

	HelpText = "📋 Помощь\n\n" +
		"/start - подписаться на уведомления\n" +
		"/rate - текущий курс евро\n" +
		"/help - эта справка\n\n" +
		"Бот регулярно проверяет курс на ligovka.ru и пишет, когда меняется покупка или продажа."
)
