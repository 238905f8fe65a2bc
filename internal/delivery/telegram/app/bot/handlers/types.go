// internal/delivery/telegram/app/bot/handlers/types.go
package handlers

import "context"

// HandlerType тип хэндлера
type HandlerType string

const (
	TypeCommand HandlerType = "command"
	TypeMessage HandlerType = "message"
)

// Handler интерфейс для всех хэндлеров
type Handler interface {
	Execute(ctx context.Context, params HandlerParams) (HandlerResult, error)
	GetName() string
	GetCommand() string // команда без / или точный текст сообщения
	GetType() HandlerType
}

// HandlerParams базовые параметры для всех хэндлеров
type HandlerParams struct {
	ChatID   int64
	UserID   int64
	Username string
	Text     string // текст сообщения
	Args     string // аргументы команды после пробела
	UpdateID int
}

// HandlerResult базовый результат хэндлера
type HandlerResult struct {
	Message  string                 `json:"message"`
	Keyboard interface{}            `json:"keyboard,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
