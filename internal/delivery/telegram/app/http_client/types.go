// internal/delivery/telegram/app/http_client/types.go
package http_client

import (
	"encoding/json"
	"fmt"
)

// Update входящее обновление Telegram
type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message сообщение Telegram
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date"`
	Text      string `json:"text,omitempty"`
}

// User пользователь или бот
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Chat чат, в который пришло сообщение
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}

// KeyboardButton кнопка reply-клавиатуры
type KeyboardButton struct {
	Text string `json:"text"`
}

// ReplyKeyboardMarkup reply-клавиатура под полем ввода
type ReplyKeyboardMarkup struct {
	Keyboard       [][]KeyboardButton `json:"keyboard"`
	ResizeKeyboard bool               `json:"resize_keyboard,omitempty"`
}

// BotCommand команда в меню бота
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// SendMessageRequest тело запроса sendMessage
type SendMessageRequest struct {
	ChatID      int64       `json:"chat_id"`
	Text        string      `json:"text"`
	ParseMode   string      `json:"parse_mode,omitempty"`
	ReplyMarkup interface{} `json:"reply_markup,omitempty"`
}

// ResponseParameters дополнительные параметры ошибки
type ResponseParameters struct {
	RetryAfter int `json:"retry_after,omitempty"`
}

// APIResponse общий конверт ответа Bot API
type APIResponse struct {
	OK          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Description string              `json:"description,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

// APIError ответ Bot API с ok=false
type APIError struct {
	Method      string
	Code        int
	Description string
	RetryAfter  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error %d on %s: %s", e.Code, e.Method, e.Description)
}

// TooManyRequests true для ответа 429
func (e *APIError) TooManyRequests() bool {
	return e.Code == 429
}
