// internal/delivery/telegram/services/rate/interface.go
package rate

import (
	"context"

	"euro-rate-bot/internal/core/domain/recipients"
	"euro-rate-bot/internal/delivery/telegram/app/http_client"
)

// Service обрабатывает запрос курса от пользователя
type Service interface {
	HandleQuery(ctx context.Context, requester recipients.ID) QueryReply
}

// QueryReply ответ пользователю: текст и клавиатура
type QueryReply struct {
	Text      string                          `json:"text"`
	Keyboard  http_client.ReplyKeyboardMarkup `json:"keyboard"`
	Available bool                            `json:"available"`
	NewMember bool                            `json:"new_member"` // пользователь только что добавлен в рассылку
}
