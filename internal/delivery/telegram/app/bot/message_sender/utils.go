// internal/delivery/telegram/app/bot/message_sender/utils.go
package message_sender

import (
	"errors"

	"euro-rate-bot/internal/delivery/telegram/app/http_client"
)

// toDeliveryError приводит ошибку отправки к DeliveryError
func toDeliveryError(chatID int64, err error) *DeliveryError {
	var delivery *DeliveryError
	if errors.As(err, &delivery) {
		return delivery
	}

	result := &DeliveryError{ChatID: chatID, Err: err}

	var apiErr *http_client.APIError
	if errors.As(err, &apiErr) {
		result.Code = apiErr.Code
		result.Description = apiErr.Description
	}
	return result
}

// IsBlocked true, если пользователь заблокировал бота или чат недоступен
func IsBlocked(err error) bool {
	var delivery *DeliveryError
	if !errors.As(err, &delivery) {
		return false
	}
	return delivery.Code == 403 || delivery.Code == 400
}
