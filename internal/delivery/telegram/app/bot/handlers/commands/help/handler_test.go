package help

import (
	"context"
	"testing"

	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers"

	"github.com/stretchr/testify/assert"
)

func TestHelp_StaticText(t *testing.T) {
	h := NewHandler()

	result, err := h.Execute(context.Background(), handlers.HandlerParams{ChatID: 1})
	assert.NoError(t, err)
	assert.Contains(t, result.Message, "/rate")
	assert.Contains(t, result.Message, "/start")
	assert.NotNil(t, result.Keyboard)
}
