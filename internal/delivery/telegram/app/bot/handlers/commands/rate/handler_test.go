package rate

import (
	"context"
	"testing"

	"euro-rate-bot/internal/core/domain/recipients"
	"euro-rate-bot/internal/delivery/telegram/app/bot/buttons"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers"
	"euro-rate-bot/internal/delivery/telegram/app/bot/handlers/router"
	"euro-rate-bot/internal/delivery/telegram/app/http_client"
	ratesvc "euro-rate-bot/internal/delivery/telegram/services/rate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	reply      ratesvc.QueryReply
	requesters []recipients.ID
}

func (f *fakeService) HandleQuery(ctx context.Context, requester recipients.ID) ratesvc.QueryReply {
	f.requesters = append(f.requesters, requester)
	return f.reply
}

func TestRate_Metadata(t *testing.T) {
	h := NewHandler(&fakeService{})

	assert.Equal(t, "rate_command_handler", h.GetName())
	assert.Equal(t, "rate", h.GetCommand())
	assert.Equal(t, handlers.TypeCommand, h.GetType())
}

func TestRate_RepliesWithServiceAnswer(t *testing.T) {
	svc := &fakeService{reply: ratesvc.QueryReply{
		Text:      "92/93",
		Keyboard:  buttons.NewButtonBuilder().CreateRateKeyboard(),
		Available: true,
		NewMember: true,
	}}
	h := NewHandler(svc)

	result, err := h.Execute(context.Background(), handlers.HandlerParams{ChatID: 42, Text: "/rate"})
	require.NoError(t, err)

	assert.Equal(t, "92/93", result.Message)
	assert.IsType(t, http_client.ReplyKeyboardMarkup{}, result.Keyboard)
	assert.Equal(t, int64(42), result.Metadata["chat_id"])
	assert.Equal(t, true, result.Metadata["available"])
	assert.Equal(t, true, result.Metadata["new_member"])
	assert.Equal(t, []recipients.ID{42}, svc.requesters)
}

func TestRate_UnavailableReply(t *testing.T) {
	svc := &fakeService{reply: ratesvc.QueryReply{Text: "недоступен"}}
	h := NewHandler(svc)

	result, err := h.Execute(context.Background(), handlers.HandlerParams{ChatID: 7})
	require.NoError(t, err)

	assert.Equal(t, "недоступен", result.Message)
	assert.Equal(t, false, result.Metadata["available"])
	assert.Equal(t, false, result.Metadata["new_member"])
}

func TestRate_RoutedBySlashCommand(t *testing.T) {
	svc := &fakeService{reply: ratesvc.QueryReply{Text: "92/93", Available: true}}
	r := router.NewRouter()
	r.RegisterHandler(NewHandler(svc))

	result, err := r.Handle(context.Background(), "/rate", handlers.HandlerParams{ChatID: 5, Text: "/rate"})
	require.NoError(t, err)

	assert.Equal(t, "92/93", result.Message)
	assert.Equal(t, []recipients.ID{5}, svc.requesters)
}
