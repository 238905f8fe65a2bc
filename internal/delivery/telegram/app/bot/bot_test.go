package bot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"euro-rate-bot/internal/core/domain/rates"
	"euro-rate-bot/internal/core/domain/recipients"
	"euro-rate-bot/internal/delivery/telegram/app/bot/formatters"
	telegram_http "euro-rate-bot/internal/delivery/telegram/app/http_client"
	"euro-rate-bot/internal/delivery/telegram/services/rate"
	"euro-rate-bot/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	ChatID int64
	Text   string
	Markup json.RawMessage
}

// fakeBotAPI минимальная реализация Bot API для тестов
type fakeBotAPI struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	pending  []telegram_http.Update
	sent     []sentMessage
	commands int
	offsets  []int
}

func newFakeBotAPI(t *testing.T) *fakeBotAPI {
	api := &fakeBotAPI{t: t}
	api.server = httptest.NewServer(http.HandlerFunc(api.handle))
	t.Cleanup(api.server.Close)
	return api
}

func (a *fakeBotAPI) handle(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	var body map[string]json.RawMessage
	_ = json.NewDecoder(r.Body).Decode(&body)

	a.mu.Lock()
	defer a.mu.Unlock()

	switch method {
	case "getMe":
		a.reply(w, `{"id":1,"is_bot":true,"first_name":"Euro","username":"euro_rate_bot"}`)
	case "setMyCommands":
		a.commands++
		a.reply(w, `true`)
	case "getUpdates":
		var offset int
		_ = json.Unmarshal(body["offset"], &offset)
		a.offsets = append(a.offsets, offset)
		var ready []telegram_http.Update
		for _, u := range a.pending {
			if u.UpdateID >= offset {
				ready = append(ready, u)
			}
		}
		a.pending = nil
		if len(ready) == 0 {
			time.Sleep(5 * time.Millisecond)
		}
		data, _ := json.Marshal(ready)
		if ready == nil {
			data = []byte(`[]`)
		}
		a.reply(w, string(data))
	case "sendMessage":
		var msg sentMessage
		_ = json.Unmarshal(body["chat_id"], &msg.ChatID)
		_ = json.Unmarshal(body["text"], &msg.Text)
		msg.Markup = body["reply_markup"]
		a.sent = append(a.sent, msg)
		a.reply(w, `{"message_id":1,"chat":{"id":1}}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
	}
}

func (a *fakeBotAPI) reply(w http.ResponseWriter, result string) {
	_, _ = w.Write([]byte(`{"ok":true,"result":` + result + `}`))
}

func (a *fakeBotAPI) push(updates ...telegram_http.Update) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = append(a.pending, updates...)
}

func (a *fakeBotAPI) messages() []sentMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]sentMessage(nil), a.sent...)
}

func textUpdate(id int, chatID int64, text string) telegram_http.Update {
	return telegram_http.Update{
		UpdateID: id,
		Message: &telegram_http.Message{
			MessageID: int64(id),
			Chat:      telegram_http.Chat{ID: chatID},
			From:      &telegram_http.User{ID: chatID},
			Text:      text,
		},
	}
}

func newTestBot(t *testing.T, api *fakeBotAPI, fetcher rates.Fetcher) (*TelegramBot, *recipients.Set) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Telegram.BotToken = "TEST"
	cfg.Telegram.APIURL = api.server.URL
	cfg.Polling.Timeout = 0
	cfg.Polling.Limit = 100
	cfg.Polling.RetryInterval = 1
	cfg.Sender.RetryWait = time.Millisecond

	set := recipients.NewSet()
	service := rate.NewService(
		rates.NewSource(fetcher),
		set,
		formatters.NewRateFormatter("{buy_rate}/{sell_rate}", "", "sorry", ""),
		nil,
	)

	return NewTelegramBot(cfg, &Dependencies{RateService: service}), set
}

func staticFetcher(buy, sell float64) rates.Fetcher {
	return rates.FetcherFunc(func(ctx context.Context) (rates.Observation, error) {
		return rates.NewObservation(buy, sell), nil
	})
}

func TestTelegramBot_Prepare(t *testing.T) {
	api := newFakeBotAPI(t)
	bot, _ := newTestBot(t, api, staticFetcher(1, 2))

	require.NoError(t, bot.Prepare(context.Background()))
	assert.Equal(t, 1, api.commands)
	assert.Equal(t, "euro_rate_bot", bot.username)
}

func TestTelegramBot_HandleUpdate(t *testing.T) {
	api := newFakeBotAPI(t)
	bot, set := newTestBot(t, api, staticFetcher(92.15, 93.75))
	ctx := context.Background()

	require.NoError(t, bot.HandleUpdate(ctx, textUpdate(1, 10, "/rate")))
	require.NoError(t, bot.HandleUpdate(ctx, textUpdate(2, 11, "💶 Курс евро")))
	require.NoError(t, bot.HandleUpdate(ctx, textUpdate(3, 12, "привет")))
	require.NoError(t, bot.HandleUpdate(ctx, telegram_http.Update{UpdateID: 4}))

	sent := api.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, int64(10), sent[0].ChatID)
	assert.Equal(t, "92.15/93.75", sent[0].Text)
	assert.Contains(t, string(sent[0].Markup), "💶 Курс евро")
	assert.Equal(t, int64(11), sent[1].ChatID)

	assert.Equal(t, []recipients.ID{10, 11}, set.Snapshot())
}

func TestTelegramBot_RoutingKey(t *testing.T) {
	api := newFakeBotAPI(t)
	bot, _ := newTestBot(t, api, staticFetcher(1, 2))
	bot.username = "euro_rate_bot"

	tests := []struct {
		text, key, args string
	}{
		{"/start", "/start", ""},
		{"/start@euro_rate_bot", "/start", ""},
		{"/rate@other_bot", "/rate@other_bot", ""},
		{"/start ref42", "/start", "ref42"},
		{"  💶 Курс евро ", "💶 Курс евро", ""},
	}
	for _, tt := range tests {
		key, args := bot.routingKey(tt.text)
		assert.Equal(t, tt.key, key, tt.text)
		assert.Equal(t, tt.args, args, tt.text)
	}
}

func TestPollingClient_DispatchesAndAdvancesOffset(t *testing.T) {
	api := newFakeBotAPI(t)
	bot, set := newTestBot(t, api, staticFetcher(1, 2))
	api.push(textUpdate(100, 1, "/start"), textUpdate(101, 2, "/help"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, bot.StartPolling(ctx))
	assert.Error(t, bot.StartPolling(ctx))

	require.Eventually(t, func() bool {
		return len(api.messages()) == 2
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return bot.pollingHandler.Offset() == 102
	}, time.Second, 5*time.Millisecond)

	bot.StopPolling()
	assert.False(t, bot.IsPolling())

	assert.True(t, set.Contains(1))
	assert.False(t, set.Contains(2))
}

func TestPollingClient_StopsOnContextCancel(t *testing.T) {
	api := newFakeBotAPI(t)
	bot, _ := newTestBot(t, api, staticFetcher(1, 2))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, bot.StartPolling(ctx))
	cancel()

	require.Eventually(t, func() bool {
		return !bot.IsPolling()
	}, time.Second, 5*time.Millisecond)
}
