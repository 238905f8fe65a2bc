package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:ABCDEF-token")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultTelegramAPIURL, cfg.Telegram.APIURL)
	assert.Equal(t, DefaultUpdateInterval, cfg.UpdateInterval)
	assert.Equal(t, 600*time.Second, cfg.GetUpdateInterval())
	assert.Equal(t, time.Second, cfg.UpdateInitialDelay)
	assert.Equal(t, DefaultRateSourceURL, cfg.RateSource.URL)
	assert.Equal(t, 10*time.Second, cfg.RateSource.Timeout)
	assert.Equal(t, DefaultQuantityLabel, cfg.RateSource.QuantityLabel)
	assert.Equal(t, "0.01", cfg.RateSource.Threshold.String())
	assert.Equal(t, DefaultUnavailableText, cfg.Messages.Unavailable)
	assert.Contains(t, cfg.Messages.RateTemplate, "{buy_rate}")
	assert.Empty(t, cfg.Telegram.SeedChatIDs)
	assert.Equal(t, "https://api.telegram.org/bot123456:ABCDEF-token/", cfg.GetBotAPIURL())
}

func TestLoadConfig_MissingTokenIsFatal(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	cfg, err := LoadConfig("")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), tokenRequiredValidation)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_API_URL", "http://localhost:9999/")
	t.Setenv("TELEGRAM_CHAT_ID", "100, -200")
	t.Setenv("UPDATE_INTERVAL", "60")
	t.Setenv("UPDATE_INITIAL_DELAY", "250ms")
	t.Setenv("RATE_CHANGE_THRESHOLD", "0.05")
	t.Setenv("RATE_MESSAGE_TEMPLATE", `{buy_rate}\n{sell_rate}`)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.Telegram.APIURL)
	assert.Equal(t, []int64{100, -200}, cfg.Telegram.SeedChatIDs)
	assert.Equal(t, time.Minute, cfg.GetUpdateInterval())
	assert.Equal(t, 250*time.Millisecond, cfg.UpdateInitialDelay)
	assert.Equal(t, "0.05", cfg.RateSource.Threshold.String())
	assert.Equal(t, "{buy_rate}\n{sell_rate}", cfg.Messages.RateTemplate)
}

func TestLoadConfig_InvalidValuesCollected(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("UPDATE_INTERVAL", "0")
	t.Setenv("RATE_CHANGE_THRESHOLD", "-1")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), tokenRequiredValidation)
	assert.Contains(t, err.Error(), "UPDATE_INTERVAL must be positive")
	assert.Contains(t, err.Error(), "RATE_CHANGE_THRESHOLD must not be negative")
}

func TestLoadConfig_InvalidSeedChat(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "@channel")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_CHAT_ID")
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TELEGRAM_BOT_TOKEN=from-file\nUPDATE_INTERVAL=120\n"), 0600))

	// godotenv не перезаписывает уже заданные переменные
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	os.Unsetenv("TELEGRAM_BOT_TOKEN")
	t.Setenv("UPDATE_INTERVAL", "")
	os.Unsetenv("UPDATE_INTERVAL")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Telegram.BotToken)
	assert.Equal(t, 120, cfg.UpdateInterval)
}

func TestMaskedToken(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.BotToken = "1234567890:ABCDEFGHIJ"
	assert.Equal(t, "12345...FGHIJ", cfg.MaskedToken())

	cfg.Telegram.BotToken = "short"
	assert.Equal(t, "*****", cfg.MaskedToken())
}
