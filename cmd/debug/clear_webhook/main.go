// cmd/debug/clear_webhook/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	telegram_http "euro-rate-bot/internal/delivery/telegram/app/http_client"
	"euro-rate-bot/internal/infrastructure/config"
)

// Снимает webhook и сбрасывает накопленные обновления, чтобы заработал getUpdates
func main() {
	cfgPath := flag.String("config", ".env", "Путь к файлу конфигурации")
	keepPending := flag.Bool("keep-pending", false, "Не удалять накопленные обновления")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Printf("❌ Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := telegram_http.NewTelegramClient(cfg.GetBotAPIURL())
	if err := client.DeleteWebhook(ctx, !*keepPending); err != nil {
		fmt.Printf("❌ deleteWebhook: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Webhook удален")
	if !*keepPending {
		fmt.Println("🧹 Накопленные обновления сброшены")
	}
}
