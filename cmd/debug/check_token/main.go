// cmd/debug/check_token/main.go
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

func main() {
	cfgPath := flag.String("config", ".env", "Путь к файлу конфигурации")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Printf("❌ Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("🔑 Проверка токена %s\n", cfg.MaskedToken())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := telegram_http.NewTelegramClient(cfg.GetBotAPIURL())
	me, err := client.GetMe(ctx)
	if err != nil {
		fmt.Printf("❌ Токен не принят: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Токен действителен")
	fmt.Printf("   • ID: %d\n", me.ID)
	fmt.Printf("   • Имя: %s\n", me.FirstName)
	fmt.Printf("   • Username: @%s\n", me.Username)
}
