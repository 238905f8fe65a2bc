// cmd/debug/parser/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"euro-rate-bot/internal/infrastructure/api/exchanges/ligovka"
)

// Загружает страницу обменника один раз и показывает, что из нее видит парсер
func main() {
	url := flag.String("url", "", "Адрес страницы (по умолчанию из конфигурации)")
	quantity := flag.String("quantity", "", "Подпись строки количества")
	dump := flag.String("dump", "", "Сохранить HTML страницы в файл")
	timeout := flag.Duration("timeout", 10*time.Second, "Таймаут запроса")
	flag.Parse()

	client := ligovka.NewClient(ligovka.Options{
		URL:           *url,
		Timeout:       *timeout,
		QuantityLabel: *quantity,
	})

	fmt.Printf("🌐 Загрузка %s\n", client.URL())

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	doc, err := client.FetchDocument(ctx)
	if err != nil {
		fmt.Printf("❌ Ошибка (%s): %v\n", ligovka.Kind(err), err)
		os.Exit(1)
	}

	if *dump != "" {
		html, err := doc.Html()
		if err != nil {
			fmt.Printf("⚠️  Не удалось получить HTML: %v\n", err)
		} else if err := os.WriteFile(*dump, []byte(html), 0644); err != nil {
			fmt.Printf("⚠️  Не удалось сохранить %s: %v\n", *dump, err)
		} else {
			fmt.Printf("💾 HTML сохранен в %s\n", *dump)
		}
	}

	cells := ligovka.PriceCells(doc)
	fmt.Printf("\n📋 Ячейки с курсами: %d\n", len(cells))
	fmt.Println(strings.Repeat("-", 50))
	for i, cell := range cells {
		fmt.Printf("%3d. %-12s [%s]\n", i+1, cell.Text, cell.Classes)
	}
	fmt.Println(strings.Repeat("-", 50))

	obs, err := ligovka.ParseDocument(doc, client.QuantityLabel())
	if err != nil {
		fmt.Printf("❌ Курс для %q не найден: %v\n", client.QuantityLabel(), err)
		os.Exit(1)
	}

	fmt.Printf("✅ Строка %q\n", client.QuantityLabel())
	fmt.Printf("   • Покупка: %s\n", obs.Buy.String())
	fmt.Printf("   • Продажа: %s\n", obs.Sell.String())
}
