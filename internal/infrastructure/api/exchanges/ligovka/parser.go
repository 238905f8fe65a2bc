// internal/infrastructure/api/exchanges/ligovka/parser.go
package ligovka

import (
	"io"
	"strings"

	"euro-rate-bot/internal/core/domain/rates"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

const (
	quantitySelector = "td.money_quantity"
	buySelector      = "td.money_price.buy_price"
	priceSelector    = "td.money_price"
)

// PriceCell ячейка с курсом, как она выглядит на странице (для диагностики)
type PriceCell struct {
	Text    string
	Classes string
}

// ParseRates находит строку таблицы с нужным количеством и достает из нее курсы
func ParseRates(r io.Reader, quantityLabel string) (rates.Observation, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return rates.Observation{}, &ParseError{Reason: "invalid html", Err: err}
	}
	return ParseDocument(doc, quantityLabel)
}

// ParseDocument разбирает уже загруженный документ
func ParseDocument(doc *goquery.Document, quantityLabel string) (rates.Observation, error) {
	quantity := doc.Find(quantitySelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == quantityLabel
	}).First()
	if quantity.Length() == 0 {
		return rates.Observation{}, &ParseError{Reason: "quantity row not found", Value: quantityLabel}
	}

	row := quantity.Parent()
	buyCell := row.Find(buySelector).First()
	if buyCell.Length() == 0 {
		return rates.Observation{}, &ParseError{Reason: "buy cell not found"}
	}
	sellCell := buyCell.NextAllFiltered(priceSelector).First()
	if sellCell.Length() == 0 {
		return rates.Observation{}, &ParseError{Reason: "sell cell not found"}
	}

	buy, err := parsePrice(buyCell.Text())
	if err != nil {
		return rates.Observation{}, err
	}
	sell, err := parsePrice(sellCell.Text())
	if err != nil {
		return rates.Observation{}, err
	}

	return rates.Observation{Buy: buy, Sell: sell}, nil
}

// PriceCells возвращает все ячейки с курсами в порядке документа
func PriceCells(doc *goquery.Document) []PriceCell {
	var cells []PriceCell
	doc.Find(priceSelector).Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		cells = append(cells, PriceCell{
			Text:    strings.TrimSpace(s.Text()),
			Classes: class,
		})
	})
	return cells
}

// parsePrice разбирает "92.15", " 92,15 " и "1 092.15"
func parsePrice(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.NewReplacer(" ", "", "\u00a0", "", ",", ".").Replace(cleaned)
	if cleaned == "" {
		return decimal.Zero, &ParseError{Reason: "empty price"}
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &ParseError{Reason: "invalid price", Value: strings.TrimSpace(raw), Err: err}
	}
	if !value.IsPositive() {
		return decimal.Zero, &ParseError{Reason: "non-positive price", Value: strings.TrimSpace(raw)}
	}
	return value, nil
}
