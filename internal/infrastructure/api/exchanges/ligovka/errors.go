// internal/infrastructure/api/exchanges/ligovka/errors.go
package ligovka

import (
	"fmt"

	"euro-rate-bot/internal/core/domain/rates"
)

// FetchError ошибка получения страницы: сеть, таймаут или не-2xx ответ
type FetchError struct {
	URL        string
	StatusCode int // 0, если ответа не было
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Kind вид ошибки для логов
func (e *FetchError) Kind() string {
	return "fetch"
}

// ParseError страница получена, но курс в ней найти или разобрать не удалось
type ParseError struct {
	Reason string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("parse rate page: %s (%q)", e.Reason, e.Value)
	}
	return "parse rate page: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Kind вид ошибки для логов
func (e *ParseError) Kind() string {
	return "parse"
}

// Kind короткое имя вида ошибки для логов и метрик
func Kind(err error) string {
	return rates.ErrorKind(err)
}

var (
	_ rates.KindError = (*FetchError)(nil)
	_ rates.KindError = (*ParseError)(nil)
)
