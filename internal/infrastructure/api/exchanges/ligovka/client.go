// internal/infrastructure/api/exchanges/ligovka/client.go
package ligovka

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"euro-rate-bot/internal/core/domain/rates"
	"euro-rate-bot/internal/infrastructure/config"

	"github.com/PuerkitoBio/goquery"
)

// LIGOVKA CLIENT
// ============================================

const defaultTimeout = 10 * time.Second

// Options параметры клиента страницы курсов
type Options struct {
	URL           string
	Timeout       time.Duration
	QuantityLabel string
	UserAgent     string
}

// Client загружает страницу обменника и разбирает курс EUR
type Client struct {
	httpClient *http.Client
	opts       Options
}

// NewClient создает клиент с заданными параметрами
func NewClient(opts Options) *Client {
	if opts.URL == "" {
		opts.URL = config.DefaultRateSourceURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.QuantityLabel == "" {
		opts.QuantityLabel = config.DefaultQuantityLabel
	}
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultUserAgent
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:    2,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		opts: opts,
	}
}

// NewClientFromConfig создает клиент из конфигурации приложения
func NewClientFromConfig(cfg *config.Config) *Client {
	return NewClient(Options{
		URL:           cfg.RateSource.URL,
		Timeout:       cfg.RateSource.Timeout,
		QuantityLabel: cfg.RateSource.QuantityLabel,
		UserAgent:     cfg.RateSource.UserAgent,
	})
}

// URL адрес страницы курсов
func (c *Client) URL() string {
	return c.opts.URL
}

// Fetch загружает страницу и возвращает пару курсов для строки QuantityLabel
func (c *Client) Fetch(ctx context.Context) (rates.Observation, error) {
	body, err := c.get(ctx)
	if err != nil {
		return rates.Observation{}, err
	}
	defer body.Close()

	return ParseRates(body, c.opts.QuantityLabel)
}

// FetchDocument загружает страницу целиком (для диагностики разметки)
func (c *Client) FetchDocument(ctx context.Context) (*goquery.Document, error) {
	body, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, &ParseError{Reason: "invalid html", Err: err}
	}
	return doc, nil
}

// QuantityLabel подпись строки таблицы, из которой берется курс
func (c *Client) QuantityLabel() string {
	return c.opts.QuantityLabel
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ
// ============================================

func (c *Client) get(ctx context.Context) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.URL, nil)
	if err != nil {
		cancel()
		return nil, &FetchError{URL: c.opts.URL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, &FetchError{URL: c.opts.URL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		cancel()
		return nil, &FetchError{URL: c.opts.URL, StatusCode: resp.StatusCode}
	}

	return &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, nil
}

// cancelOnClose освобождает контекст запроса после чтения тела
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

var _ rates.Fetcher = (*Client)(nil)
