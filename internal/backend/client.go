package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mkazantsev/workshop-bot/internal/infra/metrics"
)

const defaultTimeout = 10 * time.Second

// Client — общий HTTP-клиент к REST API мастерской.
// Все запросы уходят с Content-Type: application/json и таймаутом на вызов.
type Client struct {
	baseURL string
	hc      *http.Client
	log     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do выполняет запрос и раскладывает ответ в out (если out != nil).
// Сетевые ошибки заворачиваются в TransportError, не-2xx — в ServerError.
func (c *Client) do(ctx context.Context, method, path, resource string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		metrics.BackendRequests.WithLabelValues(resource, method, "transport_error").Inc()
		c.log.Error("backend request failed", "method", method, "path", path, "err", err)
		return &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		metrics.BackendRequests.WithLabelValues(resource, method, "server_error").Inc()
		c.log.Error("backend returned error", "method", method, "path", path, "status", resp.StatusCode)
		return &ServerError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(raw))}
	}

	metrics.BackendRequests.WithLabelValues(resource, method, "ok").Inc()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &TransportError{Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}
