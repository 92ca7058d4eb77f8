package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для отправки уведомлений в Discord webhook
type Client struct {
	webhookURL string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр Discord клиента
// Пустой webhookURL допустим: уведомления просто не отправляются
func NewClient(webhookURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// webhookPayload тело запроса Discord webhook
type webhookPayload struct {
	Content string `json:"content"`
}

// Notify отправляет сообщение в webhook
// Вызывающие используют NotifyAsync; прямой вызов - для тестов
func (c *Client) Notify(ctx context.Context, message string) error {
	if c.webhookURL == "" {
		return ErrWebhookNotConfigured
	}

	body, err := json.Marshal(webhookPayload{Content: message})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Discord отвечает 204 No Content на успешный webhook
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(respBody))
	}

	return nil
}

// NotifyAsync отправляет уведомление в отдельной горутине (best effort)
// Ошибки только логируются - доставка уведомления никогда не блокирует
// и не роняет бронирование
func (c *Client) NotifyAsync(message string) {
	if c.webhookURL == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.Notify(ctx, message); err != nil {
			c.log.Warn("discord: failed to send notification: %v", err)
		}
	}()
}
