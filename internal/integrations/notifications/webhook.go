package notifications

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookNotifier отправляет уведомления POST-запросом во внешний сервис рассылки
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
	now        func() time.Time
}

// NewWebhookNotifier создает новый экземпляр клиента
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

func (w *WebhookNotifier) Notify(ctx context.Context, n Notification) error {
	body, err := encode(n, w.now())
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrPublish, err)
	}
	req.Header.Set("Content-Type", "application/cloudevents+json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrPublish, err)
	}
	defer resp.Body.Close()

	// Любой 2xx считаем доставкой
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
