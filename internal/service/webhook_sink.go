package service

import (
	"fmt"
	"time"

	"bedboard/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// WebhookSink POSTs each snapshot to an external endpoint (ward display
// boards, integration hooks). Retries with backoff are handled by the HTTP
// client; once retries are exhausted the publisher drops the sink like any
// other failed subscriber.
type WebhookSink struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

func NewWebhookSink(url string, logger *zap.Logger) *WebhookSink {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &WebhookSink{
		httpClient: client,
		url:        url,
		logger:     logger,
	}
}

func (w *WebhookSink) ID() string {
	return "webhook:" + w.url
}

func (w *WebhookSink) Send(snapshot []*domain.Bed) error {
	resp, err := w.httpClient.R().
		SetBody(snapshot).
		Post(w.url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}
	w.logger.Debug("webhook snapshot delivered",
		zap.String("url", w.url),
		zap.Int("beds", len(snapshot)))
	return nil
}
