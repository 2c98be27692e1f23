package notify

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Elthiero/greenhouse-monitoring/utils"
)

// AlertEvent is the outbound contract for a reading that broke its zone's
// thresholds.
type AlertEvent struct {
	ZoneName  string            `json:"zone_name"`
	Metrics   []utils.Violation `json:"triggered_metrics"`
	Timestamp time.Time         `json:"timestamp"`
}

// Dispatcher delivers alert events. Implementations must be safe for
// concurrent use. A returned error is for logging only: delivery failures
// never affect the ingestion call that raised the alert.
type Dispatcher interface {
	Dispatch(event AlertEvent) error
}

// LogDispatcher writes alerts to the log. It is the default when no
// delivery target is configured.
type LogDispatcher struct {
	Logger *zap.Logger
}

func (d LogDispatcher) Dispatch(event AlertEvent) error {
	fields := []zap.Field{
		zap.String("zone", event.ZoneName),
		zap.Time("timestamp", event.Timestamp),
	}
	for _, m := range event.Metrics {
		fields = append(fields, zap.String(m.Metric,
			fmt.Sprintf("%.2f (%s %.2f)", m.Value, m.Direction, m.Bound)))
	}
	d.Logger.Warn("alert raised", fields...)
	return nil
}

// WebhookDispatcher POSTs alert events as JSON to a configured URL.
type WebhookDispatcher struct {
	url    string
	client *resty.Client
}

func NewWebhookDispatcher(url string) *WebhookDispatcher {
	return &WebhookDispatcher{
		url:    url,
		client: resty.New().SetTimeout(5 * time.Second),
	}
}

func (d *WebhookDispatcher) Dispatch(event AlertEvent) error {
	resp, err := d.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(d.url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("alert webhook returned %s", resp.Status())
	}
	return nil
}
