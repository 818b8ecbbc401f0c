package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/workorder-service/internal/config"
	"github.com/spec-kit/workorder-service/internal/events"
	"github.com/spec-kit/workorder-service/internal/observability"
)

// NotificationWorker subscribes to workflow events, counts transitions and
// forwards each event to the configured webhook. Delivery is best effort:
// a failed post is logged and dropped, never retried.
type NotificationWorker struct {
	logger  *zap.Logger
	metrics *observability.Metrics
	cfg     config.NotificationConfig
	client  *http.Client
}

// NewNotificationWorker creates the worker.
func NewNotificationWorker(logger *zap.Logger, metrics *observability.Metrics, cfg config.NotificationConfig) *NotificationWorker {
	return &NotificationWorker{
		logger:  logger,
		metrics: metrics,
		cfg:     cfg,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Register subscribes the worker to every workflow event.
func (w *NotificationWorker) Register(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventTicketSubmitted,
		events.EventTicketDispatched,
		events.EventTicketAccepted,
		events.EventTicketReplied,
		events.EventTicketRejected,
		events.EventTicketCollaborated,
		events.EventTicketClosed,
		events.EventTicketReopened,
		events.EventTicketDeleted,
	} {
		dispatcher.Subscribe(eventType, w.handle)
	}
}

func (w *NotificationWorker) handle(ctx context.Context, event events.Event) error {
	w.logger.Info("workflow event",
		zap.String("event_type", string(event.Type)),
		zap.Int64("ticket_id", event.TicketID),
		zap.String("actor", event.Actor.Name),
		zap.String("department", event.Actor.Department))
	w.metrics.RecordTransition(string(event.Type))
	w.forwardWebhook(ctx, event)
	return nil
}

func (w *NotificationWorker) forwardWebhook(ctx context.Context, event events.Event) {
	if strings.TrimSpace(w.cfg.WebhookURL) == "" {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		w.logger.Warn("webhook payload encode failed", zap.Error(err))
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		w.logger.Warn("webhook request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.logger.Warn("webhook delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		w.logger.Warn("webhook delivery rejected",
			zap.String("event_type", string(event.Type)),
			zap.Int("status", resp.StatusCode))
	}
}
