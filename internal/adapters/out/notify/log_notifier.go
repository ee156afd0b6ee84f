package notify

import (
	"context"
	"log/slog"

	"station/internal/core/ports"
)

// LogNotifier writes every notification to the structured log; error notifications
// are logged at warning level.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifications")}
}

func (l *LogNotifier) Notify(ctx context.Context, n ports.Notification) error {
	attrs := []any{
		"event", n.Event,
		"status", n.Status,
		"message", n.Message,
	}
	if n.OrderID != nil {
		attrs = append(attrs, "order_id", n.OrderID.String(), "po_number", n.PONumber)
	}

	if n.Kind == ports.NotificationError {
		l.logger.WarnContext(ctx, "operation failed", attrs...)
		return nil
	}

	l.logger.InfoContext(ctx, "operation succeeded", attrs...)
	return nil
}
