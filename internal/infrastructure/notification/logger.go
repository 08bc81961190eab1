package notification

import (
	"context"

	"go.uber.org/zap"

	"user-admin-dashboard/internal/application/authflow"
)

// LoggerNotifier writes messages to the structured log instead of sending
// them. It is the delivery channel for self-issued codes until an SMS
// gateway is wired in.
type LoggerNotifier struct {
	logger *zap.Logger
}

func NewLoggerNotifier(logger *zap.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

func (n *LoggerNotifier) Send(_ context.Context, message authflow.Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification",
		zap.String("kind", message.Kind),
		zap.String("destination", message.Destination),
		zap.String("body", message.Body),
	)
	return nil
}
