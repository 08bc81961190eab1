package ports

import "context"

// RMQConsumer drains the audit queue until the context is cancelled.
type RMQConsumer interface {
	Connect(dsn string) error
	Init() error
	DeliveryWorker(ctx context.Context)
}
