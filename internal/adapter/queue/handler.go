package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes a single delivery. Handlers must be idempotent:
// return nil to ACK, an error to NACK (requeue behavior is set on the
// Router).
type Handler interface {
	Handle(ctx context.Context, d amqp.Delivery) error
}
