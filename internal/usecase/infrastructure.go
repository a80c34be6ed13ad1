package usecase

import "context"

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// EventEncoder кодирует тело события order.sent в формат, который уходит в Kafka.
type EventEncoder interface {
	EncodeOrderSent(eventID string, snapshot *OrderSnapshot) ([]byte, error)
}
