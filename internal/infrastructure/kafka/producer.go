package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/product-ordering/internal/cfg"
	"github.com/DRSN-tech/product-ordering/internal/usecase"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/DRSN-tech/product-ordering/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// WriteRawMessage пишет уже закодированное событие. Ключ — идентификатор заказа,
// поэтому события одного заказа попадают в одну партицию.
func (p *Producer) WriteRawMessage(ctx context.Context, req *usecase.WriteRawMessageReq) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(req.Key),
		Value: req.Payload,
	})
}

func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// EncodeOrderSent кодирует событие order.sent как protobuf Struct.
// Денежные суммы передаются строками.
func (p *Producer) EncodeOrderSent(eventID string, snapshot *usecase.OrderSnapshot) ([]byte, error) {
	const op = "Producer.EncodeOrderSent"

	event, err := structpb.NewStruct(orderSentFields(eventID, snapshot))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	data, err := proto.Marshal(event)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return data, nil
}

func orderSentFields(eventID string, snapshot *usecase.OrderSnapshot) map[string]any {
	items := make([]any, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, map[string]any{
			"lineItemId":  item.LineItemID,
			"productId":   item.ProductID,
			"productName": item.ProductName,
			"listPrice":   item.ListPrice.String(),
			"quantity":    item.Quantity,
			"totalPrice":  item.TotalPrice.String(),
		})
	}

	return map[string]any{
		"eventId":     eventID,
		"eventType":   string(usecase.OrderSent),
		"orderId":     snapshot.OrderID,
		"orderNumber": snapshot.OrderNumber,
		"sentAt":      snapshot.SentAt.UTC().Format(time.RFC3339Nano),
		"total":       snapshot.Total.String(),
		"items":       items,
	}
}
