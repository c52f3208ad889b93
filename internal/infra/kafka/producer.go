// Package kafka は注文イベントをKafkaへ送る。
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	EventOrderCreated   = "order.created"
	orderCreatedVersion = 1

	DefaultTopic = "order.created"
)

// Envelope は全イベント共通の外側
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

type OrderCreatedItem struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

type OrderCreatedPayload struct {
	OrderID    string             `json:"order_id"`
	CustomerID string             `json:"customer_id"`
	Items      []OrderCreatedItem `json:"items"`
	CreatedAt  time.Time          `json:"created_at"`
}

// kafka.Writerのうち使う部分（テストで差し替える）
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type OrderEventPublisher struct {
	w       messageWriter
	service string
	now     func() time.Time
	logger  *log.Entry
}

func NewOrderEventPublisher(brokers []string, topic, service string, logger *log.Entry) (*OrderEventPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return newOrderEventPublisher(w, service, logger), nil
}

func newOrderEventPublisher(w messageWriter, service string, logger *log.Entry) *OrderEventPublisher {
	if logger == nil {
		logger = log.WithField("component", "order_event_publisher")
	}
	return &OrderEventPublisher{
		w:       w,
		service: service,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger,
	}
}

// PublishOrderCreated は注文IDをキーにして送る（同じ注文のイベントは同じパーティション）
func (p *OrderEventPublisher) PublishOrderCreated(ctx context.Context, order model.Order) error {
	env, err := p.orderCreatedEnvelope(order)
	if err != nil {
		return err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("kafka: marshal envelope: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(order.ID),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "x-event-type", Value: []byte(EventOrderCreated)},
			{Key: "x-event-version", Value: []byte(fmt.Sprint(orderCreatedVersion))},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write order created: %w", err)
	}

	p.logger.WithFields(log.Fields{"order_id": order.ID, "event_id": env.EventID}).Debug("order created event published")
	return nil
}

func (p *OrderEventPublisher) orderCreatedEnvelope(order model.Order) (Envelope, error) {
	items := make([]OrderCreatedItem, 0, len(order.OrderProducts))
	for _, op := range order.OrderProducts {
		items = append(items, OrderCreatedItem{
			ProductID: op.ProductID,
			Price:     op.Price,
			Quantity:  op.Quantity,
		})
	}
	payload, err := json.Marshal(OrderCreatedPayload{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Items:      items,
		CreatedAt:  order.CreatedAt,
	})
	if err != nil {
		return Envelope{}, fmt.Errorf("kafka: marshal payload: %w", err)
	}

	return Envelope{
		EventID:      uuid.NewString(),
		EventType:    EventOrderCreated,
		EventVersion: orderCreatedVersion,
		OccurredAt:   p.now(),
		Producer:     p.service,
		Payload:      payload,
	}, nil
}

func (p *OrderEventPublisher) Close() error {
	return p.w.Close()
}
