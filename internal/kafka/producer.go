package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/maintenance-system/maintenance-service/internal/logs"
	"github.com/maintenance-system/maintenance-service/internal/model"
)

// RequestEventProducer — lifecycle events for maintenance requests
// (mockable in tests).
type RequestEventProducer interface {
	ProduceRequestEvent(ctx context.Context, event string, m *model.MaintenanceRequest)
}

// Producer writes request events to a Kafka topic (best-effort, never
// blocks the API).
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer returns a producer. With no brokers or an empty topic all
// methods are no-ops.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return &Producer{}
	}
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// ProduceRequestEvent publishes one event (request.created,
// request.started, request.finished) with the record's key fields.
func (p *Producer) ProduceRequestEvent(ctx context.Context, event string, m *model.MaintenanceRequest) {
	if p.writer == nil || m == nil {
		return
	}
	msg := map[string]interface{}{
		"event":            event,
		"request_id":       int64(m.ID),
		"requester_name":   m.RequesterName,
		"department":       m.Department,
		"maintenance_type": string(m.MaintenanceType),
		"status":           string(m.Status),
		"technician_name":  m.TechnicianName,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		logs.Logger.Warnf("kafka: marshal request event: %v", err)
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: body}); err != nil {
		logs.Logger.Warnf("kafka: write request event: %v", err)
	}
}

// ProduceAsync fires the event in a goroutine with its own timeout so
// it survives request cancellation without delaying the response.
func (p *Producer) ProduceAsync(event string, m *model.MaintenanceRequest) {
	if p.writer == nil || m == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		p.ProduceRequestEvent(ctx, event, m)
	}()
}

// Close closes the writer.
func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
