package queue

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// TaskHandler processes one shipment task. Errors are logged and the
// message is still committed: shipping is best-effort and a poison task
// must not wedge the partition.
type TaskHandler func(ctx context.Context, task ShipmentTask)

// Consumer reads shipment tasks and hands them to the worker.
type Consumer struct {
	r       *kafka.Reader
	handler TaskHandler
	log     *zap.Logger
}

func NewConsumer(brokers []string, topic, groupID string, handler TaskHandler, log *zap.Logger) *Consumer {
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1e3,
			MaxBytes: 1e6,
		}),
		handler: handler,
		log:     log,
	}
}

func (c *Consumer) Close() error { return c.r.Close() }

// Run consumes until the context is cancelled or the reader fails.
func (c *Consumer) Run(ctx context.Context) {
	for {
		m, err := c.r.ReadMessage(ctx)
		if err != nil {
			return // ctx cancelled or connection lost
		}

		var task ShipmentTask
		if err := json.Unmarshal(m.Value, &task); err != nil {
			c.log.Warn("shipment task unmarshal", zap.Error(err))
			continue
		}
		if err := task.Validate(); err != nil {
			c.log.Warn("shipment task invalid", zap.Error(err))
			continue
		}
		c.handler(ctx, task)
	}
}
