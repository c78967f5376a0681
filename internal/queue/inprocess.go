package queue

import "context"

// InProcessDispatcher runs the handler on a fresh goroutine. It is the
// fallback when no Kafka brokers are configured: the checkout path still
// returns before the shipping call happens.
type InProcessDispatcher struct {
	handler TaskHandler
}

func NewInProcessDispatcher(handler TaskHandler) *InProcessDispatcher {
	return &InProcessDispatcher{handler: handler}
}

func (d *InProcessDispatcher) Dispatch(_ context.Context, task ShipmentTask) error {
	if err := task.Validate(); err != nil {
		return err
	}
	// detach from the request context; the sale is already complete
	go d.handler(context.Background(), task)
	return nil
}
