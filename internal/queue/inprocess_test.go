package queue

import (
	"context"
	"testing"
	"time"
)

func TestInProcessDispatcherRunsHandler(t *testing.T) {
	done := make(chan ShipmentTask, 1)
	d := NewInProcessDispatcher(func(_ context.Context, task ShipmentTask) {
		done <- task
	})

	task := ShipmentTask{OrderID: "ord-1", Items: []TaskItem{{ProductID: "p1", Quantity: 1, Price: 100}}}
	if err := d.Dispatch(context.Background(), task); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	select {
	case got := <-done:
		if got.OrderID != "ord-1" {
			t.Fatalf("handler got order %q", got.OrderID)
		}
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestInProcessDispatcherRejectsInvalidTask(t *testing.T) {
	d := NewInProcessDispatcher(func(context.Context, ShipmentTask) {
		t.Error("handler must not run for invalid tasks")
	})

	if err := d.Dispatch(context.Background(), ShipmentTask{}); err == nil {
		t.Fatal("expected validation error for empty order id")
	}
}

func TestShipmentTaskValidate(t *testing.T) {
	if err := (ShipmentTask{}).Validate(); err == nil {
		t.Fatal("empty task should not validate")
	}
	if err := (ShipmentTask{OrderID: "ord-1"}).Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}
}
