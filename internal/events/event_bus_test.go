package events

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"printer-service/internal/model"
)

func TestEventBusFanOut(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	go bus.Start()
	defer bus.Stop()

	a, cancelA := bus.Subscribe()
	b, cancelB := bus.Subscribe()
	defer cancelB()

	bus.Publish(model.NewPrinterEvent(model.EventDispatchSucceeded, "p1", nil))

	for name, ch := range map[string]<-chan model.PrinterEvent{"a": a, "b": b} {
		select {
		case ev := <-ch:
			if ev.PrinterID != "p1" || ev.Type != model.EventDispatchSucceeded {
				t.Fatalf("subscriber %s got %+v", name, ev)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("subscriber %s received nothing", name)
		}
	}

	cancelA()
	if _, open := <-a; open {
		t.Fatalf("cancelled subscription still open")
	}
	if got := bus.SubscriberCount(); got != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", got)
	}
	// Cancelling twice must not panic.
	cancelA()
}
