// internal/events/event_bus.go
package events

import (
	"sync"

	"go.uber.org/zap"

	"printer-service/internal/model"
)

// Publisher is the write side of the bus
type Publisher interface {
	Publish(event model.PrinterEvent)
}

// EventBus fans printer events out to subscribers. Slow subscribers miss
// events instead of blocking publishers.
type EventBus struct {
	subscribers map[int]chan model.PrinterEvent
	nextID      int
	events      chan model.PrinterEvent
	mutex       sync.RWMutex
	logger      *zap.Logger
	done        chan struct{}
	stopOnce    sync.Once
}

// NewEventBus creates a new event bus
func NewEventBus(logger *zap.Logger) *EventBus {
	return &EventBus{
		subscribers: make(map[int]chan model.PrinterEvent),
		events:      make(chan model.PrinterEvent, 1000),
		logger:      logger,
		done:        make(chan struct{}),
	}
}

// Start distributes events until Stop is called
func (eb *EventBus) Start() {
	for {
		select {
		case event := <-eb.events:
			eb.distribute(event)
		case <-eb.done:
			return
		}
	}
}

// Stop ends distribution and closes every subscriber channel
func (eb *EventBus) Stop() {
	eb.stopOnce.Do(func() {
		close(eb.done)
		eb.mutex.Lock()
		for id, ch := range eb.subscribers {
			close(ch)
			delete(eb.subscribers, id)
		}
		eb.mutex.Unlock()
	})
}

// Publish queues an event without blocking
func (eb *EventBus) Publish(event model.PrinterEvent) {
	select {
	case eb.events <- event:
	default:
		eb.logger.Warn("Event bus full, dropping event", zap.String("event_type", string(event.Type)))
	}
}

// Subscribe returns a channel of all events and a function that cancels it
func (eb *EventBus) Subscribe() (<-chan model.PrinterEvent, func()) {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	id := eb.nextID
	eb.nextID++
	ch := make(chan model.PrinterEvent, 100)
	eb.subscribers[id] = ch

	return ch, func() {
		eb.mutex.Lock()
		defer eb.mutex.Unlock()
		if sub, ok := eb.subscribers[id]; ok {
			close(sub)
			delete(eb.subscribers, id)
		}
	}
}

// SubscriberCount returns the number of live subscriptions
func (eb *EventBus) SubscriberCount() int {
	eb.mutex.RLock()
	defer eb.mutex.RUnlock()
	return len(eb.subscribers)
}

func (eb *EventBus) distribute(event model.PrinterEvent) {
	eb.mutex.RLock()
	defer eb.mutex.RUnlock()

	for _, sub := range eb.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}
