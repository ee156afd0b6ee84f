// Package notify delivers lifecycle notifications to their sinks: in-process
// subscribers (Hub), the structured log (LogNotifier) and Kafka (KafkaNotifier).
// Fanout combines them behind one ports.Notifier.
package notify

import (
	"context"
	"sync"

	"station/internal/core/domain/model/kernel"
	"station/internal/core/ports"
)

// DefaultSubscriptionBuffer is the number of notifications a slow subscriber may lag
// behind before further notifications to it are dropped.
const DefaultSubscriptionBuffer = 32

// Hub fans notifications out to in-process subscribers such as websocket sessions.
// Send never blocks: a subscriber whose buffer is full misses the notification.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	buffer int
}

// NewHub creates a hub whose subscriptions buffer up to buffer notifications.
// A non-positive buffer falls back to DefaultSubscriptionBuffer.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultSubscriptionBuffer
	}
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: buffer,
	}
}

// Subscription receives notifications from a Hub until it is closed. The channel is
// closed when the subscriber calls Close or when the followed order is deleted.
type Subscription struct {
	hub     *Hub
	orderID *kernel.UUID
	ch      chan ports.Notification
	once    sync.Once
}

// Subscribe registers a subscriber. With a nil orderID the subscriber receives every
// notification; otherwise only the notifications of that order.
func (h *Hub) Subscribe(orderID *kernel.UUID) *Subscription {
	s := &Subscription{
		hub:     h,
		orderID: orderID,
		ch:      make(chan ports.Notification, h.buffer),
	}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	return s
}

// C returns the notification channel.
func (s *Subscription) C() <-chan ports.Notification {
	return s.ch
}

// Close unregisters the subscription. Calling Close more than once is safe.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.closeLocked()
}

func (s *Subscription) closeLocked() {
	s.once.Do(func() {
		delete(s.hub.subs, s)
		close(s.ch)
	})
}

func (s *Subscription) follows(n ports.Notification) bool {
	if s.orderID == nil {
		return true
	}
	return n.OrderID != nil && n.OrderID.IsEqual(*s.orderID)
}

// Notify implements ports.Notifier. A successful order.deleted notification is the
// last one an order subscriber receives: its subscription is closed right after.
func (h *Hub) Notify(_ context.Context, n ports.Notification) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	deleted := n.Event == ports.EventOrderDeleted && n.Kind == ports.NotificationSuccess

	for s := range h.subs {
		if !s.follows(n) {
			continue
		}

		select {
		case s.ch <- n:
		default:
		}

		if deleted && s.orderID != nil {
			s.closeLocked()
		}
	}

	return nil
}

// Subscribers returns the number of open subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
