// Package notify implements the ambient user-notification channel. Core
// components publish structured notifications here and never render
// anything themselves; a single renderer subscribes and owns presentation.
package notify

import (
	"sync"
	"time"
)

// Level classifies a notification for presentation purposes.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// DefaultDuration is how long a notification should stay visible when the
// publisher does not say otherwise.
const DefaultDuration = 4 * time.Second

// Notification is a transient user-facing message.
type Notification struct {
	Level    Level
	Message  string
	Duration time.Duration
}

// Notifier is the publishing side of the notification channel. Components
// that need to raise notifications receive this interface, not the
// concrete broadcaster.
type Notifier interface {
	Publish(n Notification)
	Success(message string)
	Error(message string)
	Warning(message string)
	Info(message string)
}

// subscriberBuffer bounds each subscriber channel. Publishing never blocks:
// a subscriber that falls this far behind starts losing notifications.
const subscriberBuffer = 16

// Broadcaster fans notifications out to all current subscribers.
// The zero value is not usable; use NewBroadcaster.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan Notification
	nextID int
	closed bool
}

// NewBroadcaster creates an empty notification broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[int]chan Notification),
	}
}

// Subscribe registers a new listener. The returned cancel function removes
// the subscription and closes the channel; it is safe to call more than once.
func (b *Broadcaster) Subscribe() (<-chan Notification, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Notification, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// Publish delivers a notification to every subscriber without blocking.
func (b *Broadcaster) Publish(n Notification) {
	if n.Duration <= 0 {
		n.Duration = DefaultDuration
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- n:
		default:
			// Subscriber is not keeping up; drop rather than stall the
			// publishing component.
		}
	}
}

// Close tears down the broadcaster and closes all subscriber channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// Success publishes a success-level notification.
func (b *Broadcaster) Success(message string) {
	b.Publish(Notification{Level: LevelSuccess, Message: message})
}

// Error publishes an error-level notification.
func (b *Broadcaster) Error(message string) {
	b.Publish(Notification{Level: LevelError, Message: message})
}

// Warning publishes a warning-level notification.
func (b *Broadcaster) Warning(message string) {
	b.Publish(Notification{Level: LevelWarning, Message: message})
}

// Info publishes an info-level notification.
func (b *Broadcaster) Info(message string) {
	b.Publish(Notification{Level: LevelInfo, Message: message})
}
