package secondary

import "context"

// Event is a realtime notification pushed to connected clients.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload"`
}

// Notifier defines the secondary port for realtime fan-out. Delivery is
// fire-and-forget, at most once: implementations must never block a
// mutating request on a slow client.
type Notifier interface {
	Broadcast(ctx context.Context, event Event)
}

// NopNotifier discards all events. Used where no realtime hub is wired.
type NopNotifier struct{}

// Broadcast implements Notifier.
func (NopNotifier) Broadcast(ctx context.Context, event Event) {}
