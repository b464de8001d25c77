package realtime

import (
	"sync"

	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

// Event is an opaque set of fields describing a state change. Producers set
// "type"; stream events also carry "stream" and "church_id".
type Event map[string]any

// Type returns the event's "type" field, or "" when missing.
func (e Event) Type() string {
	s, _ := e["type"].(string)
	return s
}

// Subscriber receives every broadcast event while registered.
type Subscriber func(Event)

type subscription struct {
	fn Subscriber
}

// Registry is the process-wide set of live subscribers. One is built at start
// and handed to everything that publishes or streams.
type Registry struct {
	mu   sync.Mutex
	subs []*subscription
	log  *logger.Logger
}

func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{log: log.With("component", "EventRegistry")}
}

// Subscribe registers fn and returns a function that removes exactly this
// registration. Calling the returned function more than once is a no-op.
func (r *Registry) Subscribe(fn Subscriber) func() {
	sub := &subscription{fn: fn}

	r.mu.Lock()
	r.subs = append(r.subs, sub)
	n := len(r.subs)
	r.mu.Unlock()
	r.log.Debug("subscriber added", "subscribers", n)

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(sub) })
	}
}

func (r *Registry) remove(sub *subscription) {
	r.mu.Lock()
	for i, s := range r.subs {
		if s == sub {
			r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
			break
		}
	}
	n := len(r.subs)
	r.mu.Unlock()
	r.log.Debug("subscriber removed", "subscribers", n)
}

// Broadcast invokes every registered subscriber once, in registration order.
// Subscribers run outside the lock on a snapshot, so a subscriber may
// unsubscribe itself. A panicking subscriber is logged and skipped.
func (r *Registry) Broadcast(ev Event) {
	r.mu.Lock()
	if len(r.subs) == 0 {
		r.mu.Unlock()
		return
	}
	snapshot := make([]*subscription, len(r.subs))
	copy(snapshot, r.subs)
	r.mu.Unlock()

	for _, s := range snapshot {
		r.deliver(s, ev)
	}
}

func (r *Registry) deliver(s *subscription, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("subscriber panicked", "event_type", ev.Type(), "panic", rec)
		}
	}()
	s.fn(ev)
}

// Len reports the number of registered subscribers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
