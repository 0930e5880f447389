package events

import (
	"context"
	"sync"
	"time"
)

const (
	TopicCart     = "cart_events"
	TopicWishlist = "wishlist_events"
)

const (
	CartItemAdded      = "cart_item_added"
	CartItemUpdated    = "cart_item_updated"
	CartItemRemoved    = "cart_item_removed"
	CartProductRemoved = "cart_product_removed"
	CartCleared        = "cart_cleared"
	WishlistAdded      = "wishlist_added"
	WishlistRemoved    = "wishlist_removed"
)

type Event struct {
	Type      string    `json:"type"`
	SessionID string    `json:"session_id"`
	ProductID int       `json:"product_id,omitempty"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher delivers domain events keyed by session id.
type Publisher interface {
	Publish(ctx context.Context, topic string, ev Event) error
	Close() error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }
func (NopPublisher) Close() error { return nil }

type Published struct {
	Topic string
	Event Event
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Published
	Err    error
}

func (r *Recorder) Publish(_ context.Context, topic string, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, Published{Topic: topic, Event: ev})
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Events() []Published {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Published, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, p := range r.events {
		out[i] = p.Event.Type
	}
	return out
}
