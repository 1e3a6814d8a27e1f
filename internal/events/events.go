package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TopicCustomer = "customer_events"
	TopicProduct  = "product_events"
	TopicCart     = "cart_events"
)

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event map[string]any) error
}

// New stamps an event payload with its type, id and time.
func New(typ string, fields map[string]any) map[string]any {
	event := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		event[k] = v
	}
	event["type"] = typ
	event["event_id"] = uuid.NewString()
	event["occurred_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	return event
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) PublishEvent(context.Context, string, string, map[string]any) error { return nil }
