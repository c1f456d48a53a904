// Package events fans committed domain events out to live subscribers.
//
// Publishing is best effort: sinks log failures and never report them to the
// caller, so a broken broker never fails a committed workflow step.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types
const (
	VendorInvited    = "vendor.invited"
	OrderCreated     = "order.created"
	OrderAccepted    = "order.accepted"
	OrderReadyToShip = "order.ready_to_ship"
	DocumentUploaded = "document.uploaded"
	DocumentApproved = "document.approved"
	DocumentRejected = "document.rejected"
	ShipmentCreated  = "shipment.created"
	OrderDelivered   = "order.delivered"
)

// Event is the JSON payload delivered to every sink.
type Event struct {
	Event      string                 `json:"event"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

func New(eventType string, data map[string]interface{}) Event {
	return Event{Event: eventType, OccurredAt: time.Now().UTC(), Data: data}
}

func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Multi publishes to every sink in order.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) {
	for _, p := range m {
		p.Publish(ctx, event)
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}

// Recorder keeps published events in memory.
type Recorder struct {
	ch chan Event
}

func NewRecorder(size int) *Recorder {
	return &Recorder{ch: make(chan Event, size)}
}

func (r *Recorder) Publish(_ context.Context, event Event) {
	select {
	case r.ch <- event:
	default:
	}
}

// Drain returns every event recorded so far.
func (r *Recorder) Drain() []Event {
	var out []Event
	for {
		select {
		case e := <-r.ch:
			out = append(out, e)
		default:
			return out
		}
	}
}
