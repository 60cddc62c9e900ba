// Package events fans order lifecycle notifications out to websocket
// dashboards and Kafka.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Type string

const (
	OrderPlaced        Type = "order.placed"
	OrderStatusChanged Type = "order.status_changed"
)

type Event struct {
	ID       string             `json:"id"`
	Type     Type               `json:"type"`
	OrderID  uint               `json:"order_id"`
	UserID   uint               `json:"user_id"`
	Status   models.OrderStatus `json:"status"`
	Total    decimal.Decimal    `json:"total"`
	Items    int                `json:"items"`
	Occurred time.Time          `json:"occurred_at"`
}

func NewOrderEvent(t Type, o *models.Order) Event {
	return Event{
		ID:       uuid.NewString(),
		Type:     t,
		OrderID:  o.ID,
		UserID:   o.UserID,
		Status:   o.Status,
		Total:    o.Total,
		Items:    len(o.Items),
		Occurred: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi publishes to every sink and joins their errors. One failing sink
// does not stop the others.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
