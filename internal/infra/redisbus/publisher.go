// Package redisbus publishes payment events to a Redis pub/sub channel.
package redisbus

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	json "github.com/goccy/go-json"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

const DefaultChannel = "payflow.events"

// Publisher is the subset of *redis.Client used here.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Listener forwards every event to Redis as a JSON document.
type Listener struct {
	client  Publisher
	channel string
}

func New(client Publisher, channel string) *Listener {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Listener{client: client, channel: channel}
}

// NewClient opens a client for addr and checks it with PING.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, &domain.OpError{
			Op:   "redisbus.connect",
			Kind: domain.KindInvalidConfig,
			Path: "events.redis_addr",
			Err:  fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err),
		}
	}
	return rdb, nil
}

// wireEvent is the published JSON shape.
type wireEvent struct {
	Type          domain.EventType   `json:"type"`
	CustomerID    string             `json:"customer_id"`
	Amount        string             `json:"amount"`
	Currency      string             `json:"currency"`
	PaymentType   domain.PaymentType `json:"payment_type"`
	Success       bool               `json:"success"`
	TransactionID string             `json:"transaction_id"`
	Message       string             `json:"message,omitempty"`
	OccurredAt    time.Time          `json:"occurred_at"`
}

func encode(evt domain.Event) ([]byte, error) {
	return json.Marshal(wireEvent{
		Type:          evt.Type,
		CustomerID:    evt.Customer.ID,
		Amount:        evt.Payment.Amount.StringFixed(2),
		Currency:      evt.Payment.Currency,
		PaymentType:   evt.Payment.Type,
		Success:       evt.Response.Success,
		TransactionID: evt.Response.TransactionID,
		Message:       evt.Response.Message,
		OccurredAt:    evt.OccurredAt.UTC(),
	})
}

func (l *Listener) OnEvent(ctx context.Context, evt domain.Event) error {
	payload, err := encode(evt)
	if err != nil {
		return &domain.OpError{Op: "redisbus.encode", Kind: domain.KindExecution, Err: fmt.Errorf("%w: %v", domain.ErrExecution, err)}
	}
	if err := l.client.Publish(ctx, l.channel, payload).Err(); err != nil {
		return &domain.OpError{Op: "redisbus.publish", Kind: domain.KindExecution, Err: fmt.Errorf("%w: %v", domain.ErrExecution, err)}
	}
	return nil
}

var _ ports.Listener = (*Listener)(nil)
