// Package notify delivers transaction outcome messages over email or SMS.
// Delivery is simulated: messages go to a Sender, which by default prints them.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aalvaropc/payflow/internal/domain"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	Channel domain.NotificationChannel
	From    string
	To      string
	Subject string
	Body    string
}

// Sender hands a rendered message to a transport.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// WriterSender prints each message to w. Safe for concurrent use.
type WriterSender struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSender(w io.Writer) *WriterSender {
	if w == nil {
		w = io.Discard
	}
	return &WriterSender{w: w}
}

func (s *WriterSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if msg.Subject != "" {
		_, err = fmt.Fprintf(s.w, "[%s] %s -> %s | %s | %s\n", msg.Channel, msg.From, msg.To, msg.Subject, msg.Body)
	} else {
		_, err = fmt.Fprintf(s.w, "[%s] %s -> %s | %s\n", msg.Channel, msg.From, msg.To, msg.Body)
	}
	if err != nil {
		return &domain.OpError{Op: "notify.send", Kind: domain.KindExecution, Err: fmt.Errorf("%w: %v", domain.ErrExecution, err)}
	}
	return nil
}
