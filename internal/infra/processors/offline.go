package processors

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

// Offline records a payment for manual settlement. It never fails.
type Offline struct {
	node *snowflake.Node
}

// NewOffline creates an Offline processor whose ids come from the given snowflake node (0-1023).
func NewOffline(nodeID int64) (*Offline, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "processors.offline.new",
			Kind: domain.KindInvalidConfig,
			Path: "node_id",
			Err:  fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err),
		}
	}
	return &Offline{node: node}, nil
}

func (o *Offline) Name() string { return "offline" }

func (o *Offline) Process(_ context.Context, _ domain.Request) (domain.PaymentResponse, error) {
	return domain.PaymentResponse{
		Success:       true,
		TransactionID: "offline-" + o.node.Generate().String(),
		Message:       "recorded offline, manual settlement pending",
	}, nil
}

var (
	_ ports.PaymentProcessor = (*Offline)(nil)
	_ ports.Named            = (*Offline)(nil)
)
