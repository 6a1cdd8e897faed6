package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kmwenda/stocktrack-backend/internal/modules/user"
)

// Notification kinds sent alongside the audit kinds. LowStock has no audit
// counterpart; it is an alert layered on top of a stock adjustment.
const (
	KindItemCreated   = "item_created"
	KindItemUpdated   = "item_updated"
	KindStockAdjusted = "stock_adjusted"
	KindLowStock      = "low_stock"
)

// Message is the ephemeral payload delivered to each recipient. It is not
// persisted here; the delivery collaborator decides what to keep.
type Message struct {
	ItemID        uuid.UUID `json:"inventory_item_id"`
	ItemName      string    `json:"item_name"`
	Kind          string    `json:"type"`
	Text          string    `json:"message"`
	WarehouseID   uuid.UUID `json:"warehouse_id"`
	Quantity      int       `json:"quantity"`
	MinStockLevel int       `json:"min_stock_level"`
	CreatedAt     time.Time `json:"created_at"`
}

// Deliverer hands one (recipient, message) pair to the external delivery
// channel. Delivery is best effort; the dispatcher only guarantees an
// attempt per recipient.
type Deliverer interface {
	Deliver(ctx context.Context, recipientID uuid.UUID, msg Message) error
}

// RecipientSource resolves who should hear about activity in a warehouse:
// every admin plus that warehouse's managers.
type RecipientSource interface {
	NotifiableUsers(ctx context.Context, warehouseID uuid.UUID) ([]*user.User, error)
}

// Dispatcher computes the recipient set for a message and forwards it to the
// delivery channel.
type Dispatcher struct {
	recipients RecipientSource
	deliverer  Deliverer
	logger     *zap.Logger
}

// NewDispatcher creates a notification dispatcher.
func NewDispatcher(recipients RecipientSource, deliverer Deliverer, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{recipients: recipients, deliverer: deliverer, logger: logger}
}

// Fanout delivers msg to all admins and the managers of the message's
// warehouse. A failed delivery to one recipient is logged and does not stop
// the rest of the fan-out.
func (d *Dispatcher) Fanout(ctx context.Context, msg Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	recipients, err := d.recipients.NotifiableUsers(ctx, msg.WarehouseID)
	if err != nil {
		return err
	}

	for _, r := range recipients {
		if err := d.deliverer.Deliver(ctx, r.ID, msg); err != nil {
			d.logger.Error("notification delivery failed",
				zap.String("recipient_id", r.ID.String()),
				zap.String("item_id", msg.ItemID.String()),
				zap.String("type", msg.Kind),
				zap.Error(err))
		}
	}
	return nil
}
