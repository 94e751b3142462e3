// Package eventhandlers reacts to integration events pulled off the outbox.
// Handlers translate event payloads into commands; they never talk to
// storage directly.
package eventhandlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"distribops/internal/core/application/usecases/commands"
	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/errs"
)

// OrderCreatedHandler materializes a delivery for every created order. It is
// invoked by the outbox dispatcher, possibly more than once per order; the
// underlying command is idempotent, so redelivery is harmless.
type OrderCreatedHandler struct {
	createDelivery commands.CreateDeliveryCommandHandler
	logger         *slog.Logger
}

// NewOrderCreatedHandler creates a handler for order-created events.
func NewOrderCreatedHandler(
	createDelivery commands.CreateDeliveryCommandHandler,
	logger *slog.Logger,
) OrderCreatedHandler {
	return OrderCreatedHandler{
		createDelivery: createDelivery,
		logger:         logger.With("component", "order-created-handler"),
	}
}

// Handle decodes the event payload and issues the delivery creation command.
func (h OrderCreatedHandler) Handle(ctx context.Context, payload []byte) error {
	var event commands.OrderCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		return err
	}
	shopID, err := kernel.UUIDFromString(event.ShopID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateDeliveryCommand(orderID, shopID)
	if err != nil {
		return err
	}

	created, err := h.createDelivery.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "delivery materialized",
		"deliveryId", created.ID().String(),
		"orderId", orderID.String(),
		"trackingNumber", created.TrackingNumber().String(),
	)
	return nil
}
