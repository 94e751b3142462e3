package commands

import (
	"context"
	"time"

	"distribops/internal/core/domain/model/delivery"
)

// CancelDeliveryCommandHandler handles delivery cancellation. Terminality is
// enforced by the aggregate regardless of the caller.
type CancelDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewCancelDeliveryCommandHandler creates a handler for delivery cancellation.
func NewCancelDeliveryCommandHandler(uowFactory DeliveryUoWFactory) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels the delivery with the command's reason and returns the
// updated delivery.
func (h *CancelDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CancelDeliveryCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Cancel(cmd.Reason(), cmd.CancelledBy(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
