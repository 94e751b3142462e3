package commands

import (
	"context"
	"time"

	"distribops/internal/core/domain/model/delivery"
)

// AdvanceDeliveryCommandHandler handles delivery phase transitions. All
// transition rules live on the aggregate; the handler loads, advances, and
// persists.
type AdvanceDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewAdvanceDeliveryCommandHandler creates a handler for delivery transitions.
func NewAdvanceDeliveryCommandHandler(uowFactory DeliveryUoWFactory) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves the delivery into the command's target phase and returns the
// updated delivery.
func (h *AdvanceDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceDeliveryCommand,
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

	if err = aggregate.Advance(cmd.NewStatus(), cmd.Notes(), cmd.UpdatedBy(), time.Now().UTC()); err != nil {
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
