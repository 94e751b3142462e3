package commands

import (
	"context"
	"errors"
	"time"

	"distribops/internal/core/domain/model/delivery"
	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/errs"
)

// CreateDeliveryCommandHandler materializes the delivery for an order.
//
// At most one delivery exists per order. The handler checks for an existing
// delivery first and returns it unchanged; the storage-level unique
// constraint on the order id closes the race between concurrent creators,
// and a duplicate-key failure likewise resolves to the already-stored
// delivery. Handling the same order twice is therefore always safe.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewCreateDeliveryCommandHandler creates a handler for delivery materialization.
func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the order's delivery, creating it if it does not exist yet.
func (h *CreateDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryCommand,
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

	existing, err := deliveryRepo.GetByOrderID(ctx, cmd.OrderID())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	aggregate, err := delivery.NewDelivery(kernel.NewUUID(), cmd.OrderID(), cmd.ShopID(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = deliveryRepo.Add(ctx, aggregate); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			// Lost the race: another creator inserted first. The failed
			// insert poisons this transaction, so fetch in a fresh one.
			_ = uow.Rollback(ctx)
			return h.getByOrderID(ctx, cmd.OrderID())
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (h *CreateDeliveryCommandHandler) getByOrderID(
	ctx context.Context,
	orderID kernel.UUID,
) (*delivery.Delivery, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.DeliveryRepository().GetByOrderID(ctx, orderID)
}
