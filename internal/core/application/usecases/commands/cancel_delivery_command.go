package commands

import (
	"errors"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/errs"
	"distribops/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand represents a request to cancel a delivery. A reason
// is always required; a delivery that already reached a terminal phase
// rejects the cancellation.
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	reason      string
	cancelledBy *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelDeliveryCommand creates a command to cancel a delivery.
func NewCancelDeliveryCommand(
	deliveryID kernel.UUID,
	reason string,
	cancelledBy *kernel.UUID,
) (CancelDeliveryCommand, error) {
	cmd := CancelDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setReason(reason),
		cmd.setCancelledBy(cancelledBy),
	); err != nil {
		return CancelDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to cancel.
func (c CancelDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Reason returns the required cancellation text.
func (c CancelDeliveryCommand) Reason() string {
	return c.reason
}

// CancelledBy returns the acting identity, or nil if none was captured.
func (c CancelDeliveryCommand) CancelledBy() *kernel.UUID {
	return c.cancelledBy
}

func (c *CancelDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CancelDeliveryCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	c.reason = reason
	return nil
}

func (c *CancelDeliveryCommand) setCancelledBy(cancelledBy *kernel.UUID) error {
	if cancelledBy == nil {
		return nil
	}
	if err := cancelledBy.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("cancelledBy", err)
	}

	id := *cancelledBy
	c.cancelledBy = &id
	return nil
}
