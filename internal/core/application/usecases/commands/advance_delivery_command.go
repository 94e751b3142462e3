package commands

import (
	"errors"

	"distribops/internal/core/domain/model/delivery"
	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/errs"
	"distribops/internal/pkg/guard"
)

var ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
	"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
)

// AdvanceDeliveryCommand represents a request to move a delivery into the
// given phase. The aggregate enforces adjacency and terminality; this command
// only carries validated input.
type AdvanceDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	newStatus  delivery.Status
	notes      string
	updatedBy  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceDeliveryCommand creates a command to advance a delivery.
// Notes are optional except for cancellation, which the aggregate enforces.
func NewAdvanceDeliveryCommand(
	deliveryID kernel.UUID,
	newStatus delivery.Status,
	notes string,
	updatedBy *kernel.UUID,
) (AdvanceDeliveryCommand, error) {
	cmd := AdvanceDeliveryCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setNewStatus(newStatus),
		cmd.setUpdatedBy(updatedBy),
	); err != nil {
		return AdvanceDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to advance.
func (c AdvanceDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// NewStatus returns the target phase.
func (c AdvanceDeliveryCommand) NewStatus() delivery.Status {
	return c.newStatus
}

// Notes returns free-text notes recorded on the history entry. May be empty.
func (c AdvanceDeliveryCommand) Notes() string {
	return c.notes
}

// UpdatedBy returns the acting identity, or nil if none was captured.
func (c AdvanceDeliveryCommand) UpdatedBy() *kernel.UUID {
	return c.updatedBy
}

func (c *AdvanceDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *AdvanceDeliveryCommand) setNewStatus(newStatus delivery.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}

func (c *AdvanceDeliveryCommand) setUpdatedBy(updatedBy *kernel.UUID) error {
	if updatedBy == nil {
		return nil
	}
	if err := updatedBy.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("updatedBy", err)
	}

	id := *updatedBy
	c.updatedBy = &id
	return nil
}
