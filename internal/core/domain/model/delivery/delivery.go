package delivery

import (
	"errors"
	"time"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through the NewDelivery or RestoreDelivery factory methods.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

const (
	// initialLocation is where every delivery starts.
	initialLocation = "Warehouse"

	// initialHistoryNotes is recorded on the first status history entry.
	initialHistoryNotes = "Order received and processing started"

	// deliveryLeadTime is the estimate window assigned at creation.
	deliveryLeadTime = 72 * time.Hour
)

// Delivery is the aggregate root tracking an order's physical movement through
// the fixed phase sequence. Exactly one Delivery exists per order; the storage
// layer enforces the uniqueness with a constraint on the order id.
//
// Invariants:
//   - statusHistory is append-only, one entry per transition including the
//     initial entry at creation; the last entry's status equals the current
//     status
//   - Delivered and Cancelled are terminal
//   - cancellationReason is present iff status is Cancelled
//   - actualDeliveryDate is set only on the transition into Delivered
type Delivery struct {
	id      kernel.UUID
	orderID kernel.UUID
	shopID  kernel.UUID

	status                Status
	currentLocation       string
	estimatedDeliveryDate time.Time
	actualDeliveryDate    *time.Time
	trackingNumber        kernel.TrackingNumber
	statusHistory         []StatusUpdate
	cancellationReason    *CancellationReason

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewDelivery materializes the delivery for an order: phase Packaging at the
// warehouse, a fresh tracking number, an estimate of now plus three days, and
// the initial history entry.
func NewDelivery(id, orderID, shopID kernel.UUID, now time.Time) (*Delivery, error) {
	d := &Delivery{
		status:                StatusPackaging,
		currentLocation:       initialLocation,
		estimatedDeliveryDate: now.Add(deliveryLeadTime),
		trackingNumber:        kernel.NewRandomTrackingNumber(),
		createdAt:             now,
		updatedAt:             now,
		isConstructed:         true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setShopID(shopID),
	); err != nil {
		return nil, err
	}

	initial, err := NewStatusUpdate(StatusPackaging, now, initialHistoryNotes, "", nil)
	if err != nil {
		return nil, err
	}
	d.statusHistory = []StatusUpdate{initial}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence.
func RestoreDelivery(
	id, orderID, shopID kernel.UUID,
	status Status,
	currentLocation string,
	estimatedDeliveryDate time.Time,
	actualDeliveryDate *time.Time,
	trackingNumber kernel.TrackingNumber,
	statusHistory []StatusUpdate,
	cancellationReason *CancellationReason,
	createdAt, updatedAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		currentLocation:       currentLocation,
		estimatedDeliveryDate: estimatedDeliveryDate,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
		isConstructed:         true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setShopID(shopID),
		status.Validate(),
		trackingNumber.Validate(),
	); err != nil {
		return nil, err
	}
	d.status = status
	d.trackingNumber = trackingNumber

	if actualDeliveryDate != nil {
		date := *actualDeliveryDate
		d.actualDeliveryDate = &date
	}
	if cancellationReason != nil {
		if err := cancellationReason.Validate(); err != nil {
			return nil, err
		}
		reason := *cancellationReason
		d.cancellationReason = &reason
	}

	d.statusHistory = make([]StatusUpdate, len(statusHistory))
	for i, update := range statusHistory {
		if err := update.Validate(); err != nil {
			return nil, err
		}
		d.statusHistory[i] = update
	}

	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the identifier of the order this delivery fulfills.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// ShopID returns the identifier of the destination shop.
func (d *Delivery) ShopID() kernel.UUID {
	return d.shopID
}

// Status returns the current phase.
func (d *Delivery) Status() Status {
	return d.status
}

// CurrentLocation returns the last known location. May be empty.
func (d *Delivery) CurrentLocation() string {
	return d.currentLocation
}

// EstimatedDeliveryDate returns the estimate assigned at creation.
func (d *Delivery) EstimatedDeliveryDate() time.Time {
	return d.estimatedDeliveryDate
}

// ActualDeliveryDate returns when the delivery entered Delivered, or nil.
func (d *Delivery) ActualDeliveryDate() *time.Time {
	if d.actualDeliveryDate == nil {
		return nil
	}
	date := *d.actualDeliveryDate
	return &date
}

// TrackingNumber returns the label code assigned at creation.
func (d *Delivery) TrackingNumber() kernel.TrackingNumber {
	return d.trackingNumber
}

// StatusHistory returns the append-only transition history, oldest first.
// The returned slice is a copy.
func (d *Delivery) StatusHistory() []StatusUpdate {
	history := make([]StatusUpdate, len(d.statusHistory))
	copy(history, d.statusHistory)
	return history
}

// CancellationReason returns the cancellation record, or nil when the
// delivery is not cancelled.
func (d *Delivery) CancellationReason() *CancellationReason {
	if d.cancellationReason == nil {
		return nil
	}
	reason := *d.cancellationReason
	return &reason
}

// CreatedAt returns the delivery creation time.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// Advance moves the delivery into newStatus, appending a history entry that
// captures the supplied notes and identity plus the delivery's location at
// the time of the call.
//
// Rules enforced here, unconditionally:
//   - a terminal delivery rejects every transition (ErrInvalidTransition)
//   - forward transitions must follow the adjacent phase order
//   - Cancelled requires non-empty notes, which become the cancellation reason
//   - Delivered stamps actualDeliveryDate
func (d *Delivery) Advance(newStatus Status, notes string, updatedBy *kernel.UUID, now time.Time) error {
	if err := d.Validate(); err != nil {
		return err
	}

	next, err := d.status.TransitionTo(newStatus)
	if err != nil {
		return err
	}

	if next == StatusCancelled {
		reason, reasonErr := NewCancellationReason(notes, updatedBy, now, "")
		if reasonErr != nil {
			return reasonErr
		}
		d.cancellationReason = &reason
	}

	update, err := NewStatusUpdate(next, now, notes, d.currentLocation, updatedBy)
	if err != nil {
		return err
	}

	d.statusHistory = append(d.statusHistory, update)
	d.status = next
	if next == StatusDelivered {
		deliveredAt := now
		d.actualDeliveryDate = &deliveredAt
	}
	d.updatedAt = now

	return nil
}

// Cancel moves the delivery into Cancelled with the given reason text.
// It is a convenience over Advance and enforces the same rules.
func (d *Delivery) Cancel(reason string, cancelledBy *kernel.UUID, now time.Time) error {
	return d.Advance(StatusCancelled, reason, cancelledBy, now)
}

// MoveTo updates the last known location without recording a transition.
// Subsequent history entries capture the new location.
func (d *Delivery) MoveTo(location string, now time.Time) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}

	d.currentLocation = location
	d.updatedAt = now
	return nil
}

// IsDelayed reports whether the delivery is past its estimate: it has an
// estimated date, is not terminal, and the UTC calendar date of now is
// strictly after the estimate's UTC calendar date. Time of day is ignored.
// The flag is derived on every read and never stored.
func (d *Delivery) IsDelayed(now time.Time) bool {
	if d.status.IsTerminal() {
		return false
	}
	if d.estimatedDeliveryDate.IsZero() {
		return false
	}

	estimated := dateOnly(d.estimatedDeliveryDate)
	today := dateOnly(now)
	return today.After(estimated)
}

// dateOnly truncates to the calendar date in UTC so operands carrying
// different zones land on the same calendar.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shopId", err)
	}
	d.shopID = shopID
	return nil
}
