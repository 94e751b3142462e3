package delivery

import (
	"errors"
	"time"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/guard"
)

// ErrStatusUpdateIsNotConstructed is returned when a StatusUpdate was not
// created through the NewStatusUpdate factory method.
var ErrStatusUpdateIsNotConstructed = errors.New(
	"StatusUpdate must be created via NewStatusUpdate constructor",
)

// StatusUpdate is one append-only history entry: the phase a delivery entered,
// when, and by whom. Entries are never mutated or removed.
type StatusUpdate struct {
	status    Status
	timestamp time.Time
	notes     string
	location  string
	updatedBy *kernel.UUID

	guard guard.ConstructorGuard
}

// NewStatusUpdate creates a history entry. notes, location, and updatedBy are
// optional; status must be valid.
func NewStatusUpdate(
	status Status,
	timestamp time.Time,
	notes string,
	location string,
	updatedBy *kernel.UUID,
) (StatusUpdate, error) {
	if err := status.Validate(); err != nil {
		return StatusUpdate{}, err
	}

	update := StatusUpdate{
		status:    status,
		timestamp: timestamp,
		notes:     notes,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}
	if updatedBy != nil {
		id := *updatedBy
		update.updatedBy = &id
	}
	return update, nil
}

// Validate ensures the update was created through NewStatusUpdate.
func (u StatusUpdate) Validate() error {
	return u.guard.Validate(ErrStatusUpdateIsNotConstructed)
}

// Status returns the phase this entry recorded.
func (u StatusUpdate) Status() Status {
	return u.status
}

// Timestamp returns when the transition happened.
func (u StatusUpdate) Timestamp() time.Time {
	return u.timestamp
}

// Notes returns free-text notes. May be empty.
func (u StatusUpdate) Notes() string {
	return u.notes
}

// Location returns the delivery's location at the time of the transition.
// May be empty.
func (u StatusUpdate) Location() string {
	return u.location
}

// UpdatedBy returns the acting identity, or nil if none was captured.
func (u StatusUpdate) UpdatedBy() *kernel.UUID {
	return u.updatedBy
}
