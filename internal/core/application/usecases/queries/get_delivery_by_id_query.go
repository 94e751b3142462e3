package queries

import (
	"errors"
	"time"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/guard"
)

var ErrGetDeliveryByIDQueryIsNotConstructed = errors.New(
	"GetDeliveryByIDQuery must be created via NewGetDeliveryByIDQuery constructor",
)

// GetDeliveryByIDQuery retrieves a single delivery with its status history.
type GetDeliveryByIDQuery struct {
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryByIDQuery creates a query for the given delivery.
func NewGetDeliveryByIDQuery(deliveryID kernel.UUID) (GetDeliveryByIDQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryByIDQuery{}, err
	}

	return GetDeliveryByIDQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryByIDQueryIsNotConstructed)
}

// DeliveryID returns the identifier of the requested delivery.
func (q GetDeliveryByIDQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// StatusUpdateResponse is one entry of a delivery's transition history.
type StatusUpdateResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
	Location  string    `json:"location,omitempty"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
}

// CancellationResponse describes why a delivery was cancelled.
type CancellationResponse struct {
	Reason      string    `json:"reason"`
	CancelledBy *string   `json:"cancelledBy,omitempty"`
	CancelledAt time.Time `json:"cancelledAt"`
	Notes       string    `json:"notes,omitempty"`
}

// DeliveryResponse is the flat read model of a delivery. Delayed is derived
// at read time from the estimate and the current phase; it is never stored.
type DeliveryResponse struct {
	ID                    string                 `json:"id"`
	OrderID               string                 `json:"orderId"`
	ShopID                string                 `json:"shopId"`
	Status                string                 `json:"status"`
	CurrentLocation       string                 `json:"currentLocation,omitempty"`
	EstimatedDeliveryDate time.Time              `json:"estimatedDeliveryDate"`
	ActualDeliveryDate    *time.Time             `json:"actualDeliveryDate,omitempty"`
	TrackingNumber        string                 `json:"trackingNumber"`
	Delayed               bool                   `json:"delayed"`
	StatusHistory         []StatusUpdateResponse `json:"statusHistory"`
	CancellationReason    *CancellationResponse  `json:"cancellationReason,omitempty"`
	CreatedAt             time.Time              `json:"createdAt"`
	UpdatedAt             time.Time              `json:"updatedAt"`
}
