package http

import (
	"time"

	"distribops/internal/core/application/usecases/queries"
	"distribops/internal/core/domain/model/delivery"
	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/order"
	"distribops/internal/core/domain/model/returnorder"
)

// ErrorResponse is the uniform error body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderItemRequest is one order or return line as submitted by the client.
// Money fields are decimal strings.
type OrderItemRequest struct {
	SKUID          string `json:"skuId"`
	SKUName        string `json:"skuName"`
	SKUDescription string `json:"skuDescription"`
	Price          string `json:"price"`
	BoxPrice       string `json:"boxPrice"`
	Quantity       int    `json:"quantity"`
	UnitType       string `json:"unitType"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	ShopID       string             `json:"shopId"`
	EmployeeID   *string            `json:"employeeId"`
	Items        []OrderItemRequest `json:"items"`
	DiscountCode string             `json:"discountCode"`
}

// UpdateOrderRequest is the body of PUT /api/v1/orders/{orderId}. The item
// set and discount code replace the stored ones wholesale.
type UpdateOrderRequest struct {
	Items        []OrderItemRequest `json:"items"`
	DiscountCode string             `json:"discountCode"`
}

// CreateReturnOrderRequest is the body of POST /api/v1/returns.
type CreateReturnOrderRequest struct {
	ShopID        string             `json:"shopId"`
	LinkedOrderID string             `json:"linkedOrderId"`
	Items         []OrderItemRequest `json:"items"`
	Reason        string             `json:"reason"`
	Notes         string             `json:"notes"`
	EmployeeID    *string            `json:"employeeId"`
}

// AdvanceDeliveryRequest is the body of POST /api/v1/deliveries/{deliveryId}/advance.
type AdvanceDeliveryRequest struct {
	Status    string  `json:"status"`
	Notes     string  `json:"notes"`
	UpdatedBy *string `json:"updatedBy"`
}

// CancelDeliveryRequest is the body of POST /api/v1/deliveries/{deliveryId}/cancel.
type CancelDeliveryRequest struct {
	Reason      string  `json:"reason"`
	CancelledBy *string `json:"cancelledBy"`
}

// Command responses reuse the query read models so clients see one shape
// regardless of whether they wrote or read.

func orderToResponse(o *order.Order) queries.GetOrderByIDQueryResponse {
	return queries.GetOrderByIDQueryResponse{
		ID:             o.ID().String(),
		ShopID:         o.ShopID().String(),
		EmployeeID:     uuidToString(o.EmployeeID()),
		Items:          itemsToResponse(o.Items()),
		DiscountCode:   o.DiscountCode(),
		TotalAmount:    o.TotalAmount().String(),
		DiscountAmount: o.DiscountAmount().String(),
		FinalAmount:    o.FinalAmount().String(),
		CreatedAt:      o.CreatedAt(),
	}
}

func returnOrderToResponse(r *returnorder.ReturnOrder) queries.GetReturnOrderByIDQueryResponse {
	return queries.GetReturnOrderByIDQueryResponse{
		ID:            r.ID().String(),
		ShopID:        r.ShopID().String(),
		LinkedOrderID: r.LinkedOrderID().String(),
		Items:         itemsToResponse(r.Items()),
		Reason:        r.Reason().String(),
		Notes:         r.Notes(),
		EmployeeID:    uuidToString(r.EmployeeID()),
		TotalAmount:   r.TotalAmount().String(),
		CreatedAt:     r.CreatedAt(),
	}
}

func deliveryToResponse(d *delivery.Delivery) queries.DeliveryResponse {
	history := make([]queries.StatusUpdateResponse, 0, len(d.StatusHistory()))
	for _, update := range d.StatusHistory() {
		history = append(history, queries.StatusUpdateResponse{
			Status:    update.Status().String(),
			Timestamp: update.Timestamp(),
			Notes:     update.Notes(),
			Location:  update.Location(),
			UpdatedBy: uuidToString(update.UpdatedBy()),
		})
	}

	var cancellation *queries.CancellationResponse
	if reason := d.CancellationReason(); reason != nil {
		cancellation = &queries.CancellationResponse{
			Reason:      reason.Reason(),
			CancelledBy: uuidToString(reason.CancelledBy()),
			CancelledAt: reason.CancelledAt(),
			Notes:       reason.Notes(),
		}
	}

	return queries.DeliveryResponse{
		ID:                    d.ID().String(),
		OrderID:               d.OrderID().String(),
		ShopID:                d.ShopID().String(),
		Status:                d.Status().String(),
		CurrentLocation:       d.CurrentLocation(),
		EstimatedDeliveryDate: d.EstimatedDeliveryDate(),
		ActualDeliveryDate:    d.ActualDeliveryDate(),
		TrackingNumber:        d.TrackingNumber().String(),
		Delayed:               d.IsDelayed(time.Now().UTC()),
		StatusHistory:         history,
		CancellationReason:    cancellation,
		CreatedAt:             d.CreatedAt(),
		UpdatedAt:             d.UpdatedAt(),
	}
}

func itemsToResponse(items []order.OrderItem) []queries.OrderItemResponse {
	responses := make([]queries.OrderItemResponse, 0, len(items))
	for _, item := range items {
		sku := item.SKU()
		responses = append(responses, queries.OrderItemResponse{
			SKUID:          sku.ID().String(),
			SKUName:        sku.Name(),
			SKUDescription: sku.Description(),
			Price:          sku.Price().String(),
			BoxPrice:       sku.BoxPrice().String(),
			Quantity:       item.Quantity(),
			UnitType:       item.UnitType().String(),
			Amount:         item.Amount().String(),
		})
	}
	return responses
}

func uuidToString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
