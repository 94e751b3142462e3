// Package http exposes the operations console over REST. Handlers translate
// request bodies into commands and queries; all business rules live in the
// application and domain layers.
package http

import (
	"errors"
	"net/http"

	"distribops/internal/core/application/usecases/commands"
	"distribops/internal/core/application/usecases/queries"
	"distribops/internal/core/domain/model/delivery"
	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/order"
	"distribops/internal/core/domain/model/product"
	"distribops/internal/core/domain/model/returnorder"
	"distribops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderHandler       commands.UpdateOrderCommandHandler
	deleteOrderHandler       commands.DeleteOrderCommandHandler
	createReturnOrderHandler commands.CreateReturnOrderCommandHandler
	advanceDeliveryHandler   commands.AdvanceDeliveryCommandHandler
	cancelDeliveryHandler    commands.CancelDeliveryCommandHandler

	// Query handlers
	getOrderByIDHandler         queries.GetOrderByIDQueryHandler
	getReturnOrderByIDHandler   queries.GetReturnOrderByIDQueryHandler
	getDeliveryByIDHandler      queries.GetDeliveryByIDQueryHandler
	getDeliveryByOrderIDHandler queries.GetDeliveryByOrderIDQueryHandler
	getActiveDeliveriesHandler  queries.GetActiveDeliveriesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	createReturnOrderHandler commands.CreateReturnOrderCommandHandler,
	advanceDeliveryHandler commands.AdvanceDeliveryCommandHandler,
	cancelDeliveryHandler commands.CancelDeliveryCommandHandler,
	getOrderByIDHandler queries.GetOrderByIDQueryHandler,
	getReturnOrderByIDHandler queries.GetReturnOrderByIDQueryHandler,
	getDeliveryByIDHandler queries.GetDeliveryByIDQueryHandler,
	getDeliveryByOrderIDHandler queries.GetDeliveryByOrderIDQueryHandler,
	getActiveDeliveriesHandler queries.GetActiveDeliveriesQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		updateOrderHandler:          updateOrderHandler,
		deleteOrderHandler:          deleteOrderHandler,
		createReturnOrderHandler:    createReturnOrderHandler,
		advanceDeliveryHandler:      advanceDeliveryHandler,
		cancelDeliveryHandler:       cancelDeliveryHandler,
		getOrderByIDHandler:         getOrderByIDHandler,
		getReturnOrderByIDHandler:   getReturnOrderByIDHandler,
		getDeliveryByIDHandler:      getDeliveryByIDHandler,
		getDeliveryByOrderIDHandler: getDeliveryByOrderIDHandler,
		getActiveDeliveriesHandler:  getActiveDeliveriesHandler,
	}
}

// RegisterRoutes mounts all endpoints on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:orderId", s.GetOrder)
	v1.PUT("/orders/:orderId", s.UpdateOrder)
	v1.DELETE("/orders/:orderId", s.DeleteOrder)
	v1.GET("/orders/:orderId/delivery", s.GetDeliveryByOrder)

	v1.POST("/returns", s.CreateReturnOrder)
	v1.GET("/returns/:returnOrderId", s.GetReturnOrder)

	v1.GET("/deliveries/active", s.GetActiveDeliveries)
	v1.GET("/deliveries/:deliveryId", s.GetDelivery)
	v1.POST("/deliveries/:deliveryId/advance", s.AdvanceDelivery)
	v1.POST("/deliveries/:deliveryId/cancel", s.CancelDelivery)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shopID, err := kernel.UUIDFromString(request.ShopID)
	if err != nil {
		return badRequest(ctx, "Invalid shop id: "+err.Error())
	}
	employeeID, err := optionalUUID(request.EmployeeID)
	if err != nil {
		return badRequest(ctx, "Invalid employee id: "+err.Error())
	}
	items, err := parseItems(request.Items)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), shopID, employeeID, items, request.DiscountCode,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrder handles PUT /api/v1/orders/{orderId} - replaces the order's
// items and discount code, recomputing all amounts.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var request UpdateOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items, err := parseItems(request.Items)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, items, request.DiscountCode)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateReturnOrder handles POST /api/v1/returns - registers a return for a
// previously placed order.
func (s *Server) CreateReturnOrder(ctx echo.Context) error {
	var request CreateReturnOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shopID, err := kernel.UUIDFromString(request.ShopID)
	if err != nil {
		return badRequest(ctx, "Invalid shop id: "+err.Error())
	}
	linkedOrderID, err := kernel.UUIDFromString(request.LinkedOrderID)
	if err != nil {
		return badRequest(ctx, "Invalid linked order id: "+err.Error())
	}
	employeeID, err := optionalUUID(request.EmployeeID)
	if err != nil {
		return badRequest(ctx, "Invalid employee id: "+err.Error())
	}
	reason, err := returnorder.ReasonFromString(request.Reason)
	if err != nil {
		return writeError(ctx, err)
	}
	items, err := parseItems(request.Items)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateReturnOrderCommand(
		kernel.NewUUID(), shopID, linkedOrderID, items, reason, request.Notes, employeeID,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createReturnOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, returnOrderToResponse(created))
}

// GetReturnOrder handles GET /api/v1/returns/{returnOrderId}.
func (s *Server) GetReturnOrder(ctx echo.Context) error {
	returnOrderID, err := kernel.UUIDFromString(ctx.Param("returnOrderId"))
	if err != nil {
		return badRequest(ctx, "Invalid return order id: "+err.Error())
	}

	query, err := queries.NewGetReturnOrderByIDQuery(returnOrderID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getReturnOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDelivery handles GET /api/v1/deliveries/{deliveryId}.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	query, err := queries.NewGetDeliveryByIDQuery(deliveryID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getDeliveryByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveryByOrder handles GET /api/v1/orders/{orderId}/delivery.
func (s *Server) GetDeliveryByOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetDeliveryByOrderIDQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getDeliveryByOrderIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveDeliveries handles GET /api/v1/deliveries/active.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	deliveries, err := s.getActiveDeliveriesHandler.Handle(
		ctx.Request().Context(), queries.NewGetActiveDeliveriesQuery(),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveries)
}

// AdvanceDelivery handles POST /api/v1/deliveries/{deliveryId}/advance -
// moves the delivery into the requested phase.
func (s *Server) AdvanceDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	var request AdvanceDeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := delivery.StatusFromString(request.Status)
	if err != nil {
		return writeError(ctx, err)
	}
	updatedBy, err := optionalUUID(request.UpdatedBy)
	if err != nil {
		return badRequest(ctx, "Invalid updatedBy id: "+err.Error())
	}

	cmd, err := commands.NewAdvanceDeliveryCommand(deliveryID, status, request.Notes, updatedBy)
	if err != nil {
		return writeError(ctx, err)
	}

	advanced, err := s.advanceDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryToResponse(advanced))
}

// CancelDelivery handles POST /api/v1/deliveries/{deliveryId}/cancel.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	var request CancelDeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cancelledBy, err := optionalUUID(request.CancelledBy)
	if err != nil {
		return badRequest(ctx, "Invalid cancelledBy id: "+err.Error())
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, request.Reason, cancelledBy)
	if err != nil {
		return writeError(ctx, err)
	}

	cancelled, err := s.cancelDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryToResponse(cancelled))
}

func parseItems(requests []OrderItemRequest) ([]order.OrderItem, error) {
	items := make([]order.OrderItem, 0, len(requests))
	for _, r := range requests {
		skuID, err := kernel.UUIDFromString(r.SKUID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("skuId", err)
		}

		price, err := product.NewMoneyFromString(r.Price)
		if err != nil {
			return nil, err
		}
		boxPrice, err := product.NewMoneyFromString(r.BoxPrice)
		if err != nil {
			return nil, err
		}

		sku, err := product.NewSKU(skuID, r.SKUName, r.SKUDescription, price, boxPrice)
		if err != nil {
			return nil, err
		}

		unitType, err := product.UnitTypeFromString(r.UnitType)
		if err != nil {
			return nil, err
		}

		item, err := order.NewOrderItem(sku, r.Quantity, unitType)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func optionalUUID(value *string) (*kernel.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, delivery.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
