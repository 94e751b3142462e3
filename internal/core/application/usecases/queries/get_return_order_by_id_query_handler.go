package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"distribops/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetReturnOrderByIDQueryHandler retrieves a single return order from the
// database.
type GetReturnOrderByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetReturnOrderByIDQueryHandler creates a handler for return order reads.
func NewGetReturnOrderByIDQueryHandler(db *gorm.DB) GetReturnOrderByIDQueryHandler {
	return GetReturnOrderByIDQueryHandler{db: db}
}

// Handle returns the return order read model.
func (h GetReturnOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetReturnOrderByIDQuery,
) (*GetReturnOrderByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		id, shopID    uuid.UUID
		linkedOrderID uuid.UUID
		reason        string
		notes         string
		employeeID    uuid.NullUUID
		totalAmount   decimal.Decimal
		createdAt     time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			shop_id,
			linked_order_id,
			reason,
			notes,
			employee_id,
			total_amount,
			created_at
		FROM return_orders
		WHERE id = ?
	`, query.ReturnOrderID().String()).Row()

	err := row.Scan(&id, &shopID, &linkedOrderID, &reason, &notes, &employeeID, &totalAmount, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("returnOrderId", query.ReturnOrderID())
	}
	if err != nil {
		return nil, err
	}

	items, err := loadItemRows(ctx, h.db, "return_order_items", "return_order_id", id)
	if err != nil {
		return nil, err
	}

	response := GetReturnOrderByIDQueryResponse{
		ID:            id.String(),
		ShopID:        shopID.String(),
		LinkedOrderID: linkedOrderID.String(),
		Items:         items,
		Reason:        reason,
		Notes:         notes,
		TotalAmount:   totalAmount.String(),
		CreatedAt:     createdAt,
	}
	if employeeID.Valid {
		employee := employeeID.UUID.String()
		response.EmployeeID = &employee
	}

	return &response, nil
}
