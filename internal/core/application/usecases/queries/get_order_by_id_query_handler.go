package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"distribops/internal/core/ports"
	"distribops/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// orderCacheTTL bounds staleness of cached order reads.
const orderCacheTTL = 5 * time.Minute

// GetOrderByIDQueryHandler retrieves a single order from the database with
// read-through caching. Cache failures are ignored; the database remains the
// source of truth.
type GetOrderByIDQueryHandler struct {
	db    *gorm.DB
	cache ports.Cache
}

// NewGetOrderByIDQueryHandler creates a handler for single order reads.
func NewGetOrderByIDQueryHandler(db *gorm.DB, cache ports.Cache) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db, cache: cache}
}

// Handle returns the order read model, from cache when possible.
func (h GetOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByIDQuery,
) (*GetOrderByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cacheKey := ports.OrderCacheKey(query.OrderID().String())
	if cached, ok, err := h.cache.Get(ctx, cacheKey); err == nil && ok {
		var response GetOrderByIDQueryResponse
		if err = json.Unmarshal(cached, &response); err == nil {
			return &response, nil
		}
	}

	response, err := h.load(ctx, query)
	if err != nil {
		return nil, err
	}

	if serialized, err := json.Marshal(response); err == nil {
		_ = h.cache.Set(ctx, cacheKey, serialized, orderCacheTTL)
	}

	return response, nil
}

func (h GetOrderByIDQueryHandler) load(
	ctx context.Context,
	query GetOrderByIDQuery,
) (*GetOrderByIDQueryResponse, error) {
	var (
		id, shopID     uuid.UUID
		employeeID     uuid.NullUUID
		discountCode   string
		totalAmount    decimal.Decimal
		discountAmount decimal.Decimal
		finalAmount    decimal.Decimal
		createdAt      time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			shop_id,
			employee_id,
			discount_code,
			total_amount,
			discount_amount,
			final_amount,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	err := row.Scan(
		&id, &shopID, &employeeID, &discountCode,
		&totalAmount, &discountAmount, &finalAmount, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return nil, err
	}

	items, err := loadItemRows(ctx, h.db, "order_items", "order_id", id)
	if err != nil {
		return nil, err
	}

	response := GetOrderByIDQueryResponse{
		ID:             id.String(),
		ShopID:         shopID.String(),
		Items:          items,
		DiscountCode:   discountCode,
		TotalAmount:    totalAmount.String(),
		DiscountAmount: discountAmount.String(),
		FinalAmount:    finalAmount.String(),
		CreatedAt:      createdAt,
	}
	if employeeID.Valid {
		employee := employeeID.UUID.String()
		response.EmployeeID = &employee
	}

	return &response, nil
}

// loadItemRows reads the line items of an order or return order. Both item
// tables carry the same columns apart from the owning foreign key.
func loadItemRows(
	ctx context.Context,
	db *gorm.DB,
	table, ownerColumn string,
	ownerID uuid.UUID,
) ([]OrderItemResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			sku_id,
			sku_name,
			sku_description,
			price,
			box_price,
			quantity,
			unit_type,
			amount
		FROM `+table+`
		WHERE `+ownerColumn+` = ?
		ORDER BY id
	`, ownerID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			skuID           uuid.UUID
			name, desc      string
			price, boxPrice decimal.Decimal
			quantity        int
			unitType        string
			amount          decimal.Decimal
		)

		if err = rows.Scan(&skuID, &name, &desc, &price, &boxPrice, &quantity, &unitType, &amount); err != nil {
			return nil, err
		}

		items = append(items, OrderItemResponse{
			SKUID:          skuID.String(),
			SKUName:        name,
			SKUDescription: desc,
			Price:          price.String(),
			BoxPrice:       boxPrice.String(),
			Quantity:       quantity,
			UnitType:       unitType,
			Amount:         amount.String(),
		})
	}

	return items, rows.Err()
}
