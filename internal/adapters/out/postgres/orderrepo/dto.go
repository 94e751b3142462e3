// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between the domain model and the relational layout.
package orderrepo

import (
	"time"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/order"
	"distribops/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Amounts are stored as numerics; line items live in their own table and are
// replaced wholesale on update.
type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShopID         uuid.UUID  `gorm:"type:uuid;index"`
	EmployeeID     *uuid.UUID `gorm:"type:uuid"`
	DiscountCode   string
	TotalAmount    decimal.Decimal `gorm:"type:numeric"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric"`
	FinalAmount    decimal.Decimal `gorm:"type:numeric"`
	CreatedAt      time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one order line with its embedded SKU snapshot.
// The serial primary key preserves line order.
type OrderItemDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	SKUID          uuid.UUID `gorm:"type:uuid;column:sku_id"`
	SKUName        string    `gorm:"column:sku_name"`
	SKUDescription string    `gorm:"column:sku_description"`
	Price          decimal.Decimal `gorm:"type:numeric"`
	BoxPrice       decimal.Decimal `gorm:"type:numeric"`
	Quantity       int
	UnitType       string
	Amount         decimal.Decimal `gorm:"type:numeric"`
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var employeeID *uuid.UUID
	if id := aggregate.EmployeeID(); id != nil {
		raw := id.Bytes()
		employeeID = &raw
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		ShopID:         aggregate.ShopID().Bytes(),
		EmployeeID:     employeeID,
		DiscountCode:   aggregate.DiscountCode(),
		TotalAmount:    aggregate.TotalAmount().Decimal(),
		DiscountAmount: aggregate.DiscountAmount().Decimal(),
		FinalAmount:    aggregate.FinalAmount().Decimal(),
		CreatedAt:      aggregate.CreatedAt(),
		Items:          itemsFromDomain(aggregate.ID().Bytes(), aggregate.Items()),
	}
}

func itemsFromDomain(orderID uuid.UUID, items []order.OrderItem) []OrderItemDTO {
	dtos := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		sku := item.SKU()
		dtos = append(dtos, OrderItemDTO{
			OrderID:        orderID,
			SKUID:          sku.ID().Bytes(),
			SKUName:        sku.Name(),
			SKUDescription: sku.Description(),
			Price:          sku.Price().Decimal(),
			BoxPrice:       sku.BoxPrice().Decimal(),
			Quantity:       item.Quantity(),
			UnitType:       item.UnitType().String(),
			Amount:         item.Amount().Decimal(),
		})
	}
	return dtos
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	var employeeID *kernel.UUID
	if dto.EmployeeID != nil {
		eID, employeeErr := kernel.UUIDFromBytes((*dto.EmployeeID)[:])
		if employeeErr != nil {
			return nil, employeeErr
		}
		employeeID = &eID
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, shopID, employeeID, items, dto.DiscountCode,
		product.NewMoneyFromDecimal(dto.TotalAmount),
		product.NewMoneyFromDecimal(dto.DiscountAmount),
		product.NewMoneyFromDecimal(dto.FinalAmount),
		dto.CreatedAt,
	)
}

// itemsToDomain rebuilds order lines from their stored SKU snapshots.
func itemsToDomain(dtos []OrderItemDTO) ([]order.OrderItem, error) {
	items := make([]order.OrderItem, 0, len(dtos))
	for _, dto := range dtos {
		skuID, err := kernel.UUIDFromBytes(dto.SKUID[:])
		if err != nil {
			return nil, err
		}

		sku, err := product.NewSKU(
			skuID, dto.SKUName, dto.SKUDescription,
			product.NewMoneyFromDecimal(dto.Price),
			product.NewMoneyFromDecimal(dto.BoxPrice),
		)
		if err != nil {
			return nil, err
		}

		unitType, err := product.UnitTypeFromString(dto.UnitType)
		if err != nil {
			return nil, err
		}

		item, err := order.NewOrderItem(sku, dto.Quantity, unitType)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
