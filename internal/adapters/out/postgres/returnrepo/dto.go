// Package returnrepo provides data transfer objects and mapping functions for
// return order persistence.
package returnrepo

import (
	"time"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/order"
	"distribops/internal/core/domain/model/product"
	"distribops/internal/core/domain/model/returnorder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnOrderDTO represents the database structure for persisting return
// orders. Return orders are write-once; there is no update path.
type ReturnOrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShopID        uuid.UUID  `gorm:"type:uuid;index"`
	LinkedOrderID uuid.UUID  `gorm:"type:uuid;index"`
	Reason        string
	Notes         string
	EmployeeID    *uuid.UUID      `gorm:"type:uuid"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric"`
	CreatedAt     time.Time

	Items []ReturnOrderItemDTO `gorm:"foreignKey:ReturnOrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "return_orders".
func (ReturnOrderDTO) TableName() string {
	return "return_orders"
}

// ReturnOrderItemDTO represents one returned line with its SKU snapshot,
// mirroring the order item layout.
type ReturnOrderItemDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	ReturnOrderID  uuid.UUID `gorm:"type:uuid;index"`
	SKUID          uuid.UUID `gorm:"type:uuid;column:sku_id"`
	SKUName        string    `gorm:"column:sku_name"`
	SKUDescription string    `gorm:"column:sku_description"`
	Price          decimal.Decimal `gorm:"type:numeric"`
	BoxPrice       decimal.Decimal `gorm:"type:numeric"`
	Quantity       int
	UnitType       string
	Amount         decimal.Decimal `gorm:"type:numeric"`
}

// TableName overrides GORM's default naming to use "return_order_items".
func (ReturnOrderItemDTO) TableName() string {
	return "return_order_items"
}

func fromDomain(aggregate *returnorder.ReturnOrder) ReturnOrderDTO {
	var employeeID *uuid.UUID
	if id := aggregate.EmployeeID(); id != nil {
		raw := id.Bytes()
		employeeID = &raw
	}

	items := make([]ReturnOrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		sku := item.SKU()
		items = append(items, ReturnOrderItemDTO{
			ReturnOrderID:  aggregate.ID().Bytes(),
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

	return ReturnOrderDTO{
		ID:            aggregate.ID().Bytes(),
		ShopID:        aggregate.ShopID().Bytes(),
		LinkedOrderID: aggregate.LinkedOrderID().Bytes(),
		Reason:        aggregate.Reason().String(),
		Notes:         aggregate.Notes(),
		EmployeeID:    employeeID,
		TotalAmount:   aggregate.TotalAmount().Decimal(),
		CreatedAt:     aggregate.CreatedAt(),
		Items:         items,
	}
}

func toDomain(dto ReturnOrderDTO) (*returnorder.ReturnOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}
	linkedOrderID, err := kernel.UUIDFromBytes(dto.LinkedOrderID[:])
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

	reason, err := returnorder.ReasonFromString(dto.Reason)
	if err != nil {
		return nil, err
	}

	items := make([]order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		skuID, itemErr := kernel.UUIDFromBytes(itemDTO.SKUID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		sku, itemErr := product.NewSKU(
			skuID, itemDTO.SKUName, itemDTO.SKUDescription,
			product.NewMoneyFromDecimal(itemDTO.Price),
			product.NewMoneyFromDecimal(itemDTO.BoxPrice),
		)
		if itemErr != nil {
			return nil, itemErr
		}

		unitType, itemErr := product.UnitTypeFromString(itemDTO.UnitType)
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewOrderItem(sku, itemDTO.Quantity, unitType)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return returnorder.RestoreReturnOrder(
		id, shopID, linkedOrderID, items, reason, dto.Notes, employeeID,
		product.NewMoneyFromDecimal(dto.TotalAmount),
		dto.CreatedAt,
	)
}
