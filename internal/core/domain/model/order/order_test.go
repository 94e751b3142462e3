package order_test

import (
	"testing"
	"time"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/order"
	"distribops/internal/core/domain/model/product"
	"distribops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSKU(t *testing.T, name string, price, boxPrice int64) product.SKU {
	t.Helper()
	sku, err := product.NewSKU(kernel.NewUUID(), name, "",
		product.NewMoneyFromInt(price), product.NewMoneyFromInt(boxPrice))
	require.NoError(t, err)
	return sku
}

func mustItem(t *testing.T, sku product.SKU, quantity int, unitType product.UnitType) order.OrderItem {
	t.Helper()
	item, err := order.NewOrderItem(sku, quantity, unitType)
	require.NoError(t, err)
	return item
}

func TestNewOrder(t *testing.T) {
	now := time.Now()

	t.Run("creates valid order without discount", func(t *testing.T) {
		items := []order.OrderItem{
			mustItem(t, mustSKU(t, "Crackers", 10, 50), 3, product.UnitTypePacket),
		}

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, items, "", now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.TotalAmount().IsEqual(product.NewMoneyFromInt(30)))
		assert.True(t, o.DiscountAmount().IsZero())
		assert.True(t, o.FinalAmount().IsEqual(product.NewMoneyFromInt(30)))
		assert.Nil(t, o.EmployeeID())
		assert.Equal(t, now, o.CreatedAt())
	})

	t.Run("any non-empty discount code earns flat 10 percent", func(t *testing.T) {
		// Matches the worked pricing example: 3 packets at 10 plus one box
		// at 50 gives 80 total, 8 discount, 72 final.
		items := []order.OrderItem{
			mustItem(t, mustSKU(t, "A", 10, 40), 3, product.UnitTypePacket),
			mustItem(t, mustSKU(t, "B", 7, 50), 1, product.UnitTypeBox),
		}

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, items, "SAVE10", now)

		require.NoError(t, err)
		assert.True(t, o.TotalAmount().IsEqual(product.NewMoneyFromInt(80)))
		assert.True(t, o.DiscountAmount().IsEqual(product.NewMoneyFromInt(8)))
		assert.True(t, o.FinalAmount().IsEqual(product.NewMoneyFromInt(72)))
		assert.Equal(t, "SAVE10", o.DiscountCode())
	})

	t.Run("discount rounds to whole units", func(t *testing.T) {
		// 3 packets at 5 gives 15; 10% is 1.5, rounded to 2.
		items := []order.OrderItem{
			mustItem(t, mustSKU(t, "A", 5, 20), 3, product.UnitTypePacket),
		}

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, items, "WHATEVER", now)

		require.NoError(t, err)
		assert.True(t, o.DiscountAmount().IsEqual(product.NewMoneyFromInt(2)))
		assert.True(t, o.FinalAmount().IsEqual(product.NewMoneyFromInt(13)))
	})

	t.Run("final equals total minus discount", func(t *testing.T) {
		items := []order.OrderItem{
			mustItem(t, mustSKU(t, "A", 13, 99), 7, product.UnitTypePacket),
			mustItem(t, mustSKU(t, "B", 3, 17), 2, product.UnitTypeBox),
		}

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, items, "CODE", now)

		require.NoError(t, err)
		expected := o.TotalAmount().Sub(o.DiscountAmount())
		assert.True(t, o.FinalAmount().IsEqual(expected))
	})

	t.Run("captures employee identity", func(t *testing.T) {
		employeeID := kernel.NewUUID()
		items := []order.OrderItem{
			mustItem(t, mustSKU(t, "A", 10, 50), 1, product.UnitTypePacket),
		}

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), &employeeID, items, "", now)

		require.NoError(t, err)
		require.NotNil(t, o.EmployeeID())
		assert.True(t, o.EmployeeID().IsEqual(employeeID))
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, nil, "", now)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects missing shop", func(t *testing.T) {
		items := []order.OrderItem{
			mustItem(t, mustSKU(t, "A", 10, 50), 1, product.UnitTypePacket),
		}

		_, err := order.NewOrder(kernel.NewUUID(), kernel.UUID{}, nil, items, "", now)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unconstructed items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil,
			[]order.OrderItem{{}}, "", now)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrOrderItemIsNotConstructed)
	})
}

func TestNewOrderItem(t *testing.T) {
	t.Run("rejects non-positive quantity", func(t *testing.T) {
		sku := mustSKU(t, "A", 10, 50)

		_, err := order.NewOrderItem(sku, 0, product.UnitTypePacket)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.NewOrderItem(sku, -4, product.UnitTypePacket)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects unconstructed sku", func(t *testing.T) {
		_, err := order.NewOrderItem(product.SKU{}, 1, product.UnitTypePacket)

		require.ErrorIs(t, err, product.ErrSKUIsNotConstructed)
	})

	t.Run("box lines use the box price", func(t *testing.T) {
		sku := mustSKU(t, "A", 10, 50)

		item, err := order.NewOrderItem(sku, 2, product.UnitTypeBox)

		require.NoError(t, err)
		assert.True(t, item.Amount().IsEqual(product.NewMoneyFromInt(100)))
	})
}

func TestOrder_Replace(t *testing.T) {
	now := time.Now()
	original := []order.OrderItem{
		mustItem(t, mustSKU(t, "A", 10, 50), 3, product.UnitTypePacket),
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, original, "", now)
	require.NoError(t, err)

	t.Run("recomputes amounts with the same pricing rule", func(t *testing.T) {
		replacement := []order.OrderItem{
			mustItem(t, mustSKU(t, "B", 7, 20), 2, product.UnitTypeBox),
		}

		require.NoError(t, o.Replace(replacement, "NEWCODE"))

		assert.True(t, o.TotalAmount().IsEqual(product.NewMoneyFromInt(40)))
		assert.True(t, o.DiscountAmount().IsEqual(product.NewMoneyFromInt(4)))
		assert.True(t, o.FinalAmount().IsEqual(product.NewMoneyFromInt(36)))
		assert.Equal(t, "NEWCODE", o.DiscountCode())
		assert.Len(t, o.Items(), 1)
	})

	t.Run("rejects empty replacement", func(t *testing.T) {
		require.ErrorIs(t, o.Replace(nil, ""), errs.ErrValueIsRequired)
	})
}

func TestOrder_QuantityBySKU(t *testing.T) {
	now := time.Now()
	sku := mustSKU(t, "A", 10, 50)
	other := mustSKU(t, "B", 5, 25)
	items := []order.OrderItem{
		mustItem(t, sku, 3, product.UnitTypePacket),
		mustItem(t, sku, 2, product.UnitTypeBox),
		mustItem(t, other, 1, product.UnitTypePacket),
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, items, "", now)
	require.NoError(t, err)

	quantities := o.QuantityBySKU()

	assert.Equal(t, 5, quantities[sku.ID()])
	assert.Equal(t, 1, quantities[other.ID()])
}

func TestRestoreOrder(t *testing.T) {
	now := time.Now()
	items := []order.OrderItem{
		mustItem(t, mustSKU(t, "A", 10, 50), 3, product.UnitTypePacket),
	}

	// Stored amounts are trusted as-is, not recomputed.
	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), nil, items, "OLD",
		product.NewMoneyFromInt(30), product.NewMoneyFromInt(3), product.NewMoneyFromInt(27), now)

	require.NoError(t, err)
	require.NoError(t, o.Validate())
	assert.True(t, o.TotalAmount().IsEqual(product.NewMoneyFromInt(30)))
	assert.True(t, o.DiscountAmount().IsEqual(product.NewMoneyFromInt(3)))
	assert.True(t, o.FinalAmount().IsEqual(product.NewMoneyFromInt(27)))
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order fails validation", func(t *testing.T) {
		var o *order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}
