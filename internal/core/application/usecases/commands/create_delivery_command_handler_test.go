package commands_test

import (
	"errors"
	"testing"
	"time"

	"distribops/internal/core/application/usecases/commands"
	"distribops/internal/core/domain/model/delivery"
	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testDelivery(t *testing.T, orderID, shopID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), orderID, shopID, time.Now().UTC())
	require.NoError(t, err)
	return d
}

func TestCreateDeliveryCommandHandler_Handle_CreatesNewDelivery(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	shopID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(orderID, shopID)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetByOrderID", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once(),
		deliveryRepo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, delivery.StatusPackaging, created.Status())
	assert.True(t, created.OrderID().IsEqual(orderID))
	assert.True(t, created.ShopID().IsEqual(shopID))
	deliveryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_ReturnsExistingDelivery(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	shopID := kernel.NewUUID()
	existing := testDelivery(t, orderID, shopID)
	cmd, err := commands.NewCreateDeliveryCommand(orderID, shopID)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetByOrderID", mock.Anything, orderID).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, got.IsEqual(existing))
	deliveryRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateDeliveryCommandHandler_Handle_DuplicateKeyResolvesToStored(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	shopID := kernel.NewUUID()
	stored := testDelivery(t, orderID, shopID)
	cmd, err := commands.NewCreateDeliveryCommand(orderID, shopID)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetByOrderID", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once(),
		deliveryRepo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).
			Return(errs.NewObjectAlreadyExistsError("orderId", orderID)).Once(),
	)
	uow.On("Rollback", ctx).Return(nil)

	// Fallback fetch happens on a fresh unit of work.
	fallbackRepo := new(MockDeliveryRepository)
	fallbackUoW := new(MockDeliveryUoW)
	mock.InOrder(
		fallbackUoW.On("Begin", ctx).Return(nil).Once(),
		fallbackUoW.On("DeliveryRepository").Return(fallbackRepo).Once(),
		fallbackRepo.On("GetByOrderID", mock.Anything, orderID).Return(stored, nil).Once(),
		fallbackUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()
	factory.On("Create").Return(fallbackUoW).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, got.IsEqual(stored))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	fallbackRepo.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(orderID, kernel.NewUUID())
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetByOrderID", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once(),
		deliveryRepo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).
			Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewCreateDeliveryCommand_MissingOrderID(t *testing.T) {
	_, err := commands.NewCreateDeliveryCommand(kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
