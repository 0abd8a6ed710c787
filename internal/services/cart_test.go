package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/printhaus/printshop-platform/internal/cart"
	appErrors "github.com/printhaus/printshop-platform/internal/errors"
	"github.com/printhaus/printshop-platform/internal/models"
	"github.com/printhaus/printshop-platform/internal/repositories/mocks"
	service "github.com/printhaus/printshop-platform/internal/services"
)

func setupCartServiceTest(observers ...cart.Observer) (service.CartService, *mocks.CartRepository, *mocks.ProductRepository) {
	mockCartRepo := new(mocks.CartRepository)
	mockProductRepo := new(mocks.ProductRepository)
	cartService := service.NewCartService(mockCartRepo, mockProductRepo, testExpressFee, observers...)

	return cartService, mockCartRepo, mockProductRepo
}

func TestCartService_AddItem(t *testing.T) {

	customerID := uuid.New()

	t.Run("Success - snapshots the product price into the persisted line", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockProductRepo := setupCartServiceTest()
		ctx := context.Background()

		product := &models.Product{
			ID:            uuid.New(),
			Name:          "Sunset Poster",
			Price:         500,
			OriginalPrice: 600,
			InStock:       true,
		}

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockCartRepo.On("GetCartItems", ctx, customerID).Return([]models.CartLineItem{}, nil).Once()
		mockCartRepo.On("SaveCartItems", ctx, customerID, mock.MatchedBy(func(items []models.CartLineItem) bool {
			return len(items) == 1 &&
				items[0].ProductID == product.ID &&
				items[0].UnitPrice == 500 &&
				items[0].OriginalPrice == 600 &&
				items[0].Quantity == 2
		})).Return(nil).Once()

		// Act
		view, err := cartService.AddItem(ctx, customerID, &models.AddCartItemRequest{ProductID: product.ID, Quantity: 2})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, view.ItemCount)
		assert.InDelta(t, 1000.0, view.Subtotal, 0.001)
		assert.InDelta(t, 200.0, view.Savings, 0.001)
		assert.Equal(t, models.ShippingStandard, view.ShippingMethod)

		mockCartRepo.AssertExpectations(t)
		mockProductRepo.AssertExpectations(t)
	})

	t.Run("Success - multi-size product resolves the selected option's price", func(t *testing.T) {
		cartService, mockCartRepo, mockProductRepo := setupCartServiceTest()
		ctx := context.Background()

		product := &models.Product{
			ID:        uuid.New(),
			Name:      "Polaroid Set",
			MultiSize: true,
			SizeOptions: []models.SizeOption{
				{Size: "A4", Price: 300},
				{Size: "A3", Price: 450, OriginalPrice: 500},
			},
			InStock: true,
		}

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockCartRepo.On("GetCartItems", ctx, customerID).Return([]models.CartLineItem{}, nil).Once()
		mockCartRepo.On("SaveCartItems", ctx, customerID, mock.MatchedBy(func(items []models.CartLineItem) bool {
			return len(items) == 1 && items[0].Size == "A3" && items[0].UnitPrice == 450 && items[0].OriginalPrice == 500
		})).Return(nil).Once()

		view, err := cartService.AddItem(ctx, customerID, &models.AddCartItemRequest{ProductID: product.ID, Size: "A3", Quantity: 1})

		require.NoError(t, err)
		assert.InDelta(t, 450.0, view.Subtotal, 0.001)
	})

	t.Run("Success - quantity above the cap is clamped, not rejected", func(t *testing.T) {
		cartService, mockCartRepo, mockProductRepo := setupCartServiceTest()
		ctx := context.Background()

		product := &models.Product{ID: uuid.New(), Name: "Sunset Poster", Price: 500, InStock: true}

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockCartRepo.On("GetCartItems", ctx, customerID).Return([]models.CartLineItem{}, nil).Once()
		mockCartRepo.On("SaveCartItems", ctx, customerID, mock.MatchedBy(func(items []models.CartLineItem) bool {
			return len(items) == 1 && items[0].Quantity == cart.MaxQuantity
		})).Return(nil).Once()

		view, err := cartService.AddItem(ctx, customerID, &models.AddCartItemRequest{ProductID: product.ID, Quantity: 25})

		require.NoError(t, err)
		assert.Equal(t, cart.MaxQuantity, view.ItemCount)
	})

	t.Run("Failure - out-of-stock product", func(t *testing.T) {
		cartService, mockCartRepo, mockProductRepo := setupCartServiceTest()
		ctx := context.Background()

		product := &models.Product{ID: uuid.New(), Name: "Sold Out Print", Price: 500, InStock: false}

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()

		view, err := cartService.AddItem(ctx, customerID, &models.AddCartItemRequest{ProductID: product.ID, Quantity: 1})

		assert.Nil(t, view)
		require.Error(t, err)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)

		mockCartRepo.AssertNotCalled(t, "SaveCartItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - unknown size for a multi-size product", func(t *testing.T) {
		cartService, mockCartRepo, mockProductRepo := setupCartServiceTest()
		ctx := context.Background()

		product := &models.Product{
			ID:          uuid.New(),
			MultiSize:   true,
			SizeOptions: []models.SizeOption{{Size: "A4", Price: 300}},
			InStock:     true,
		}

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()

		view, err := cartService.AddItem(ctx, customerID, &models.AddCartItemRequest{ProductID: product.ID, Size: "A0", Quantity: 1})

		assert.Nil(t, view)
		require.Error(t, err)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)

		mockCartRepo.AssertNotCalled(t, "SaveCartItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - missing product", func(t *testing.T) {
		cartService, _, mockProductRepo := setupCartServiceTest()
		ctx := context.Background()
		productID := uuid.New()

		mockProductRepo.On("GetProductByID", ctx, productID).Return(nil, errors.New("no rows")).Once()

		view, err := cartService.AddItem(ctx, customerID, &models.AddCartItemRequest{ProductID: productID, Quantity: 1})

		assert.Nil(t, view)
		require.Error(t, err)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {

	customerID := uuid.New()
	productID := uuid.New()

	persisted := []models.CartLineItem{
		{ProductID: productID, Name: "Sunset Poster", UnitPrice: 500, Quantity: 2},
	}

	t.Run("Success - zero quantity persists the removal", func(t *testing.T) {
		cartService, mockCartRepo, _ := setupCartServiceTest()
		ctx := context.Background()

		mockCartRepo.On("GetCartItems", ctx, customerID).Return(persisted, nil).Once()
		mockCartRepo.On("SaveCartItems", ctx, customerID, mock.MatchedBy(func(items []models.CartLineItem) bool {
			return len(items) == 0
		})).Return(nil).Once()

		view, err := cartService.UpdateQuantity(ctx, customerID, &models.UpdateCartQuantityRequest{ProductID: productID, Quantity: 0})

		require.NoError(t, err)
		assert.Zero(t, view.ItemCount)
		assert.Zero(t, view.Total)
		mockCartRepo.AssertExpectations(t)
	})

	t.Run("Success - unknown product id leaves the cart untouched", func(t *testing.T) {
		cartService, mockCartRepo, _ := setupCartServiceTest()
		ctx := context.Background()

		mockCartRepo.On("GetCartItems", ctx, customerID).Return(persisted, nil).Once()
		mockCartRepo.On("SaveCartItems", ctx, customerID, mock.MatchedBy(func(items []models.CartLineItem) bool {
			return len(items) == 1 && items[0].Quantity == 2
		})).Return(nil).Once()

		view, err := cartService.UpdateQuantity(ctx, customerID, &models.UpdateCartQuantityRequest{ProductID: uuid.New(), Quantity: 5})

		require.NoError(t, err)
		assert.Equal(t, 2, view.ItemCount)
	})
}

func TestCartService_GetCart(t *testing.T) {

	customerID := uuid.New()

	t.Run("Success - totals follow the requested shipping method", func(t *testing.T) {
		cartService, mockCartRepo, _ := setupCartServiceTest()
		ctx := context.Background()

		items := []models.CartLineItem{
			{ProductID: uuid.New(), UnitPrice: 500, Quantity: 2},
		}

		mockCartRepo.On("GetCartItems", ctx, customerID).Return(items, nil).Twice()

		standard, err := cartService.GetCart(ctx, customerID, models.ShippingStandard)
		require.NoError(t, err)

		express, err := cartService.GetCart(ctx, customerID, models.ShippingExpress)
		require.NoError(t, err)

		assert.Zero(t, standard.ShippingCost)
		assert.InDelta(t, 1000.0, standard.Total, 0.001)
		assert.InDelta(t, testExpressFee, express.ShippingCost, 0.001)
		assert.InDelta(t, 1000.0+testExpressFee, express.Total, 0.001)
	})

	t.Run("Success - stored quantities are re-clamped on load", func(t *testing.T) {
		cartService, mockCartRepo, _ := setupCartServiceTest()
		ctx := context.Background()

		items := []models.CartLineItem{
			{ProductID: uuid.New(), UnitPrice: 100, Quantity: 42},
		}

		mockCartRepo.On("GetCartItems", ctx, customerID).Return(items, nil).Once()

		view, err := cartService.GetCart(ctx, customerID, models.ShippingStandard)

		require.NoError(t, err)
		assert.Equal(t, cart.MaxQuantity, view.ItemCount)
	})
}

func TestCartService_Observers(t *testing.T) {

	t.Run("attached observer fires on every mutation", func(t *testing.T) {
		// Arrange
		var snapshots []cart.Snapshot
		observer := func(s cart.Snapshot) { snapshots = append(snapshots, s) }

		cartService, mockCartRepo, mockProductRepo := setupCartServiceTest(observer)
		ctx := context.Background()
		customerID := uuid.New()
		product := &models.Product{ID: uuid.New(), Name: "Sunset Poster", Price: 500, InStock: true}

		mockProductRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		mockCartRepo.On("GetCartItems", ctx, customerID).Return([]models.CartLineItem{}, nil).Once()
		mockCartRepo.On("SaveCartItems", ctx, customerID, mock.Anything).Return(nil).Once()

		// Act
		_, err := cartService.AddItem(ctx, customerID, &models.AddCartItemRequest{ProductID: product.ID, Quantity: 3})

		// Assert
		require.NoError(t, err)
		require.Len(t, snapshots, 1)
		assert.Equal(t, 3, snapshots[0].ItemCount)
	})
}
