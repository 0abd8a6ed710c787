package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/printhaus/printshop-platform/internal/api/handlers"
	"github.com/printhaus/printshop-platform/internal/errors"
	"github.com/printhaus/printshop-platform/internal/models"
	"github.com/printhaus/printshop-platform/internal/services/mocks"
	"github.com/printhaus/printshop-platform/internal/testutils"
	"github.com/printhaus/printshop-platform/internal/utils/response"
)

const checkoutBody = `{
	"phone": "9876543210",
	"shipping_address": {"street": "42 Gallery Lane", "city": "Mumbai", "state": "MH", "pincode": "400001"},
	"shipping_method": "express"
}`

func TestCheckoutHandler(t *testing.T) {

	t.Run("Success - places the order and returns 201", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.OrderService)
		handler := handlers.NewOrderHandler(mockService)

		userID := uuid.New()
		placed := &models.Order{ID: uuid.New(), CustomerID: userID, Status: models.OrderStatusPending, Total: 1399}

		mockService.On("Checkout", mock.Anything, userID, mock.AnythingOfType("*models.CheckoutRequest")).Return(placed, nil).Once()

		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/checkout", strings.NewReader(checkoutBody), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, 201, rr.Code)

		var resp response.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.True(t, resp.Success)

		mockService.AssertExpectations(t)
	})

	t.Run("Failure - no authentication, nothing reaches the service", func(t *testing.T) {
		mockService := new(mocks.OrderService)
		handler := handlers.NewOrderHandler(mockService)

		req := testutils.CreateTestRequestWithoutContext("POST", "/api/v1/checkout", strings.NewReader(checkoutBody), nil)
		rr := httptest.NewRecorder()

		handler.Checkout().ServeHTTP(rr, req)

		assert.Equal(t, 401, rr.Code)

		var resp response.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.False(t, resp.Success)
		assert.Equal(t, errors.ErrCodeUnauthorized, resp.Error.Code)

		mockService.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - double submission maps to 409", func(t *testing.T) {
		mockService := new(mocks.OrderService)
		handler := handlers.NewOrderHandler(mockService)
		userID := uuid.New()

		mockService.On("Checkout", mock.Anything, userID, mock.Anything).
			Return(nil, errors.ConflictError("A checkout for this cart is already in progress")).Once()

		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/checkout", strings.NewReader(checkoutBody), userID, nil)
		rr := httptest.NewRecorder()

		handler.Checkout().ServeHTTP(rr, req)

		assert.Equal(t, 409, rr.Code)

		var resp response.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, errors.ErrCodeConflict, resp.Error.Code)
	})

	t.Run("Failure - empty cart maps to 400", func(t *testing.T) {
		mockService := new(mocks.OrderService)
		handler := handlers.NewOrderHandler(mockService)
		userID := uuid.New()

		mockService.On("Checkout", mock.Anything, userID, mock.Anything).
			Return(nil, errors.BadRequestError("Cannot place an order with an empty cart")).Once()

		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/checkout", strings.NewReader(checkoutBody), userID, nil)
		rr := httptest.NewRecorder()

		handler.Checkout().ServeHTTP(rr, req)

		assert.Equal(t, 400, rr.Code)
	})

	t.Run("Failure - invalid body never reaches the service", func(t *testing.T) {
		mockService := new(mocks.OrderService)
		handler := handlers.NewOrderHandler(mockService)

		req := testutils.CreateTestRequestWithContext("POST", "/api/v1/checkout", strings.NewReader(`{"phone": "123"}`), uuid.New(), nil)
		rr := httptest.NewRecorder()

		handler.Checkout().ServeHTTP(rr, req)

		assert.Equal(t, 400, rr.Code)
		mockService.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetOrderHandler(t *testing.T) {

	orderID := uuid.New()
	ownerID := uuid.New()

	order := &models.Order{ID: orderID, CustomerID: ownerID, Status: models.OrderStatusShipped}

	t.Run("Success - owner reads their order", func(t *testing.T) {
		mockService := new(mocks.OrderService)
		handler := handlers.NewOrderHandler(mockService)

		mockService.On("GetOrderById", mock.Anything, orderID).Return(order, nil).Once()

		req := testutils.CreateTestRequestWithContext("GET", "/api/v1/orders/"+orderID.String(), nil, ownerID, map[string]string{"id": orderID.String()})
		rr := httptest.NewRecorder()

		handler.GetOrder().ServeHTTP(rr, req)

		assert.Equal(t, 200, rr.Code)
	})

	t.Run("Failure - another customer gets 403", func(t *testing.T) {
		mockService := new(mocks.OrderService)
		handler := handlers.NewOrderHandler(mockService)

		mockService.On("GetOrderById", mock.Anything, orderID).Return(order, nil).Once()

		req := testutils.CreateTestRequestWithContext("GET", "/api/v1/orders/"+orderID.String(), nil, uuid.New(), map[string]string{"id": orderID.String()})
		rr := httptest.NewRecorder()

		handler.GetOrder().ServeHTTP(rr, req)

		assert.Equal(t, 403, rr.Code)

		var resp response.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, errors.ErrCodeForbidden, resp.Error.Code)
	})

	t.Run("Success - admins can read any order", func(t *testing.T) {
		mockService := new(mocks.OrderService)
		handler := handlers.NewOrderHandler(mockService)

		mockService.On("GetOrderById", mock.Anything, orderID).Return(order, nil).Once()

		req := testutils.CreateTestAdminRequest("GET", "/api/v1/orders/"+orderID.String(), nil, uuid.New(), map[string]string{"id": orderID.String()})
		rr := httptest.NewRecorder()

		handler.GetOrder().ServeHTTP(rr, req)

		assert.Equal(t, 200, rr.Code)
	})
}

func TestUpdateStatusHandler(t *testing.T) {

	orderID := uuid.New()

	t.Run("Success - status updated", func(t *testing.T) {
		mockService := new(mocks.OrderService)
		handler := handlers.NewOrderHandler(mockService)

		mockService.On("UpdateOrderStatus", mock.Anything, orderID, models.OrderStatusShipped).
			Return(&models.Order{ID: orderID, Status: models.OrderStatusShipped}, nil).Once()

		req := testutils.CreateTestAdminRequest("PATCH", "/api/v1/admin/orders/"+orderID.String()+"/status",
			strings.NewReader(`{"status": "shipped"}`), uuid.New(), map[string]string{"id": orderID.String()})
		rr := httptest.NewRecorder()

		handler.UpdateStatus().ServeHTTP(rr, req)

		assert.Equal(t, 200, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - status outside the lifecycle is rejected by validation", func(t *testing.T) {
		mockService := new(mocks.OrderService)
		handler := handlers.NewOrderHandler(mockService)

		req := testutils.CreateTestAdminRequest("PATCH", "/api/v1/admin/orders/"+orderID.String()+"/status",
			strings.NewReader(`{"status": "teleported"}`), uuid.New(), map[string]string{"id": orderID.String()})
		rr := httptest.NewRecorder()

		handler.UpdateStatus().ServeHTTP(rr, req)

		assert.Equal(t, 400, rr.Code)
		mockService.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - malformed order id", func(t *testing.T) {
		mockService := new(mocks.OrderService)
		handler := handlers.NewOrderHandler(mockService)

		req := testutils.CreateTestAdminRequest("PATCH", "/api/v1/admin/orders/not-a-uuid/status",
			strings.NewReader(`{"status": "shipped"}`), uuid.New(), map[string]string{"id": "not-a-uuid"})
		rr := httptest.NewRecorder()

		handler.UpdateStatus().ServeHTTP(rr, req)

		assert.Equal(t, 400, rr.Code)
	})
}

func TestListMyOrdersHandler(t *testing.T) {

	t.Run("Success - paginated envelope", func(t *testing.T) {
		mockService := new(mocks.OrderService)
		handler := handlers.NewOrderHandler(mockService)
		userID := uuid.New()

		mockService.On("ListOrdersByCustomer", mock.Anything, userID, 2, 10).
			Return([]models.Order{{ID: uuid.New(), CustomerID: userID}}, 11, nil).Once()

		req := testutils.CreateTestRequestWithContext("GET", "/api/v1/orders?page=2&size=10", nil, userID, nil)
		rr := httptest.NewRecorder()

		handler.ListMyOrders().ServeHTTP(rr, req)

		assert.Equal(t, 200, rr.Code)

		var resp struct {
			Success bool                     `json:"success"`
			Data    models.PaginatedResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, 11, resp.Data.Total)
		assert.Equal(t, 2, resp.Data.Page)
	})
}
