package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/printhaus/printshop-platform/internal/api/middleware"
	"github.com/printhaus/printshop-platform/internal/errors"
	"github.com/printhaus/printshop-platform/internal/models"
	service "github.com/printhaus/printshop-platform/internal/services"
	"github.com/printhaus/printshop-platform/internal/utils"
	"github.com/printhaus/printshop-platform/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// Checkout godoc
//
//	@Summary		Place an order from the current cart
//	@Description	Snapshots the authenticated customer's cart into a pending order. Fails if the cart is empty or a previous checkout is still in flight. The cart is cleared only on success.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			checkout	body		models.CheckoutRequest	true	"Shipping details"
//	@Success		201			{object}	models.Order
//	@Failure		400			{object}	response.ErrorResponse	"Validation error or empty cart"
//	@Failure		401			{object}	response.ErrorResponse	"Authentication required"
//	@Failure		409			{object}	response.ErrorResponse	"Checkout already in progress"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		// The auth precondition is checked before anything leaves this
		// process; a missing login never turns into a network call.
		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Please log in before placing an order"))
			return
		}
		logger = logger.With(slog.String("userId", claims.UserID.String()))

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.Checkout(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Checkout failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed", slog.String("orderId", order.ID.String()), slog.Float64("total", order.Total))
		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//
//	@Summary	Get an order by ID
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.Order
//	@Failure	403	{object}	response.ErrorResponse	"User does not own this order"
//	@Security	BearerAuth
//	@Router		/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized order access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrderById(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get order", slog.String("orderId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if order.CustomerID != claims.UserID && !claims.Admin {
			logger.Warn("Attempted to access another user's order", slog.String("orderId", id.String()))
			response.Error(w, errors.ForbiddenError("You do not have access to this order"))
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) ListMyOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized order list attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, size := parsePagination(r)

		orders, total, err := h.orderService.ListOrdersByCustomer(r.Context(), claims.UserID, page, size)
		if err != nil {
			logger.Error("Failed to list orders", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: size,
		})
	}
}

// ListAllOrders is the back-office order queue. Admin only.
func (h *OrderHandler) ListAllOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, size := parsePagination(r)

		orders, total, err := h.orderService.ListAllOrders(r.Context(), page, size)
		if err != nil {
			logger.Error("Failed to list all orders", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: size,
		})
	}
}

func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status", slog.String("orderId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated", slog.String("orderId", id.String()), slog.String("status", string(req.Status)))
		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) UpdateDeliveryInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateDeliveryInfoRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateDeliveryInfo(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update delivery info", slog.String("orderId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Delivery info updated", slog.String("orderId", id.String()))
		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) DeleteOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.orderService.DeleteOrder(r.Context(), id); err != nil {
			logger.Error("Failed to delete order", slog.String("orderId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order deleted", slog.String("orderId", id.String()))
		response.Success(w, http.StatusOK, map[string]string{"message": "Order deleted"})
	}
}

func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 20
	}

	return page, size
}
