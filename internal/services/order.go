package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/printhaus/printshop-platform/internal/cart"
	"github.com/printhaus/printshop-platform/internal/errors"
	"github.com/printhaus/printshop-platform/internal/metrics"
	"github.com/printhaus/printshop-platform/internal/models"
	repository "github.com/printhaus/printshop-platform/internal/repositories"
)

type OrderService interface {
	Checkout(ctx context.Context, customerID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error)
	GetOrderById(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error)
	ListAllOrders(ctx context.Context, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	UpdateDeliveryInfo(ctx context.Context, id uuid.UUID, req *models.UpdateDeliveryInfoRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	userRepo   repository.UserRepository
	notifier   NotificationService
	expressFee float64

	// inFlight guards against the same customer submitting checkout twice
	// before the first call resolves.
	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, userRepo repository.UserRepository, notifier NotificationService, expressFee float64) OrderService {
	return &orderService{
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		expressFee: expressFee,
		inFlight:   make(map[uuid.UUID]struct{}),
	}
}

// Checkout snapshots the customer's cart into a pending order. The cart is
// cleared only after the order row is committed; any failure before that
// leaves the cart intact so the customer can retry. A failed clear after the
// commit is logged and the order is still returned as placed.
func (s *orderService) Checkout(ctx context.Context, customerID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error) {

	if !s.acquire(customerID) {
		return nil, errors.ConflictError("A checkout for this cart is already in progress")
	}
	defer s.release(customerID)

	user, err := s.userRepo.GetUserById(ctx, customerID)
	if err != nil {
		return nil, errors.NotFoundError("Customer not found").WithError(err)
	}

	items, err := s.cartRepo.GetCartItems(ctx, customerID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	if len(items) == 0 {
		return nil, errors.BadRequestError("Cannot place an order with an empty cart")
	}

	totals := cart.ComputeTotals(items, req.ShippingMethod, s.expressFee)

	order := &models.Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		CustomerName:    user.Name,
		Email:           user.Email,
		Phone:           req.Phone,
		ShippingAddress: &req.ShippingAddress,
		Items:           items,
		Subtotal:        totals.Subtotal,
		Savings:         totals.Savings,
		ShippingMethod:  req.ShippingMethod,
		ShippingCost:    totals.ShippingCost,
		Total:           totals.Total,
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	metrics.OrderCreated()

	if err := s.cartRepo.ClearCart(ctx, customerID); err != nil {
		// The order row is committed; an error here would read as a failed
		// checkout and a retry would place the order twice.
		slog.Warn("Order placed but cart could not be cleared",
			slog.String("orderId", order.ID.String()),
			slog.String("customerId", customerID.String()),
			slog.String("error", err.Error()))
	}

	return order, nil
}

func (s *orderService) GetOrderById(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderById(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error) {

	page, size = clampPage(page, size)

	orders, total, err := s.orderRepo.ListOrdersByCustomer(ctx, customerID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

func (s *orderService) ListAllOrders(ctx context.Context, page, size int) ([]models.Order, int, error) {

	page, size = clampPage(page, size)

	orders, total, err := s.orderRepo.ListAllOrders(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

// UpdateOrderStatus overwrites the order's status with any known value. The
// back office owns corrections, so no transition legality is enforced here;
// moving delivered back to processing is allowed on purpose.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {

	if !status.Known() {
		return nil, errors.BadRequestError("Unknown order status: " + string(status))
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	order, err := s.orderRepo.GetOrderById(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to reload order").WithError(err)
	}

	return order, nil
}

// UpdateDeliveryInfo stores the courier link and tracking number and notifies
// the customer by email. Email delivery is best effort; the update succeeds
// even when the notification does not.
func (s *orderService) UpdateDeliveryInfo(ctx context.Context, id uuid.UUID, req *models.UpdateDeliveryInfoRequest) (*models.Order, error) {

	if err := s.orderRepo.UpdateDeliveryInfo(ctx, id, req.DeliveryLink, req.TrackingNumber); err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	order, err := s.orderRepo.GetOrderById(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to reload order").WithError(err)
	}

	content := fmt.Sprintf("Hi %s,\n\nYour order %s is on its way.", order.CustomerName, order.ID)
	if order.TrackingNumber != "" {
		content += "\nTracking number: " + order.TrackingNumber
	}

	if order.DeliveryLink != "" {
		content += "\nTrack your delivery: " + order.DeliveryLink
	}

	_, _ = s.notifier.SendEmail(ctx, &models.EmailNotificationRequest{
		Recipient: order.Email,
		Subject:   "Your order has shipped",
		Content:   content,
		OrderID:   &order.ID,
	})

	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {

	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		return errors.NotFoundError("Order not found").WithError(err)
	}

	return nil
}

func (s *orderService) acquire(customerID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[customerID]; busy {
		return false
	}

	s.inFlight[customerID] = struct{}{}

	return true
}

func (s *orderService) release(customerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, customerID)
}

func clampPage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 20
	}

	return page, size
}
