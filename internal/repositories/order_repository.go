package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/printhaus/printshop-platform/internal/models"
	"github.com/printhaus/printshop-platform/internal/utils"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderById(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error)
	ListAllOrders(ctx context.Context, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	UpdateDeliveryInfo(ctx context.Context, id uuid.UUID, deliveryLink, trackingNumber string) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, customer_id, customer_name, email, phone, shipping_address, items, subtotal, savings, shipping_method, shipping_cost, total, status, delivery_link, tracking_number, created_at, updated_at`

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, customer_id, customer_name, email, phone, shipping_address, items, subtotal, savings, shipping_method, shipping_cost, total, status, delivery_link, tracking_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		order.ID, order.CustomerID, order.CustomerName, order.Email, order.Phone,
		address, items, order.Subtotal, order.Savings, order.ShippingMethod,
		order.ShippingCost, order.Total, order.Status, order.DeliveryLink,
		order.TrackingNumber).
		Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) GetOrderById(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error) {
	return r.list(ctx, `WHERE customer_id = $1`, []any{customerID}, page, size)
}

func (r *orderRepository) ListAllOrders(ctx context.Context, page, size int) ([]models.Order, int, error) {
	return r.list(ctx, ``, nil, page, size)
}

func (r *orderRepository) list(ctx context.Context, where string, args []any, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM orders ` + where

	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s FROM orders %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)+1, len(args)+2)

	rows, err := r.DB.QueryContext(dbCtx, query, append(args, size, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`

	return r.exec(dbCtx, query, status, id)
}

func (r *orderRepository) UpdateDeliveryInfo(ctx context.Context, id uuid.UUID, deliveryLink, trackingNumber string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET delivery_link = $1, tracking_number = $2, updated_at = NOW() WHERE id = $3`

	return r.exec(dbCtx, query, deliveryLink, trackingNumber, id)
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.exec(dbCtx, `DELETE FROM orders WHERE id = $1`, id)
}

func (r *orderRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}

	var address, items []byte

	var deliveryLink, trackingNumber sql.NullString

	err := row.Scan(&order.ID, &order.CustomerID, &order.CustomerName, &order.Email,
		&order.Phone, &address, &items, &order.Subtotal, &order.Savings,
		&order.ShippingMethod, &order.ShippingCost, &order.Total, &order.Status,
		&deliveryLink, &trackingNumber, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(address, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipping address: %w", err)
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	order.DeliveryLink = deliveryLink.String
	order.TrackingNumber = trackingNumber.String

	return order, nil
}
