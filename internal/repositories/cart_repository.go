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

// CartRepository persists one cart row per customer, the ordered line items
// stored as a JSON column. A customer without a row simply has an empty cart.
type CartRepository interface {
	GetCartItems(ctx context.Context, customerID uuid.UUID) ([]models.CartLineItem, error)
	SaveCartItems(ctx context.Context, customerID uuid.UUID, items []models.CartLineItem) error
	ClearCart(ctx context.Context, customerID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetCartItems(ctx context.Context, customerID uuid.UUID) ([]models.CartLineItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT items
		FROM carts
		WHERE customer_id = $1
	`

	var itemsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, customerID).Scan(&itemsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	var items []models.CartLineItem

	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	return items, nil
}

func (r *cartRepository) SaveCartItems(ctx context.Context, customerID uuid.UUID, items []models.CartLineItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if items == nil {
		items = []models.CartLineItem{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO carts (customer_id, items, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (customer_id) DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()
	`

	if _, err := r.DB.ExecContext(dbCtx, query, customerID, itemsJSON); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

func (r *cartRepository) ClearCart(ctx context.Context, customerID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM carts WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
