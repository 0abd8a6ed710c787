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

// ProductFilter narrows catalog listings. Zero values mean "no filter".
type ProductFilter struct {
	Category     string
	FeaturedOnly bool
	Page         int
	Size         int
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	sizeOptions, images, err := marshalProductJSON(product)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (id, name, description, category, price, original_price, size, multi_size, size_options, images, in_stock, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.ID, product.Name, product.Description, product.Category,
		product.Price, product.OriginalPrice, product.Size, product.MultiSize,
		sizeOptions, images, product.InStock, product.Featured).
		Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, description, category, price, original_price, size, multi_size, size_options, images, in_stock, featured, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product := &models.Product{}

	var sizeOptions, images []byte

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&product.ID, &product.Name, &product.Description, &product.Category,
		&product.Price, &product.OriginalPrice, &product.Size, &product.MultiSize,
		&sizeOptions, &images, &product.InStock, &product.Featured,
		&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := unmarshalProductJSON(product, sizeOptions, images); err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where := ` WHERE ($1 = '' OR category = $1) AND ($2 = FALSE OR featured = TRUE)`

	var total int

	countQuery := `SELECT COUNT(*) FROM products` + where

	if err := r.DB.QueryRowContext(dbCtx, countQuery, filter.Category, filter.FeaturedOnly).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (filter.Page - 1) * filter.Size

	query := `
		SELECT id, name, description, category, price, original_price, size, multi_size, size_options, images, in_stock, featured, created_at, updated_at
		FROM products` + where + `
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.DB.QueryContext(dbCtx, query, filter.Category, filter.FeaturedOnly, filter.Size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	var products []models.Product

	for rows.Next() {

		var product models.Product

		var sizeOptions, images []byte

		err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.Category,
			&product.Price, &product.OriginalPrice, &product.Size, &product.MultiSize,
			&sizeOptions, &images, &product.InStock, &product.Featured,
			&product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}

		if err := unmarshalProductJSON(&product, sizeOptions, images); err != nil {
			return nil, 0, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	sizeOptions, images, err := marshalProductJSON(product)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, category = $3, price = $4, original_price = $5,
		    size = $6, multi_size = $7, size_options = $8, images = $9, in_stock = $10,
		    featured = $11, updated_at = NOW()
		WHERE id = $12
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		product.Name, product.Description, product.Category, product.Price,
		product.OriginalPrice, product.Size, product.MultiSize, sizeOptions,
		images, product.InStock, product.Featured, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func marshalProductJSON(product *models.Product) (sizeOptions, images []byte, err error) {
	sizeOptions, err = json.Marshal(product.SizeOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal size options: %w", err)
	}

	images, err = json.Marshal(product.Images)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal images: %w", err)
	}

	return sizeOptions, images, nil
}

func unmarshalProductJSON(product *models.Product, sizeOptions, images []byte) error {
	if len(sizeOptions) > 0 {
		if err := json.Unmarshal(sizeOptions, &product.SizeOptions); err != nil {
			return fmt.Errorf("failed to unmarshal size options: %w", err)
		}
	}

	if len(images) > 0 {
		if err := json.Unmarshal(images, &product.Images); err != nil {
			return fmt.Errorf("failed to unmarshal images: %w", err)
		}
	}

	return nil
}
