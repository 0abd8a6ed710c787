package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/printhaus/printshop-platform/internal/cache"
	"github.com/printhaus/printshop-platform/internal/errors"
	"github.com/printhaus/printshop-platform/internal/models"
	repository "github.com/printhaus/printshop-platform/internal/repositories"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo          repository.ProductRepository
	cache         cache.Cache
	sanitizer     *bluemonday.Policy
	maxImageBytes int
}

func NewProductService(repo repository.ProductRepository, productCache cache.Cache, maxImageBytes int) ProductService {
	return &productService{
		repo:          repo,
		cache:         productCache,
		sanitizer:     bluemonday.StrictPolicy(),
		maxImageBytes: maxImageBytes,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if err := validateVariantShape(req.MultiSize, req.Price, req.SizeOptions); err != nil {
		return nil, err
	}

	if err := s.validateImages(req.Images); err != nil {
		return nil, err
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	product := &models.Product{
		ID:            uuid.New(),
		Name:          s.sanitizer.Sanitize(req.Name),
		Description:   s.sanitizer.Sanitize(req.Description),
		Category:      req.Category,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Size:          req.Size,
		MultiSize:     req.MultiSize,
		SizeOptions:   req.SizeOptions,
		Images:        req.Images,
		InStock:       inStock,
		Featured:      req.Featured,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	s.invalidateListCache(ctx)

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, id.String())

	var cached models.Product

	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("Product cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	if hit {
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, 0); err != nil {
		slog.Warn("Product cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int, error) {

	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.Size < 1 || filter.Size > 50 {
		filter.Size = 20
	}

	// Only the default storefront page is cached; filtered or deeper pages go
	// straight to Postgres.
	cacheable := filter.Category == "" && !filter.FeaturedOnly && filter.Page == 1 && filter.Size == 20

	key := cache.Key(cache.ProductListKeyPrefix, "default")

	if cacheable {
		var cached productListPage

		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			slog.Warn("Product list cache read failed", slog.String("error", err.Error()))
		}

		if hit {
			return cached.Products, cached.Total, nil
		}
	}

	products, total, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, productListPage{Products: products, Total: total}, 0); err != nil {
			slog.Warn("Product list cache write failed", slog.String("error", err.Error()))
		}
	}

	return products, total, nil
}

type productListPage struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if req.Name != nil {
		product.Name = s.sanitizer.Sanitize(*req.Name)
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.Category != nil {
		product.Category = *req.Category
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.OriginalPrice != nil {
		product.OriginalPrice = *req.OriginalPrice
	}

	if req.Size != nil {
		product.Size = *req.Size
	}

	if req.SizeOptions != nil {
		product.SizeOptions = req.SizeOptions
		product.MultiSize = len(req.SizeOptions) > 0
	}

	if req.Images != nil {
		if err := s.validateImages(req.Images); err != nil {
			return nil, err
		}

		product.Images = req.Images
	}

	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	if err := validateVariantShape(product.MultiSize, product.Price, product.SizeOptions); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidateProductCache(ctx, id)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return errors.NotFoundError("Product not found").WithError(err)
	}

	s.invalidateProductCache(ctx, id)

	return nil
}

// validateVariantShape enforces that exactly one pricing shape is present:
// a positive base price for single-size products, a non-empty options list
// for multi-size ones.
func validateVariantShape(multiSize bool, price float64, options []models.SizeOption) error {
	if multiSize {
		if len(options) == 0 {
			return errors.ValidationError("Multi-size product requires at least one size option")
		}

		return nil
	}

	if price <= 0 {
		return errors.ValidationError("Single-size product requires a positive price")
	}

	return nil
}

// validateImages checks inline data-URI payloads against the configured size
// cap before anything reaches the database. Plain URLs pass through.
func (s *productService) validateImages(images []string) error {
	for i, img := range images {
		if !strings.HasPrefix(img, "data:") {
			continue
		}

		idx := strings.Index(img, ";base64,")
		if idx < 0 {
			return errors.ValidationError(fmt.Sprintf("Image %d is not base64 encoded", i))
		}

		payload := img[idx+len(";base64,"):]

		decoded := base64.StdEncoding.DecodedLen(len(payload))
		if decoded > s.maxImageBytes {
			return errors.ValidationError(fmt.Sprintf("Image %d exceeds the maximum size of %d bytes", i, s.maxImageBytes))
		}

		if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
			return errors.ValidationError(fmt.Sprintf("Image %d has invalid base64 data", i)).WithError(err)
		}
	}

	return nil
}

func (s *productService) invalidateProductCache(ctx context.Context, id uuid.UUID) {
	key := cache.Key(cache.ProductKeyPrefix, id.String())

	if err := s.cache.Delete(ctx, key); err != nil {
		slog.Warn("Product cache invalidation failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	s.invalidateListCache(ctx)
}

func (s *productService) invalidateListCache(ctx context.Context) {
	key := cache.Key(cache.ProductListKeyPrefix, "default")

	if err := s.cache.Delete(ctx, key); err != nil {
		slog.Warn("Product list cache invalidation failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
