package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/printhaus/printshop-platform/internal/cart"
	"github.com/printhaus/printshop-platform/internal/errors"
	"github.com/printhaus/printshop-platform/internal/models"
	repository "github.com/printhaus/printshop-platform/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, customerID uuid.UUID, method models.ShippingMethod) (*models.CartView, error)
	AddItem(ctx context.Context, customerID uuid.UUID, req *models.AddCartItemRequest) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, customerID uuid.UUID, req *models.UpdateCartQuantityRequest) (*models.CartView, error)
	RemoveItem(ctx context.Context, customerID uuid.UUID, productID uuid.UUID) (*models.CartView, error)
	ClearCart(ctx context.Context, customerID uuid.UUID) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	expressFee  float64
	observers   []cart.Observer
}

// NewCartService wires the in-memory cart state machine to per-customer
// persistence. Observers are attached to every cart the service touches and
// fire synchronously after each mutation.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, expressFee float64, observers ...cart.Observer) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		expressFee:  expressFee,
		observers:   observers,
	}
}

func (s *cartService) GetCart(ctx context.Context, customerID uuid.UUID, method models.ShippingMethod) (*models.CartView, error) {

	store, err := s.loadStore(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return s.view(store, method), nil
}

func (s *cartService) AddItem(ctx context.Context, customerID uuid.UUID, req *models.AddCartItemRequest) (*models.CartView, error) {

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if !product.InStock {
		return nil, errors.BadRequestError("Product is out of stock")
	}

	unit, original, ok := product.PriceForSize(req.Size)
	if !ok {
		return nil, errors.BadRequestError("Unknown size for product: " + req.Size)
	}

	store, err := s.loadStore(ctx, customerID)
	if err != nil {
		return nil, err
	}

	store.AddItem(models.CartLineItem{
		ProductID:     product.ID,
		Name:          product.Name,
		Size:          req.Size,
		UnitPrice:     unit,
		OriginalPrice: original,
		Quantity:      req.Quantity,
		Customization: req.Customization,
	})

	if err := s.save(ctx, customerID, store); err != nil {
		return nil, err
	}

	return s.view(store, models.ShippingStandard), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, customerID uuid.UUID, req *models.UpdateCartQuantityRequest) (*models.CartView, error) {

	store, err := s.loadStore(ctx, customerID)
	if err != nil {
		return nil, err
	}

	store.UpdateQuantity(req.ProductID, req.Quantity)

	if err := s.save(ctx, customerID, store); err != nil {
		return nil, err
	}

	return s.view(store, models.ShippingStandard), nil
}

func (s *cartService) RemoveItem(ctx context.Context, customerID uuid.UUID, productID uuid.UUID) (*models.CartView, error) {

	store, err := s.loadStore(ctx, customerID)
	if err != nil {
		return nil, err
	}

	store.RemoveItem(productID)

	if err := s.save(ctx, customerID, store); err != nil {
		return nil, err
	}

	return s.view(store, models.ShippingStandard), nil
}

func (s *cartService) ClearCart(ctx context.Context, customerID uuid.UUID) error {

	store, err := s.loadStore(ctx, customerID)
	if err != nil {
		return err
	}

	store.Clear()

	return s.save(ctx, customerID, store)
}

func (s *cartService) loadStore(ctx context.Context, customerID uuid.UUID) (*cart.Store, error) {

	items, err := s.cartRepo.GetCartItems(ctx, customerID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	store := cart.Restore(items)

	for _, fn := range s.observers {
		store.Subscribe(fn)
	}

	return store, nil
}

func (s *cartService) save(ctx context.Context, customerID uuid.UUID, store *cart.Store) error {

	if err := s.cartRepo.SaveCartItems(ctx, customerID, store.Items()); err != nil {
		return errors.DatabaseError("Failed to save cart").WithError(err)
	}

	return nil
}

func (s *cartService) view(store *cart.Store, method models.ShippingMethod) *models.CartView {

	if method != models.ShippingExpress {
		method = models.ShippingStandard
	}

	items := store.Items()
	totals := cart.ComputeTotals(items, method, s.expressFee)

	return &models.CartView{
		Items:          items,
		ItemCount:      store.ItemCount(),
		ShippingMethod: method,
		Subtotal:       totals.Subtotal,
		Savings:        totals.Savings,
		ShippingCost:   totals.ShippingCost,
		Total:          totals.Total,
	}
}
