package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"stablecart-api/internal/cart"
	"stablecart-api/internal/dto"
	"stablecart-api/internal/model"
	"stablecart-api/internal/pricing"
	"stablecart-api/internal/repository"
)

type CartService interface {
	Get(ctx context.Context, userID string) (*dto.CartResponse, error)
	AddItem(ctx context.Context, userID, productID string, quantity int32) (*dto.CartResponse, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int32) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, userID, productID string) (*dto.CartResponse, error)
	Clear(ctx context.Context, userID string) (*dto.CartResponse, error)
	SetCurrency(ctx context.Context, userID, currency string) (*dto.CartResponse, error)

	// Load hydrates the cart aggregate for checkout.
	Load(ctx context.Context, userID string) (*cart.Cart, error)
}

type cartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Load rebuilds the in-memory aggregate from the stored snapshot. Lines
// whose product has left the catalog are silently dropped.
func (s *cartServiceImpl) Load(ctx context.Context, userID string) (*cart.Cart, error) {
	stored, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	c := cart.New(userID)
	c.SetCurrency(stored.Currency)

	if len(stored.Items) == 0 {
		return c, nil
	}

	ids := make([]string, len(stored.Items))
	for i, it := range stored.Items {
		ids[i] = it.ProductID
	}
	products, err := s.productRepo.FindMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}
	byID := make(map[string]*model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, it := range stored.Items {
		if p, ok := byID[it.ProductID]; ok {
			c.AddItem(*p, it.Quantity)
		}
	}

	return c, nil
}

func (s *cartServiceImpl) save(ctx context.Context, c *cart.Cart) error {
	snapshot := &model.Cart{
		UserID:   c.UserID,
		Currency: string(c.Currency),
	}
	for _, it := range c.Items {
		snapshot.Items = append(snapshot.Items, model.CartItem{
			CartUserID: c.UserID,
			ProductID:  it.Product.ID,
			Quantity:   it.Quantity,
		})
	}

	if err := s.cartRepo.Replace(ctx, snapshot); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *cartServiceImpl) Get(ctx context.Context, userID string) (*dto.CartResponse, error) {
	c, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

func (s *cartServiceImpl) AddItem(ctx context.Context, userID, productID string, quantity int32) (*dto.CartResponse, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}

	c, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.AddItem(*product, quantity)
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	return toCartResponse(c), nil
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID, productID string, quantity int32) (*dto.CartResponse, error) {
	c, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.UpdateQuantity(productID, quantity)
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	return toCartResponse(c), nil
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, productID string) (*dto.CartResponse, error) {
	c, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(productID)
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	return toCartResponse(c), nil
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID string) (*dto.CartResponse, error) {
	c, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.Clear()
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	return toCartResponse(c), nil
}

func (s *cartServiceImpl) SetCurrency(ctx context.Context, userID, currency string) (*dto.CartResponse, error) {
	if !model.ValidCurrency(currency) {
		return nil, ErrInvalidCurrency
	}

	c, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.SetCurrency(currency)
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	return toCartResponse(c), nil
}

func toCartResponse(c *cart.Cart) *dto.CartResponse {
	resp := &dto.CartResponse{
		Currency:  string(c.Currency),
		Items:     []dto.CartItemResponse{},
		Subtotal:  c.Total().String(),
		ItemCount: c.ItemCount(),
	}

	for _, it := range c.Items {
		unit := pricing.Amount(it.Product.Prices, string(c.Currency))
		resp.Items = append(resp.Items, dto.CartItemResponse{
			Product:   toProductResponse(&it.Product),
			Quantity:  it.Quantity,
			UnitPrice: unit.String(),
			LineTotal: unit.Mul(decimal.NewFromInt32(it.Quantity)).String(),
		})
	}

	return resp
}
