package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stablecart-api/internal/dto"
	"stablecart-api/internal/model"
	"stablecart-api/internal/pricing"
	"stablecart-api/internal/repository"
	"stablecart-api/internal/tier"
)

// Checkout-flow pricing knobs. Tax and shipping are a checkout concern, not
// the cart aggregator's.
var (
	taxRate      = decimal.NewFromFloat(0.10)
	flatShipping = decimal.RequireFromString("4.99")
)

type OrderService interface {
	// Checkout snapshots the cart into an order and validates the paying
	// wallet. The wallet is debited at payment confirmation, not here.
	Checkout(ctx context.Context, userID string, req *dto.CheckoutRequest) (*dto.OrderResponse, error)

	// ConfirmPayment settles the order: debits the wallet, marks the order
	// paid, feeds the purchase into the rewards engine and clears the cart.
	// Replaying a confirmation neither double-debits nor double-awards.
	ConfirmPayment(ctx context.Context, userID, orderID string) (*dto.ConfirmPaymentResponse, error)

	ListByUser(ctx context.Context, userID string) ([]*dto.OrderResponse, error)
	Get(ctx context.Context, userID, orderID string) (*dto.OrderResponse, error)
}

type orderServiceImpl struct {
	orderRepo      repository.OrderRepository
	cartRepo       repository.CartRepository
	walletRepo     repository.WalletRepository
	cartService    CartService
	rewardsService RewardsService
	log            zerolog.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	walletRepo repository.WalletRepository,
	cartService CartService,
	rewardsService RewardsService,
	log zerolog.Logger,
) OrderService {
	return &orderServiceImpl{
		orderRepo:      orderRepo,
		cartRepo:       cartRepo,
		walletRepo:     walletRepo,
		cartService:    cartService,
		rewardsService: rewardsService,
		log:            log,
	}
}

func (s *orderServiceImpl) Checkout(ctx context.Context, userID string, req *dto.CheckoutRequest) (*dto.OrderResponse, error) {
	c, err := s.cartService.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	wallet, err := s.walletRepo.FindByID(ctx, req.WalletID)
	if err != nil {
		return nil, fmt.Errorf("find wallet: %w", err)
	}
	if wallet.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	if wallet.Currency != string(c.Currency) {
		return nil, ErrCurrencyMismatch
	}

	subtotal := c.Total()
	tax := subtotal.Mul(taxRate)
	shipping := flatShipping

	// free shipping is a MASTER_NODE benefit
	rewards, err := s.rewardsService.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tier.AtLeast(tier.Tier(rewards.Tier), tier.MasterNode) {
		shipping = decimal.Zero
	}

	total := subtotal.Add(tax).Add(shipping)
	if wallet.Balance.LessThan(total) {
		return nil, ErrInsufficientBalance
	}

	order := &model.Order{
		OrderID:  uuid.NewString(),
		UserID:   userID,
		WalletID: wallet.ID,
		Status:   "CREATED",
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    total,
		Currency: string(c.Currency),
	}

	orderItems := make([]*model.OrderItem, len(c.Items))
	for i, it := range c.Items {
		orderItems[i] = &model.OrderItem{
			OrderID:   order.OrderID,
			ProductID: it.Product.ID,
			Quantity:  it.Quantity,
			UnitPrice: pricing.Amount(it.Product.Prices, string(c.Currency)),
			Currency:  string(c.Currency),
		}
	}

	err = s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", order.OrderID).Str("user_id", userID).Msg("order created")

	resp := toOrderResponse(order, orderItems)
	return resp, nil
}

func (s *orderServiceImpl) ConfirmPayment(ctx context.Context, userID, orderID string) (*dto.ConfirmPaymentResponse, error) {
	order, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}

	paid, err := s.orderRepo.IsPaid(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("check order paid: %w", err)
	}

	if !paid {
		err = s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
			if err := s.walletRepo.Debit(ctx, tx, order.WalletID, order.Total); err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrInsufficientBalance
				}
				return fmt.Errorf("debit wallet: %w", err)
			}

			updated, err := s.orderRepo.MarkPaid(ctx, tx, orderID)
			if err != nil {
				return fmt.Errorf("mark order paid: %w", err)
			}
			order = updated

			return s.cartRepo.Clear(ctx, tx, userID)
		})
		if err != nil {
			return nil, err
		}
	}

	// points earned = order total × purchase multiplier; the rewards ledger
	// makes a replayed confirmation a no-op
	multiplier, err := s.rewardsService.CurrentMultiplier(ctx, userID)
	if err != nil {
		return nil, err
	}
	points := order.Total.Mul(decimal.NewFromFloat(multiplier)).IntPart()

	event, err := s.rewardsService.AddPurchase(ctx, userID, orderID, order.Total, points)
	if err != nil {
		return nil, fmt.Errorf("record purchase: %w", err)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	return &dto.ConfirmPaymentResponse{
		Order:       *toOrderResponse(order, items),
		TierUpgrade: event,
	}, nil
}

func (s *orderServiceImpl) ListByUser(ctx context.Context, userID string) ([]*dto.OrderResponse, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]*dto.OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o, nil)
	}

	return out, nil
}

func (s *orderServiceImpl) Get(ctx context.Context, userID, orderID string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}

	items, err := s.orderRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	return toOrderResponse(order, items), nil
}

func toOrderResponse(o *model.Order, items []*model.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		OrderID:  o.OrderID,
		Status:   o.Status,
		Subtotal: o.Subtotal.String(),
		Tax:      o.Tax.String(),
		Shipping: o.Shipping.String(),
		Total:    o.Total.String(),
		Currency: o.Currency,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.String(),
			Currency:  it.Currency,
		})
	}
	return resp
}
