package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stablecart-api/internal/model"
)

// In-memory repository fixtures. They target the same interfaces the gorm
// implementations satisfy, so service tests exercise real business logic
// without a database.

type fakeProductRepo struct {
	products map[string]*model.Product
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*model.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Seed(ctx context.Context) error { return nil }

func (r *fakeProductRepo) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var out []*model.Product
	for _, id := range productIDs {
		if p, ok := r.products[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) List(ctx context.Context, category string) ([]*model.Product, error) {
	var out []*model.Product
	for _, p := range r.products {
		if category == "" || p.Category == category {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Search(ctx context.Context, query string) ([]*model.Product, error) {
	var out []*model.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeCartRepo struct {
	carts map[string]*model.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*model.Cart{}}
}

func (r *fakeCartRepo) Get(ctx context.Context, userID string) (*model.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return &model.Cart{UserID: userID, Currency: string(model.DefaultCurrency)}, nil
	}
	cp := *c
	cp.Items = append([]model.CartItem(nil), c.Items...)
	return &cp, nil
}

func (r *fakeCartRepo) Replace(ctx context.Context, cart *model.Cart) error {
	cp := *cart
	cp.Items = append([]model.CartItem(nil), cart.Items...)
	r.carts[cart.UserID] = &cp
	return nil
}

func (r *fakeCartRepo) Clear(ctx context.Context, tx *gorm.DB, userID string) error {
	if c, ok := r.carts[userID]; ok {
		c.Items = nil
		c.Currency = string(model.DefaultCurrency)
	}
	return nil
}

type fakeRewardsRepo struct {
	rewards  map[string]*model.UserRewards
	rewarded map[string]*model.RewardedOrder
	boxes    []*model.MysteryBox
	drops    []*model.ExclusiveDrop
}

func newFakeRewardsRepo() *fakeRewardsRepo {
	return &fakeRewardsRepo{
		rewards:  map[string]*model.UserRewards{},
		rewarded: map[string]*model.RewardedOrder{},
	}
}

func (r *fakeRewardsRepo) GetOrCreate(ctx context.Context, userID string) (*model.UserRewards, error) {
	if rw, ok := r.rewards[userID]; ok {
		cp := *rw
		return &cp, nil
	}
	rw := &model.UserRewards{
		UserID:       userID,
		TotalSpent:   decimal.Zero,
		TokenCredits: decimal.Zero,
		Purchase:     model.PurchaseRewards{Multiplier: 1.0},
	}
	r.rewards[userID] = rw
	cp := *rw
	return &cp, nil
}

func (r *fakeRewardsRepo) Save(ctx context.Context, tx *gorm.DB, rewards *model.UserRewards) error {
	cp := *rewards
	r.rewards[rewards.UserID] = &cp
	return nil
}

func (r *fakeRewardsRepo) OrderRewarded(ctx context.Context, orderID string) (bool, error) {
	_, ok := r.rewarded[orderID]
	return ok, nil
}

func (r *fakeRewardsRepo) MarkOrderRewarded(ctx context.Context, tx *gorm.DB, rec *model.RewardedOrder) error {
	r.rewarded[rec.OrderID] = rec
	return nil
}

func (r *fakeRewardsRepo) GetMysteryBoxes(ctx context.Context, userID string) ([]*model.MysteryBox, error) {
	var out []*model.MysteryBox
	for _, b := range r.boxes {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRewardsRepo) FindMysteryBox(ctx context.Context, userID, boxID string) (*model.MysteryBox, error) {
	for _, b := range r.boxes {
		if b.UserID == userID && b.ID == boxID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRewardsRepo) CreateMysteryBoxes(ctx context.Context, boxes []*model.MysteryBox) error {
	r.boxes = append(r.boxes, boxes...)
	return nil
}

func (r *fakeRewardsRepo) MarkBoxOpened(ctx context.Context, tx *gorm.DB, userID, boxID string) error {
	for _, b := range r.boxes {
		if b.UserID == userID && b.ID == boxID {
			b.Opened = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRewardsRepo) ListDrops(ctx context.Context) ([]*model.ExclusiveDrop, error) {
	return append([]*model.ExclusiveDrop(nil), r.drops...), nil
}

func (r *fakeRewardsRepo) SeedDrops(ctx context.Context) error { return nil }

func (r *fakeRewardsRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeOrderRepo struct {
	orders map[string]*model.Order
	items  map[string][]*model.OrderItem
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[string]*model.Order{},
		items:  map[string][]*model.OrderItem{},
	}
}

func (r *fakeOrderRepo) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	cp := *order
	r.orders[order.OrderID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var out []*model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) MarkPaid(ctx context.Context, tx *gorm.DB, orderID string) (*model.Order, error) {
	o, ok := r.orders[orderID]
	if !ok || o.Status != "CREATED" {
		return nil, gorm.ErrRecordNotFound
	}
	o.Status = "PAID"
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) IsPaid(ctx context.Context, orderID string) (bool, error) {
	o, ok := r.orders[orderID]
	return ok && o.Status == "PAID", nil
}

func (r *fakeOrderRepo) CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	for _, it := range items {
		r.items[it.OrderID] = append(r.items[it.OrderID], it)
	}
	return nil
}

func (r *fakeOrderRepo) GetOrderItems(ctx context.Context, orderID string) ([]*model.OrderItem, error) {
	return append([]*model.OrderItem(nil), r.items[orderID]...), nil
}

func (r *fakeOrderRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeWalletRepo struct {
	wallets map[string]*model.Wallet
}

func newFakeWalletRepo(wallets ...*model.Wallet) *fakeWalletRepo {
	r := &fakeWalletRepo{wallets: map[string]*model.Wallet{}}
	for _, w := range wallets {
		r.wallets[w.ID] = w
	}
	return r
}

func (r *fakeWalletRepo) Create(ctx context.Context, wallet *model.Wallet) error {
	cp := *wallet
	r.wallets[wallet.ID] = &cp
	return nil
}

func (r *fakeWalletRepo) FindByID(ctx context.Context, walletID string) (*model.Wallet, error) {
	w, ok := r.wallets[walletID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWalletRepo) FindByUser(ctx context.Context, userID string) ([]*model.Wallet, error) {
	var out []*model.Wallet
	for _, w := range r.wallets {
		if w.UserID == userID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeWalletRepo) Credit(ctx context.Context, tx *gorm.DB, walletID string, amount decimal.Decimal) error {
	w, ok := r.wallets[walletID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

func (r *fakeWalletRepo) Debit(ctx context.Context, tx *gorm.DB, walletID string, amount decimal.Decimal) error {
	w, ok := r.wallets[walletID]
	if !ok || w.Balance.LessThan(amount) {
		return gorm.ErrRecordNotFound
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}

func (r *fakeWalletRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}
