package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablecart-api/internal/dto"
	"stablecart-api/internal/model"
)

type orderFixture struct {
	orders   *fakeOrderRepo
	carts    *fakeCartRepo
	wallets  *fakeWalletRepo
	rewards  *fakeRewardsRepo
	products *fakeProductRepo
	cartSvc  CartService
	svc      OrderService
}

func newOrderFixture(products ...*model.Product) *orderFixture {
	f := &orderFixture{
		orders:   newFakeOrderRepo(),
		carts:    newFakeCartRepo(),
		wallets:  newFakeWalletRepo(),
		rewards:  newFakeRewardsRepo(),
		products: newFakeProductRepo(products...),
	}
	f.cartSvc = NewCartService(f.carts, f.products)
	rewardsSvc := NewRewardsService(f.rewards, zerolog.Nop())
	f.svc = NewOrderService(f.orders, f.carts, f.wallets, f.cartSvc, rewardsSvc, zerolog.Nop())
	return f
}

func (f *orderFixture) addWallet(t *testing.T, userID, currency, balance string) *model.Wallet {
	t.Helper()
	w := &model.Wallet{
		ID:       "wallet-" + userID,
		UserID:   userID,
		Currency: currency,
		Balance:  decimal.RequireFromString(balance),
	}
	require.NoError(t, f.wallets.Create(context.Background(), w))
	return w
}

func (f *orderFixture) fillCart(t *testing.T, userID, productID string, qty int32) {
	t.Helper()
	_, err := f.cartSvc.AddItem(context.Background(), userID, productID, qty)
	require.NoError(t, err)
}

func assertDecimalEqual(t *testing.T, want, got string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(decimal.RequireFromString(got)),
		"want %s, got %s", want, got)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newOrderFixture()
	f.addWallet(t, "user-a", "USDC", "100")

	_, err := f.svc.Checkout(context.Background(), "user-a", &dto.CheckoutRequest{WalletID: "wallet-user-a"})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutCurrencyMismatch(t *testing.T) {
	f := newOrderFixture(testProduct("sku-1", "Hoodie", usdc("40.00")))
	f.addWallet(t, "user-a", "USDT", "100")
	f.fillCart(t, "user-a", "sku-1", 1)

	_, err := f.svc.Checkout(context.Background(), "user-a", &dto.CheckoutRequest{WalletID: "wallet-user-a"})
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestCheckoutForeignWalletRejected(t *testing.T) {
	f := newOrderFixture(testProduct("sku-1", "Hoodie", usdc("40.00")))
	f.addWallet(t, "user-b", "USDC", "100")
	f.fillCart(t, "user-a", "sku-1", 1)

	_, err := f.svc.Checkout(context.Background(), "user-a", &dto.CheckoutRequest{WalletID: "wallet-user-b"})
	assert.Error(t, err)
}

func TestCheckoutInsufficientBalance(t *testing.T) {
	f := newOrderFixture(testProduct("sku-1", "Hoodie", usdc("40.00")))
	f.addWallet(t, "user-a", "USDC", "10")
	f.fillCart(t, "user-a", "sku-1", 1)

	_, err := f.svc.Checkout(context.Background(), "user-a", &dto.CheckoutRequest{WalletID: "wallet-user-a"})
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestCheckoutTotals(t *testing.T) {
	f := newOrderFixture(testProduct("sku-1", "Hoodie", usdc("100.00")))
	f.addWallet(t, "user-a", "USDC", "500")
	f.fillCart(t, "user-a", "sku-1", 2)

	resp, err := f.svc.Checkout(context.Background(), "user-a", &dto.CheckoutRequest{WalletID: "wallet-user-a"})
	require.NoError(t, err)

	assert.Equal(t, "CREATED", resp.Status)
	assertDecimalEqual(t, "200.00", resp.Subtotal)
	assertDecimalEqual(t, "20.00", resp.Tax)
	assertDecimalEqual(t, "4.99", resp.Shipping)
	assertDecimalEqual(t, "224.99", resp.Total)
	require.Len(t, resp.Items, 1)
	assertDecimalEqual(t, "100.00", resp.Items[0].UnitPrice)
	assert.Equal(t, int32(2), resp.Items[0].Quantity)

	// checkout alone never debits
	w, err := f.wallets.FindByID(context.Background(), "wallet-user-a")
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(500)))
}

func TestCheckoutFreeShippingAtMasterNode(t *testing.T) {
	f := newOrderFixture(testProduct("sku-1", "Hoodie", usdc("100.00")))
	f.addWallet(t, "user-a", "USDC", "500")
	f.fillCart(t, "user-a", "sku-1", 1)
	seedSpend(t, f.rewards, "user-a", "1500")

	resp, err := f.svc.Checkout(context.Background(), "user-a", &dto.CheckoutRequest{WalletID: "wallet-user-a"})
	require.NoError(t, err)

	assertDecimalEqual(t, "0", resp.Shipping)
	assertDecimalEqual(t, "110.00", resp.Total)
}

func TestConfirmPaymentSettlesOrder(t *testing.T) {
	f := newOrderFixture(testProduct("sku-1", "Hoodie", usdc("1000.00")))
	f.addWallet(t, "user-a", "USDC", "2000")
	f.fillCart(t, "user-a", "sku-1", 1)
	ctx := context.Background()

	created, err := f.svc.Checkout(ctx, "user-a", &dto.CheckoutRequest{WalletID: "wallet-user-a"})
	require.NoError(t, err)

	resp, err := f.svc.ConfirmPayment(ctx, "user-a", created.OrderID)
	require.NoError(t, err)

	assert.Equal(t, "PAID", resp.Order.Status)

	// total 1104.99 crosses the MASTER_NODE threshold
	require.NotNil(t, resp.TierUpgrade)
	assert.Equal(t, "NODE_RUNNER", resp.TierUpgrade.FromTier)
	assert.Equal(t, "MASTER_NODE", resp.TierUpgrade.ToTier)
	assert.Equal(t, int64(1000), resp.TierUpgrade.BonusPoints)

	// wallet debited by the order total
	w, err := f.wallets.FindByID(ctx, "wallet-user-a")
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.RequireFromString("895.01")), "balance %s", w.Balance)

	// cart cleared
	cartResp, err := f.cartSvc.Get(ctx, "user-a")
	require.NoError(t, err)
	assert.Empty(t, cartResp.Items)

	// points = floor(total × base multiplier) + upgrade bonus
	rw, err := f.rewards.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1104+1000), rw.Points)
}

func TestConfirmPaymentReplaySafe(t *testing.T) {
	f := newOrderFixture(testProduct("sku-1", "Hoodie", usdc("1000.00")))
	f.addWallet(t, "user-a", "USDC", "2000")
	f.fillCart(t, "user-a", "sku-1", 1)
	ctx := context.Background()

	created, err := f.svc.Checkout(ctx, "user-a", &dto.CheckoutRequest{WalletID: "wallet-user-a"})
	require.NoError(t, err)

	first, err := f.svc.ConfirmPayment(ctx, "user-a", created.OrderID)
	require.NoError(t, err)
	require.NotNil(t, first.TierUpgrade)

	second, err := f.svc.ConfirmPayment(ctx, "user-a", created.OrderID)
	require.NoError(t, err)

	// replay: still paid, no second debit, no second award, no second event
	assert.Equal(t, "PAID", second.Order.Status)
	assert.Nil(t, second.TierUpgrade)

	w, err := f.wallets.FindByID(ctx, "wallet-user-a")
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.RequireFromString("895.01")), "balance %s", w.Balance)

	rw, err := f.rewards.GetOrCreate(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(t, int64(2104), rw.Points)
	assert.Equal(t, int32(1), rw.Purchase.OrderCount)
}

func TestConfirmPaymentForeignOrderRejected(t *testing.T) {
	f := newOrderFixture(testProduct("sku-1", "Hoodie", usdc("40.00")))
	f.addWallet(t, "user-a", "USDC", "500")
	f.fillCart(t, "user-a", "sku-1", 1)
	ctx := context.Background()

	created, err := f.svc.Checkout(ctx, "user-a", &dto.CheckoutRequest{WalletID: "wallet-user-a"})
	require.NoError(t, err)

	_, err = f.svc.ConfirmPayment(ctx, "user-b", created.OrderID)
	assert.Error(t, err)
}

func TestOrderListAndGet(t *testing.T) {
	f := newOrderFixture(testProduct("sku-1", "Hoodie", usdc("40.00")))
	f.addWallet(t, "user-a", "USDC", "500")
	f.fillCart(t, "user-a", "sku-1", 2)
	ctx := context.Background()

	created, err := f.svc.Checkout(ctx, "user-a", &dto.CheckoutRequest{WalletID: "wallet-user-a"})
	require.NoError(t, err)

	list, err := f.svc.ListByUser(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.OrderID, list[0].OrderID)

	got, err := f.svc.Get(ctx, "user-a", created.OrderID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "sku-1", got.Items[0].ProductID)

	_, err = f.svc.Get(ctx, "user-b", created.OrderID)
	assert.Error(t, err)
}
