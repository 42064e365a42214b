package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string `gorm:"primaryKey;size:64;not null"` // product sku
	Name        string `gorm:"size:128;not null"`
	Description string `gorm:"size:512"`
	Category    string `gorm:"size:64;index;not null"`
	Stock       int32  `gorm:"not null"`
	// one row per settlement currency; at most one per (product, currency)
	Prices    []ProductPrice `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductPrice struct {
	ID        uint            `gorm:"primaryKey"`
	ProductID string          `gorm:"size:64;uniqueIndex:idx_product_currency;not null"`
	Currency  string          `gorm:"size:8;uniqueIndex:idx_product_currency;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,6);not null"`
}

type Cart struct {
	UserID    string     `gorm:"primaryKey;size:64;not null"`
	Currency  string     `gorm:"size:8;not null"`
	Items     []CartItem `gorm:"foreignKey:CartUserID"`
	UpdatedAt time.Time
}

type CartItem struct {
	ID         uint   `gorm:"primaryKey"`
	CartUserID string `gorm:"size:64;uniqueIndex:idx_cart_product;not null"`
	ProductID  string `gorm:"size:64;uniqueIndex:idx_cart_product;not null"`
	Quantity   int32  `gorm:"not null"`
	CreatedAt  time.Time
}

type Order struct {
	OrderID   string          `gorm:"primaryKey;size:64;not null"`
	UserID    string          `gorm:"size:64;index;not null"`
	WalletID  string          `gorm:"size:64;not null"`
	Status    string          `gorm:"size:32;index;not null"` // CREATED, PAID, CANCELLED
	Subtotal  decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Tax       decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Shipping  decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Total     decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Currency  string          `gorm:"size:8;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → order.order_id
	OrderID string `gorm:"size:64;index;not null"`
	// FK → product.id
	ProductID string          `gorm:"size:64;index;not null"`
	Quantity  int32           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Currency  string          `gorm:"size:8;not null"`
	CreatedAt time.Time
}

// UserRewards is the per-user aggregate. The current tier is not a column:
// it is derived from TotalSpent on every read so it can never drift from
// the threshold table.
type UserRewards struct {
	UserID       string              `gorm:"primaryKey;size:64;not null"`
	TotalSpent   decimal.Decimal     `gorm:"type:decimal(20,6);not null"`
	Points       int64               `gorm:"not null"`
	TokenCredits decimal.Decimal     `gorm:"type:decimal(20,6);not null"`
	Purchase     PurchaseRewards     `gorm:"embedded;embeddedPrefix:purchase_"`
	Referral     ReferralRewards     `gorm:"embedded;embeddedPrefix:referral_"`
	Subscription SubscriptionRewards `gorm:"embedded;embeddedPrefix:subscription_"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type PurchaseRewards struct {
	Multiplier   float64 `gorm:"not null"`
	PointsEarned int64   `gorm:"not null"`
	OrderCount   int32   `gorm:"not null"`
}

type ReferralRewards struct {
	Count        int32 `gorm:"not null"`
	PointsEarned int64 `gorm:"not null"`
}

type SubscriptionRewards struct {
	Plan         string  `gorm:"size:16"`
	Multiplier   float64 `gorm:"not null"`
	DropBoost    int64   `gorm:"not null"`
	PointsEarned int64   `gorm:"not null"`
}

// MysteryBox stores only RequiredTier; whether the box is unlocked is
// computed at read time from the owner's current tier.
type MysteryBox struct {
	ID           string `gorm:"primaryKey;size:64;not null"`
	UserID       string `gorm:"size:64;index;not null"`
	Name         string `gorm:"size:128;not null"`
	Description  string `gorm:"size:512"`
	RequiredTier string `gorm:"size:32;not null"`
	Opened       bool   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ExclusiveDrop struct {
	ID           string `gorm:"primaryKey;size:64;not null"`
	Name         string `gorm:"size:128;not null"`
	Description  string `gorm:"size:512"`
	RequiredTier string `gorm:"size:32;not null"`
	ProductID    string `gorm:"size:64;index"`
	StartsAt     time.Time
	EndsAt       time.Time
	CreatedAt    time.Time
}

// RewardedOrder makes purchase recording idempotent: one row per order id
// that has already fed the rewards engine.
type RewardedOrder struct {
	OrderID     string          `gorm:"primaryKey;size:64;not null"`
	UserID      string          `gorm:"size:64;index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Points      int64           `gorm:"not null"`
	ProcessedAt time.Time
}

type Wallet struct {
	ID        string          `gorm:"primaryKey;size:64;not null"`
	UserID    string          `gorm:"size:64;index;not null"`
	Currency  string          `gorm:"size:8;not null"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Testnet   bool            `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	ID           string `gorm:"primaryKey;size:64;not null"`
	Email        string `gorm:"size:128;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	DisplayName  string `gorm:"size:64"`
	Country      string `gorm:"size:2"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Address struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	UserID    string `gorm:"size:64;index;not null"`
	Label     string `gorm:"size:32"`
	Recipient string `gorm:"size:128;not null"`
	Line1     string `gorm:"size:256;not null"`
	Line2     string `gorm:"size:256"`
	City      string `gorm:"size:64;not null"`
	Postal    string `gorm:"size:16"`
	Country   string `gorm:"size:2;not null"`
	IsDefault bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
