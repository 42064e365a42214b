package dto

// ---- auth / users ----

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Country     string `json:"country"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Country     string `json:"country"`
}

// UpdateProfileRequest enumerates exactly the mutable profile fields; nil
// means "leave unchanged". Unknown keys are rejected at the boundary.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Country     *string `json:"country"`
}

type AddressRequest struct {
	Label     string `json:"label"`
	Recipient string `json:"recipient"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2"`
	City      string `json:"city"`
	Postal    string `json:"postal"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

// ---- products ----

type PriceResponse struct {
	Currency string `json:"stablecoin_type"`
	Amount   string `json:"price"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Stock       int32           `json:"stock"`
	Prices      []PriceResponse `json:"prices"`
}

// ---- cart ----

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int32 `json:"quantity"`
}

type SetCurrencyRequest struct {
	Currency string `json:"currency"`
}

type CartItemResponse struct {
	Product   ProductResponse `json:"product"`
	Quantity  int32           `json:"quantity"`
	UnitPrice string          `json:"unit_price"`
	LineTotal string          `json:"line_total"`
}

type CartResponse struct {
	Currency  string             `json:"currency"`
	Items     []CartItemResponse `json:"items"`
	Subtotal  string             `json:"subtotal"`
	ItemCount int32              `json:"item_count"`
}

// ---- orders ----

type CheckoutRequest struct {
	WalletID  string `json:"wallet_id"`
	AddressID string `json:"address_id"`
}

type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Currency  string `json:"currency"`
}

type OrderResponse struct {
	OrderID  string              `json:"order_id"`
	Status   string              `json:"status"`
	Subtotal string              `json:"subtotal"`
	Tax      string              `json:"tax"`
	Shipping string              `json:"shipping"`
	Total    string              `json:"total"`
	Currency string              `json:"currency"`
	Items    []OrderItemResponse `json:"items,omitempty"`
}

type ConfirmPaymentResponse struct {
	Order       OrderResponse     `json:"order"`
	TierUpgrade *TierUpgradeEvent `json:"tier_upgrade,omitempty"`
}

// ---- rewards ----

type TierProgressResponse struct {
	Percent     float64 `json:"percent"`
	SpendNeeded string  `json:"spend_needed"`
	NextTier    string  `json:"next_tier,omitempty"`
}

type RewardCategoryResponse struct {
	Multiplier   float64 `json:"multiplier,omitempty"`
	PointsEarned int64   `json:"points_earned"`
	Count        int32   `json:"count,omitempty"`
	Plan         string  `json:"plan,omitempty"`
	DropBoost    int64   `json:"drop_boost,omitempty"`
}

type RewardsResponse struct {
	Tier         string                 `json:"tier"`
	TierColors   []string               `json:"tier_colors"`
	Benefits     []string               `json:"benefits"`
	TotalSpent   string                 `json:"total_spent"`
	Points       int64                  `json:"points"`
	TokenCredits string                 `json:"token_credits"`
	Progress     TierProgressResponse   `json:"progress"`
	Purchase     RewardCategoryResponse `json:"purchase"`
	Referral     RewardCategoryResponse `json:"referral"`
	Subscription RewardCategoryResponse `json:"subscription"`
}

// TierUpgradeEvent is ephemeral: produced when a purchase crosses a
// threshold, consumed by the celebration UI, never persisted.
type TierUpgradeEvent struct {
	FromTier         string   `json:"from_tier"`
	ToTier           string   `json:"to_tier"`
	TotalSpent       string   `json:"total_spent"`
	BonusPoints      int64    `json:"bonus_points"`
	UnlockedFeatures []string `json:"unlocked_features"`
}

type MysteryBoxResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	RequiredTier string `json:"required_tier"`
	Unlocked     bool   `json:"unlocked"`
	Opened       bool   `json:"opened"`
}

type DropResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	RequiredTier string `json:"required_tier"`
	ProductID    string `json:"product_id,omitempty"`
	Unlocked     bool   `json:"unlocked"`
}

type SubscribeRequest struct {
	Plan string `json:"plan"`
}

// ---- wallets ----

type CreateWalletRequest struct {
	Currency string `json:"currency"`
	Testnet  bool   `json:"testnet"`
}

type WalletAmountRequest struct {
	Amount string `json:"amount"`
}

type WalletResponse struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
	Testnet  bool   `json:"testnet"`
}

type AddressResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Recipient string `json:"recipient"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2"`
	City      string `json:"city"`
	Postal    string `json:"postal"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}
