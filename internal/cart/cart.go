// Package cart implements the in-memory cart aggregate. All mutations are
// synchronous and local; persistence and stock validation are the caller's
// concern.
package cart

import (
	"github.com/shopspring/decimal"

	"stablecart-api/internal/model"
	"stablecart-api/internal/pricing"
)

// Item is one cart line: a product snapshot and a positive quantity.
type Item struct {
	Product  model.Product
	Quantity int32
}

// Cart holds the selected items and settlement currency for one owner.
type Cart struct {
	UserID   string
	Currency model.Stablecoin
	Items    []Item
}

// New returns an empty cart owned by userID with the default currency.
func New(userID string) *Cart {
	return &Cart{UserID: userID, Currency: model.DefaultCurrency}
}

// AddItem increments the quantity of an existing line or appends a new one.
// Non-positive quantities are ignored.
func (c *Cart) AddItem(p model.Product, qty int32) {
	if qty <= 0 {
		return
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == p.ID {
			c.Items[i].Quantity += qty
			return
		}
	}
	c.Items = append(c.Items, Item{Product: p, Quantity: qty})
}

// RemoveItem deletes the line for productID; no-op if absent.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity overwrites a line's quantity. A quantity of zero or less
// removes the line; a zero-quantity entry never exists.
func (c *Cart) UpdateQuantity(productID string, qty int32) {
	if qty <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].Quantity = qty
			return
		}
	}
}

// Clear empties the cart and resets the currency to the default.
func (c *Cart) Clear() {
	c.Items = nil
	c.Currency = model.DefaultCurrency
}

// SetCurrency selects the settlement currency. Unknown codes are ignored.
func (c *Cart) SetCurrency(code string) {
	if model.ValidCurrency(code) {
		c.Currency = model.Stablecoin(code)
	}
}

// Total sums resolved unit price × quantity over all lines in the selected
// currency.
func (c *Cart) Total() decimal.Decimal {
	return c.TotalIn(string(c.Currency))
}

// TotalIn sums the cart in an explicit currency, using the shared price
// fallback for products without a matching price entry.
func (c *Cart) TotalIn(currency string) decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		unit := pricing.Amount(it.Product.Prices, currency)
		total = total.Add(unit.Mul(decimal.NewFromInt32(it.Quantity)))
	}
	return total
}

// ItemCount is the sum of quantities, not the number of distinct lines.
func (c *Cart) ItemCount() int32 {
	var n int32
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// ItemQuantity returns the quantity for productID, zero if absent.
func (c *Cart) ItemQuantity(productID string) int32 {
	for _, it := range c.Items {
		if it.Product.ID == productID {
			return it.Quantity
		}
	}
	return 0
}

// Contains reports whether productID has a line in the cart.
func (c *Cart) Contains(productID string) bool {
	return c.ItemQuantity(productID) > 0
}

// LoadForUser adopts userID as the cart owner. If the owner changes, all
// items are wiped and the currency reset first, so one user's cart is never
// visible to another on a shared device.
func (c *Cart) LoadForUser(userID string) {
	if c.UserID != userID {
		c.Clear()
		c.UserID = userID
	}
}
