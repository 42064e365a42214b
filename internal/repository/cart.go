package repository

import (
	"context"
	"errors"
	"stablecart-api/internal/model"
	"time"

	"gorm.io/gorm"
)

type CartRepository interface {
	// Get returns the stored cart for userID, or an empty cart with the
	// default currency when none exists yet.
	Get(ctx context.Context, userID string) (*model.Cart, error)
	// Replace persists the full cart snapshot atomically.
	Replace(ctx context.Context, cart *model.Cart) error
	Clear(ctx context.Context, tx *gorm.DB, userID string) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Get(ctx context.Context, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Cart{UserID: userID, Currency: string(model.DefaultCurrency)}, nil
	}
	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepoImpl) Replace(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_user_id = ?", cart.UserID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		cart.UpdatedAt = time.Now()
		if err := tx.Save(&model.Cart{
			UserID:    cart.UserID,
			Currency:  cart.Currency,
			UpdatedAt: cart.UpdatedAt,
		}).Error; err != nil {
			return err
		}

		if len(cart.Items) == 0 {
			return nil
		}

		items := make([]model.CartItem, len(cart.Items))
		for i, it := range cart.Items {
			items[i] = model.CartItem{
				CartUserID: cart.UserID,
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
			}
		}
		return tx.Create(&items).Error
	})
}

func (r *cartRepoImpl) Clear(ctx context.Context, tx *gorm.DB, userID string) error {
	if err := tx.WithContext(ctx).Where("cart_user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		return err
	}

	return tx.WithContext(ctx).Model(&model.Cart{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"currency":   string(model.DefaultCurrency),
			"updated_at": time.Now(),
		}).Error
}
