package repository

import (
	"context"
	"stablecart-api/internal/model"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WalletRepository interface {
	Create(ctx context.Context, wallet *model.Wallet) error
	FindByID(ctx context.Context, walletID string) (*model.Wallet, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Wallet, error)
	// Credit adds amount to the wallet balance.
	Credit(ctx context.Context, tx *gorm.DB, walletID string, amount decimal.Decimal) error
	// Debit subtracts amount, failing with ErrRecordNotFound when the wallet
	// does not exist or the balance would go negative.
	Debit(ctx context.Context, tx *gorm.DB, walletID string, amount decimal.Decimal) error
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type walletRepoImpl struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepoImpl{
		db: db,
	}
}

func (r *walletRepoImpl) Create(ctx context.Context, wallet *model.Wallet) error {
	return r.db.WithContext(ctx).Create(wallet).Error
}

func (r *walletRepoImpl) FindByID(ctx context.Context, walletID string) (*model.Wallet, error) {
	var wallet model.Wallet
	err := r.db.WithContext(ctx).
		Where("id = ?", walletID).
		First(&wallet).Error

	if err != nil {
		return nil, err
	}

	return &wallet, nil
}

func (r *walletRepoImpl) FindByUser(ctx context.Context, userID string) ([]*model.Wallet, error) {
	var wallets []*model.Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&wallets).Error

	if err != nil {
		return nil, err
	}

	return wallets, nil
}

func (r *walletRepoImpl) Credit(ctx context.Context, tx *gorm.DB, walletID string, amount decimal.Decimal) error {
	result := tx.WithContext(ctx).Model(&model.Wallet{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *walletRepoImpl) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *walletRepoImpl) Debit(ctx context.Context, tx *gorm.DB, walletID string, amount decimal.Decimal) error {
	result := tx.WithContext(ctx).Model(&model.Wallet{}).
		Where("id = ? AND balance >= ?", walletID, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
