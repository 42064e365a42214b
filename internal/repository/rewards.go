package repository

import (
	"context"
	"errors"
	"stablecart-api/internal/model"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RewardsRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*model.UserRewards, error)
	Save(ctx context.Context, tx *gorm.DB, rewards *model.UserRewards) error

	// OrderRewarded / MarkOrderRewarded form the idempotency ledger for
	// purchase recording.
	OrderRewarded(ctx context.Context, orderID string) (bool, error)
	MarkOrderRewarded(ctx context.Context, tx *gorm.DB, rec *model.RewardedOrder) error

	GetMysteryBoxes(ctx context.Context, userID string) ([]*model.MysteryBox, error)
	FindMysteryBox(ctx context.Context, userID, boxID string) (*model.MysteryBox, error)
	CreateMysteryBoxes(ctx context.Context, boxes []*model.MysteryBox) error
	MarkBoxOpened(ctx context.Context, tx *gorm.DB, userID, boxID string) error

	ListDrops(ctx context.Context) ([]*model.ExclusiveDrop, error)
	SeedDrops(ctx context.Context) error

	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type rewardsRepoImpl struct {
	db *gorm.DB
}

func NewRewardsRepository(db *gorm.DB) RewardsRepository {
	return &rewardsRepoImpl{
		db: db,
	}
}

func (r *rewardsRepoImpl) GetOrCreate(ctx context.Context, userID string) (*model.UserRewards, error) {
	var rewards model.UserRewards
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&rewards).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		rewards = model.UserRewards{
			UserID:       userID,
			TotalSpent:   decimal.Zero,
			TokenCredits: decimal.Zero,
			Purchase:     model.PurchaseRewards{Multiplier: 1.0},
		}
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rewards).Error; err != nil {
			return nil, err
		}
		return &rewards, nil
	}
	if err != nil {
		return nil, err
	}

	return &rewards, nil
}

func (r *rewardsRepoImpl) Save(ctx context.Context, tx *gorm.DB, rewards *model.UserRewards) error {
	rewards.UpdatedAt = time.Now()
	return tx.WithContext(ctx).Save(rewards).Error
}

func (r *rewardsRepoImpl) OrderRewarded(ctx context.Context, orderID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RewardedOrder{}).
		Where("order_id = ?", orderID).
		Count(&count).Error

	return count > 0, err
}

func (r *rewardsRepoImpl) MarkOrderRewarded(ctx context.Context, tx *gorm.DB, rec *model.RewardedOrder) error {
	rec.ProcessedAt = time.Now()
	return tx.WithContext(ctx).Create(rec).Error
}

func (r *rewardsRepoImpl) GetMysteryBoxes(ctx context.Context, userID string) ([]*model.MysteryBox, error) {
	var boxes []*model.MysteryBox
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&boxes).Error

	if err != nil {
		return nil, err
	}

	return boxes, nil
}

func (r *rewardsRepoImpl) FindMysteryBox(ctx context.Context, userID, boxID string) (*model.MysteryBox, error) {
	var box model.MysteryBox
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, boxID).
		First(&box).Error

	if err != nil {
		return nil, err
	}

	return &box, nil
}

func (r *rewardsRepoImpl) CreateMysteryBoxes(ctx context.Context, boxes []*model.MysteryBox) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&boxes).Error
}

func (r *rewardsRepoImpl) MarkBoxOpened(ctx context.Context, tx *gorm.DB, userID, boxID string) error {
	result := tx.WithContext(ctx).Model(&model.MysteryBox{}).
		Where("user_id = ? AND id = ?", userID, boxID).
		Updates(map[string]interface{}{
			"opened":     true,
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

func (r *rewardsRepoImpl) ListDrops(ctx context.Context) ([]*model.ExclusiveDrop, error) {
	var drops []*model.ExclusiveDrop
	err := r.db.WithContext(ctx).
		Order("starts_at ASC").
		Find(&drops).Error

	if err != nil {
		return nil, err
	}

	return drops, nil
}

func (r *rewardsRepoImpl) SeedDrops(ctx context.Context) error {
	now := time.Now()
	drops := []model.ExclusiveDrop{
		{ID: "drop-genesis-jacket", Name: "Genesis Jacket", Description: "Numbered run of 210", RequiredTier: "WHALE",
			ProductID: "hw-wallet-x2", StartsAt: now, EndsAt: now.AddDate(0, 1, 0)},
		{ID: "drop-validator-desk", Name: "Validator Desk Mat", Description: "Validator-tier desk mat", RequiredTier: "VALIDATOR",
			StartsAt: now, EndsAt: now.AddDate(0, 2, 0)},
		{ID: "drop-satoshi-plate", Name: "Satoshi Plate", Description: "Engraved titanium seed plate", RequiredTier: "SATOSHI",
			StartsAt: now, EndsAt: now.AddDate(0, 3, 0)},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&drops).Error
}

func (r *rewardsRepoImpl) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
