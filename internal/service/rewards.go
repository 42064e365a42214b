package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stablecart-api/internal/dto"
	"stablecart-api/internal/model"
	"stablecart-api/internal/repository"
	"stablecart-api/internal/tier"
)

type RewardsService interface {
	Get(ctx context.Context, userID string) (*dto.RewardsResponse, error)

	// AddPurchase is the only mutating entry point for recording spend. It is
	// idempotent per orderID: replaying a purchase-recorded event never
	// double-awards points or upgrade bonuses. The returned event is non-nil
	// only when the purchase crossed a tier threshold.
	AddPurchase(ctx context.Context, userID, orderID string, amount decimal.Decimal, points int64) (*dto.TierUpgradeEvent, error)

	SubscribeToTier(ctx context.Context, userID string, plan tier.Plan) (*dto.RewardsResponse, error)

	GetMysteryBoxes(ctx context.Context, userID string) ([]*dto.MysteryBoxResponse, error)
	OpenMysteryBox(ctx context.Context, userID, boxID string) (*dto.MysteryBoxResponse, error)
	GetDrops(ctx context.Context, userID string) ([]*dto.DropResponse, error)

	// CurrentMultiplier exposes the purchase sub-record multiplier so the
	// checkout flow can price earned points.
	CurrentMultiplier(ctx context.Context, userID string) (float64, error)
}

// pointsOpenedBox is credited when a user opens an unlocked mystery box.
const pointsOpenedBox int64 = 250

type rewardsServiceImpl struct {
	rewardsRepo repository.RewardsRepository
	log         zerolog.Logger
}

func NewRewardsService(rewardsRepo repository.RewardsRepository, log zerolog.Logger) RewardsService {
	return &rewardsServiceImpl{
		rewardsRepo: rewardsRepo,
		log:         log,
	}
}

// currentTier derives the membership tier from lifetime spend. The tier is
// never read from storage, so it cannot get stuck behind a missed update.
func currentTier(r *model.UserRewards) tier.Tier {
	return tier.FromSpend(r.TotalSpent)
}

func (s *rewardsServiceImpl) Get(ctx context.Context, userID string) (*dto.RewardsResponse, error) {
	rewards, err := s.rewardsRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load rewards: %w", err)
	}

	return toRewardsResponse(rewards), nil
}

func (s *rewardsServiceImpl) AddPurchase(ctx context.Context, userID, orderID string, amount decimal.Decimal, points int64) (*dto.TierUpgradeEvent, error) {
	rewarded, err := s.rewardsRepo.OrderRewarded(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("check rewarded order: %w", err)
	}
	if rewarded {
		s.log.Info().Str("order_id", orderID).Msg("purchase already recorded, skipping")
		return nil, nil
	}

	rewards, err := s.rewardsRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load rewards: %w", err)
	}

	oldTier := currentTier(rewards)

	rewards.TotalSpent = rewards.TotalSpent.Add(amount)
	rewards.Points += points
	rewards.Purchase.PointsEarned += points
	rewards.Purchase.OrderCount++

	newTier := currentTier(rewards)

	var event *dto.TierUpgradeEvent
	if newTier != oldTier {
		// one flat bonus per crossing event, no matter how many thresholds
		// the purchase jumped
		rewards.Points += tier.UpgradeBonusPoints
		rewards.Purchase.Multiplier = tier.Lookup(newTier).PointMultiplier

		unlocked, err := s.newlyUnlockedFeatures(ctx, userID, oldTier, newTier)
		if err != nil {
			return nil, err
		}

		event = &dto.TierUpgradeEvent{
			FromTier:         string(oldTier),
			ToTier:           string(newTier),
			TotalSpent:       rewards.TotalSpent.String(),
			BonusPoints:      tier.UpgradeBonusPoints,
			UnlockedFeatures: unlocked,
		}
	}

	err = s.rewardsRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.rewardsRepo.Save(ctx, tx, rewards); err != nil {
			return fmt.Errorf("save rewards: %w", err)
		}
		return s.rewardsRepo.MarkOrderRewarded(ctx, tx, &model.RewardedOrder{
			OrderID: orderID,
			UserID:  userID,
			Amount:  amount,
			Points:  points,
		})
	})
	if err != nil {
		return nil, err
	}

	if event != nil {
		s.log.Info().
			Str("user_id", userID).
			Str("from", event.FromTier).
			Str("to", event.ToTier).
			Msg("tier upgrade")
	}

	return event, nil
}

// newlyUnlockedFeatures lists what a jump from oldTier to newTier opens up:
// the new tier's benefits plus any boxes and drops whose required tier falls
// inside the crossed range.
func (s *rewardsServiceImpl) newlyUnlockedFeatures(ctx context.Context, userID string, oldTier, newTier tier.Tier) ([]string, error) {
	features := append([]string(nil), tier.Lookup(newTier).Benefits...)

	boxes, err := s.rewardsRepo.GetMysteryBoxes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load mystery boxes: %w", err)
	}
	for _, b := range boxes {
		required := tier.Tier(b.RequiredTier)
		if !tier.AtLeast(oldTier, required) && tier.AtLeast(newTier, required) {
			features = append(features, b.Name)
		}
	}

	drops, err := s.rewardsRepo.ListDrops(ctx)
	if err != nil {
		return nil, fmt.Errorf("load drops: %w", err)
	}
	for _, d := range drops {
		required := tier.Tier(d.RequiredTier)
		if !tier.AtLeast(oldTier, required) && tier.AtLeast(newTier, required) {
			features = append(features, d.Name)
		}
	}

	return features, nil
}

func (s *rewardsServiceImpl) SubscribeToTier(ctx context.Context, userID string, plan tier.Plan) (*dto.RewardsResponse, error) {
	cfg, ok := tier.LookupPlan(plan)
	if !ok {
		return nil, ErrUnknownPlan
	}

	rewards, err := s.rewardsRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load rewards: %w", err)
	}

	// welcome bonus applies once per plan change, not per renewal
	alreadyOnPlan := rewards.Subscription.Plan == string(cfg.Plan)

	rewards.Subscription.Plan = string(cfg.Plan)
	rewards.Subscription.Multiplier = cfg.PointMultiplier
	rewards.Subscription.DropBoost = cfg.DropBoost
	if !alreadyOnPlan {
		rewards.Subscription.PointsEarned += cfg.WelcomeBonus
		rewards.Points += cfg.WelcomeBonus
	}

	err = s.rewardsRepo.Transaction(ctx, func(tx *gorm.DB) error {
		return s.rewardsRepo.Save(ctx, tx, rewards)
	})
	if err != nil {
		return nil, fmt.Errorf("save subscription: %w", err)
	}

	return toRewardsResponse(rewards), nil
}

func (s *rewardsServiceImpl) GetMysteryBoxes(ctx context.Context, userID string) ([]*dto.MysteryBoxResponse, error) {
	rewards, err := s.rewardsRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load rewards: %w", err)
	}

	boxes, err := s.rewardsRepo.GetMysteryBoxes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load mystery boxes: %w", err)
	}
	if len(boxes) == 0 {
		boxes, err = s.seedMysteryBoxes(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	t := currentTier(rewards)
	out := make([]*dto.MysteryBoxResponse, len(boxes))
	for i, b := range boxes {
		out[i] = toMysteryBoxResponse(b, t)
	}

	return out, nil
}

func (s *rewardsServiceImpl) seedMysteryBoxes(ctx context.Context, userID string) ([]*model.MysteryBox, error) {
	boxes := []*model.MysteryBox{
		{ID: uuid.NewString(), UserID: userID, Name: "Starter Box", Description: "A welcome crate for new members", RequiredTier: string(tier.NodeRunner)},
		{ID: uuid.NewString(), UserID: userID, Name: "Master Crate", Description: "Monthly crate for master nodes", RequiredTier: string(tier.MasterNode)},
		{ID: uuid.NewString(), UserID: userID, Name: "Whale Vault", Description: "Deep-sea loot for whales", RequiredTier: string(tier.Whale)},
	}

	if err := s.rewardsRepo.CreateMysteryBoxes(ctx, boxes); err != nil {
		return nil, fmt.Errorf("seed mystery boxes: %w", err)
	}

	return boxes, nil
}

func (s *rewardsServiceImpl) OpenMysteryBox(ctx context.Context, userID, boxID string) (*dto.MysteryBoxResponse, error) {
	rewards, err := s.rewardsRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load rewards: %w", err)
	}

	box, err := s.rewardsRepo.FindMysteryBox(ctx, userID, boxID)
	if err != nil {
		return nil, fmt.Errorf("find mystery box: %w", err)
	}

	t := currentTier(rewards)
	if !tier.AtLeast(t, tier.Tier(box.RequiredTier)) {
		return nil, ErrTierLocked
	}
	if box.Opened {
		return nil, ErrBoxAlreadyOpened
	}

	rewards.Points += pointsOpenedBox
	err = s.rewardsRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.rewardsRepo.MarkBoxOpened(ctx, tx, userID, boxID); err != nil {
			return err
		}
		return s.rewardsRepo.Save(ctx, tx, rewards)
	})
	if err != nil {
		return nil, fmt.Errorf("open mystery box: %w", err)
	}

	box.Opened = true
	box.UpdatedAt = time.Now()
	return toMysteryBoxResponse(box, t), nil
}

func (s *rewardsServiceImpl) GetDrops(ctx context.Context, userID string) ([]*dto.DropResponse, error) {
	rewards, err := s.rewardsRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load rewards: %w", err)
	}

	drops, err := s.rewardsRepo.ListDrops(ctx)
	if err != nil {
		return nil, fmt.Errorf("load drops: %w", err)
	}

	t := currentTier(rewards)
	out := make([]*dto.DropResponse, len(drops))
	for i, d := range drops {
		out[i] = &dto.DropResponse{
			ID:           d.ID,
			Name:         d.Name,
			Description:  d.Description,
			RequiredTier: d.RequiredTier,
			ProductID:    d.ProductID,
			Unlocked:     tier.AtLeast(t, tier.Tier(d.RequiredTier)),
		}
	}

	return out, nil
}

func (s *rewardsServiceImpl) CurrentMultiplier(ctx context.Context, userID string) (float64, error) {
	rewards, err := s.rewardsRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("load rewards: %w", err)
	}

	m := rewards.Purchase.Multiplier
	if m <= 0 {
		m = tier.Lookup(currentTier(rewards)).PointMultiplier
	}
	return m, nil
}

func toRewardsResponse(r *model.UserRewards) *dto.RewardsResponse {
	t := currentTier(r)
	cfg := tier.Lookup(t)
	progress := tier.ProgressToNext(r.TotalSpent, t)

	resp := &dto.RewardsResponse{
		Tier:         string(t),
		TierColors:   cfg.Colors,
		Benefits:     cfg.Benefits,
		TotalSpent:   r.TotalSpent.String(),
		Points:       r.Points,
		TokenCredits: r.TokenCredits.String(),
		Progress: dto.TierProgressResponse{
			Percent:     progress.Percent,
			SpendNeeded: progress.SpendNeeded.String(),
		},
		Purchase: dto.RewardCategoryResponse{
			Multiplier:   r.Purchase.Multiplier,
			PointsEarned: r.Purchase.PointsEarned,
			Count:        r.Purchase.OrderCount,
		},
		Referral: dto.RewardCategoryResponse{
			PointsEarned: r.Referral.PointsEarned,
			Count:        r.Referral.Count,
		},
		Subscription: dto.RewardCategoryResponse{
			Plan:         r.Subscription.Plan,
			Multiplier:   r.Subscription.Multiplier,
			DropBoost:    r.Subscription.DropBoost,
			PointsEarned: r.Subscription.PointsEarned,
		},
	}
	if progress.HasNext {
		resp.Progress.NextTier = string(progress.NextTier)
	}

	return resp
}

func toMysteryBoxResponse(b *model.MysteryBox, t tier.Tier) *dto.MysteryBoxResponse {
	return &dto.MysteryBoxResponse{
		ID:           b.ID,
		Name:         b.Name,
		Description:  b.Description,
		RequiredTier: b.RequiredTier,
		Unlocked:     tier.AtLeast(t, tier.Tier(b.RequiredTier)),
		Opened:       b.Opened,
	}
}
