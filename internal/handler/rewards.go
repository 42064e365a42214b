package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stablecart-api/internal/dto"
	"stablecart-api/internal/service"
	"stablecart-api/internal/tier"
)

type RewardsHandler struct {
	rewardsService service.RewardsService
}

func NewRewardsHandler(rewardsService service.RewardsService) *RewardsHandler {
	return &RewardsHandler{
		rewardsService: rewardsService,
	}
}

func (h *RewardsHandler) GetRewards(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	rewards, err := h.rewardsService.Get(ctx, userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, rewards)
}

func (h *RewardsHandler) GetTiers(c echo.Context) error {
	type tierInfo struct {
		Tier           string   `json:"tier"`
		MinSpend       string   `json:"min_spend"`
		Multiplier     float64  `json:"multiplier"`
		Colors         []string `json:"colors"`
		Benefits       []string `json:"benefits"`
		ExclusiveDrops bool     `json:"exclusive_drops"`
	}

	configs := tier.All()
	out := make([]tierInfo, len(configs))
	for i, cfg := range configs {
		out[i] = tierInfo{
			Tier:           string(cfg.Tier),
			MinSpend:       cfg.MinSpend.String(),
			Multiplier:     cfg.PointMultiplier,
			Colors:         cfg.Colors,
			Benefits:       cfg.Benefits,
			ExclusiveDrops: cfg.ExclusiveDrops,
		}
	}

	return c.JSON(http.StatusOK, out)
}

func (h *RewardsHandler) Subscribe(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	rewards, err := h.rewardsService.SubscribeToTier(ctx, userID, tier.Plan(req.Plan))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, rewards)
}

func (h *RewardsHandler) GetMysteryBoxes(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	boxes, err := h.rewardsService.GetMysteryBoxes(ctx, userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, boxes)
}

func (h *RewardsHandler) OpenMysteryBox(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	box, err := h.rewardsService.OpenMysteryBox(ctx, userID, c.Param("boxID"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, box)
}

func (h *RewardsHandler) GetDrops(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	drops, err := h.rewardsService.GetDrops(ctx, userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, drops)
}
