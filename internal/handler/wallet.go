package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stablecart-api/internal/dto"
	"stablecart-api/internal/service"
)

type WalletHandler struct {
	walletService service.WalletService
}

func NewWalletHandler(walletService service.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

func (h *WalletHandler) CreateWallet(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.CreateWalletRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	wallet, err := h.walletService.Create(ctx, userID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, wallet)
}

func (h *WalletHandler) ListWallets(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	wallets, err := h.walletService.List(ctx, userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, wallets)
}

func (h *WalletHandler) Deposit(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.WalletAmountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	wallet, err := h.walletService.Deposit(ctx, userID, c.Param("walletID"), req.Amount)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, wallet)
}

func (h *WalletHandler) Withdraw(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.WalletAmountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	wallet, err := h.walletService.Withdraw(ctx, userID, c.Param("walletID"), req.Amount)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, wallet)
}
