package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stablecart-api/internal/dto"
	"stablecart-api/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.WalletID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "wallet_id is required")
	}

	order, err := h.orderService.Checkout(ctx, userID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ConfirmPayment(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	result, err := h.orderService.ConfirmPayment(ctx, userID, c.Param("orderID"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.ListByUser(ctx, userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.Get(ctx, userID, c.Param("orderID"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}
