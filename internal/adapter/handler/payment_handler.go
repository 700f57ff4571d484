package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports"
	"github.com/srgjo27/event_ticketing/internal/core/services"
)

type PaymentHandler struct {
	holds       *services.HoldService
	settlements *services.SettlementService
	wallets     ports.WalletRepository
	resultURL   string
}

func NewPaymentHandler(holds *services.HoldService, settlements *services.SettlementService, wallets ports.WalletRepository, resultURL string) *PaymentHandler {
	return &PaymentHandler{
		holds:       holds,
		settlements: settlements,
		wallets:     wallets,
		resultURL:   resultURL,
	}
}

func (h *PaymentHandler) Register(g *echo.Group) {
	g.POST("/payment/initiate", h.Initiate)
	g.GET("/payment/return", h.GatewayReturn)
	g.POST("/payment/wallet", h.PayWithWallet)
	g.GET("/wallet/balance", h.WalletBalance)
}

// Initiate places holds on the requested seats and returns the gateway
// redirect URL for the buyer.
func (h *PaymentHandler) Initiate(c echo.Context) error {
	var req services.CreateHoldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.ClientIP = c.RealIP()

	resp, err := h.holds.CreateHold(c.Request().Context(), req)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// GatewayReturn receives the gateway callback with the buyer's browser
// attached, settles (or rejects) the payment and always answers with a
// redirect to the frontend result page.
func (h *PaymentHandler) GatewayReturn(c echo.Context) error {
	outcome := h.settlements.HandleGatewayReturn(c.Request().Context(), c.QueryParams())

	return c.Redirect(http.StatusFound, outcome.ResultURL(h.resultURL))
}

// PayWithWallet settles a hold batch against the buyer's wallet.
func (h *PaymentHandler) PayWithWallet(c echo.Context) error {
	var req services.WalletSettlementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.settlements.SettleWithWallet(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return echo.NewHTTPError(http.StatusPaymentRequired, "insufficient wallet balance")
		}
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

type walletBalanceResponse struct {
	UserID  int64  `json:"user_id"`
	Balance string `json:"balance"`
}

func (h *PaymentHandler) WalletBalance(c echo.Context) error {
	userID, err := pathInt64(c.QueryParam("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	balance, err := h.wallets.GetBalance(c.Request().Context(), userID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, walletBalanceResponse{
		UserID:  userID,
		Balance: balance.StringFixed(2),
	})
}
