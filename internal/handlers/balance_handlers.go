package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"finance_tracker_echo/internal/middleware"
	"finance_tracker_echo/internal/services"
)

// BalanceHandler serves the per-friend balance views.
type BalanceHandler struct {
	balances *services.BalanceService
}

func NewBalanceHandler(balances *services.BalanceService) *BalanceHandler {
	return &BalanceHandler{balances: balances}
}

// GetBalances returns the lent/borrowed/net position per friend, optionally
// restricted by start_date/end_date (inclusive on the expense date).
func (h *BalanceHandler) GetBalances(c echo.Context) error {
	user := middleware.CurrentUser(c)

	startDate, err := parseOptionalDate("start_date", c.QueryParam("start_date"))
	if err != nil {
		return err
	}
	endDate, err := parseOptionalDate("end_date", c.QueryParam("end_date"))
	if err != nil {
		return err
	}

	balances, err := h.balances.CalculateBalances(c.Request().Context(), user.ID, startDate, endDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balances)
}

// GetFriendsSummary returns the full balance sheet, one row per friend who
// has ever participated, largest imbalance first.
func (h *BalanceHandler) GetFriendsSummary(c echo.Context) error {
	user := middleware.CurrentUser(c)

	summary, err := h.balances.GetFriendsSummary(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"settlement_policy": h.balances.Policy(),
		"friends":           summary,
	})
}

// GetTransactionsByFriend returns the transaction details backing each
// friend's balance figure.
func (h *BalanceHandler) GetTransactionsByFriend(c echo.Context) error {
	user := middleware.CurrentUser(c)

	startDate, err := parseOptionalDate("start_date", c.QueryParam("start_date"))
	if err != nil {
		return err
	}
	endDate, err := parseOptionalDate("end_date", c.QueryParam("end_date"))
	if err != nil {
		return err
	}

	transactions, err := h.balances.GetTransactionsByFriend(c.Request().Context(), user.ID, startDate, endDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactions)
}
