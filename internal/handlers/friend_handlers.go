package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"finance_tracker_echo/internal/ledger"
	"finance_tracker_echo/internal/middleware"
	"finance_tracker_echo/internal/services"
)

// FriendHandler serves the friend registry plus the per-friend detail view
// with transaction history and settlements.
type FriendHandler struct {
	friends     *services.FriendService
	balances    *services.BalanceService
	settlements *services.SettlementService
}

func NewFriendHandler(friends *services.FriendService, balances *services.BalanceService, settlements *services.SettlementService) *FriendHandler {
	return &FriendHandler{friends: friends, balances: balances, settlements: settlements}
}

// ListFriends returns all of the user's friends.
func (h *FriendHandler) ListFriends(c echo.Context) error {
	user := middleware.CurrentUser(c)
	friends, err := h.friends.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, friends)
}

// CreateFriend adds a friend to the registry.
func (h *FriendHandler) CreateFriend(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req friendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	friend, err := h.friends.Create(c.Request().Context(), user.ID, req.Name, req.Email, req.Phone)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, friend)
}

// GetFriend returns one friend with their transaction history and recent
// settlements.
func (h *FriendHandler) GetFriend(c echo.Context) error {
	user := middleware.CurrentUser(c)
	friendID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	friend, err := h.friends.Get(ctx, user.ID, friendID)
	if err != nil {
		return err
	}

	transactions, err := h.balances.GetTransactionsByFriend(ctx, user.ID, nil, nil)
	if err != nil {
		return err
	}
	settlements, err := h.settlements.ListForFriend(ctx, user.ID, friendID)
	if err != nil {
		return err
	}

	details := transactions[friendID]
	if details == nil {
		details = []ledger.TransactionDetail{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"friend":       friend,
		"transactions": details,
		"settlements":  settlements,
	})
}

// UpdateFriend changes a friend's contact details.
func (h *FriendHandler) UpdateFriend(c echo.Context) error {
	user := middleware.CurrentUser(c)
	friendID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req friendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	friend, err := h.friends.Update(c.Request().Context(), user.ID, friendID, req.Name, req.Email, req.Phone)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, friend)
}

// DeleteFriend removes a friend. Friends referenced by shared expenses are
// protected and the delete is rejected.
func (h *FriendHandler) DeleteFriend(c echo.Context) error {
	user := middleware.CurrentUser(c)
	friendID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.friends.Delete(c.Request().Context(), user.ID, friendID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RecordSettlement records a cash settlement with a friend.
func (h *FriendHandler) RecordSettlement(c echo.Context) error {
	user := middleware.CurrentUser(c)
	friendID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req settlementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return ledger.NewValidationError("amount", "invalid amount %q", req.Amount)
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}

	settlement, err := h.settlements.RecordSettlement(
		c.Request().Context(), user.ID, friendID, amount, date, req.PayerIsUser, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, settlement)
}

// ListSettlements returns the settlement history with a friend.
func (h *FriendHandler) ListSettlements(c echo.Context) error {
	user := middleware.CurrentUser(c)
	friendID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	settlements, err := h.settlements.ListForFriend(c.Request().Context(), user.ID, friendID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settlements)
}

// paramID parses a numeric path parameter. Malformed ids map to not-found so
// probing requests learn nothing.
func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, &services.NotFoundError{Resource: "record"}
	}
	return uint(id), nil
}
