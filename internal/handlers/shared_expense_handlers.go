package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"finance_tracker_echo/internal/ledger"
	"finance_tracker_echo/internal/middleware"
	"finance_tracker_echo/internal/services"
)

// SharedExpenseHandler serves shared-expense creation and history.
type SharedExpenseHandler struct {
	expenses *services.SharedExpenseService
}

func NewSharedExpenseHandler(expenses *services.SharedExpenseService) *SharedExpenseHandler {
	return &SharedExpenseHandler{expenses: expenses}
}

// CreateSharedExpense records a new shared expense from a typed split
// request. The whole split is validated before anything is written; a
// violated constraint rejects the request with the offending field.
func (h *SharedExpenseHandler) CreateSharedExpense(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req createSharedExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return ledger.NewValidationError("amount", "invalid amount %q", req.Amount)
	}

	participants := make([]ledger.ParticipantInput, 0, len(req.Participants))
	for _, p := range req.Participants {
		share, err := decimal.NewFromString(p.ShareAmount)
		if err != nil {
			return ledger.NewValidationError(ledger.FieldParticipants,
				"invalid share amount %q for %q", p.ShareAmount, p.Name)
		}
		participants = append(participants, ledger.ParticipantInput{
			Name:        p.Name,
			IsUser:      p.IsUser,
			ShareAmount: share,
		})
	}

	shared, err := h.expenses.CreateSharedExpense(c.Request().Context(), user, services.CreateSharedExpenseInput{
		Date:         date,
		Amount:       amount,
		Currency:     req.Currency,
		Description:  req.Description,
		Category:     req.Category,
		Participants: participants,
		PayerName:    req.PayerName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, shared)
}

// ListSharedExpenses returns the user's shared expenses, optionally bounded
// by start_date/end_date query parameters (inclusive).
func (h *SharedExpenseHandler) ListSharedExpenses(c echo.Context) error {
	user := middleware.CurrentUser(c)

	startDate, err := parseOptionalDate("start_date", c.QueryParam("start_date"))
	if err != nil {
		return err
	}
	endDate, err := parseOptionalDate("end_date", c.QueryParam("end_date"))
	if err != nil {
		return err
	}

	shared, err := h.expenses.List(c.Request().Context(), user.ID, startDate, endDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shared)
}

// GetSharedExpense returns one shared expense with participants and shares.
func (h *SharedExpenseHandler) GetSharedExpense(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	shared, err := h.expenses.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shared)
}

// DeleteSharedExpense removes a shared expense and its split rows.
func (h *SharedExpenseHandler) DeleteSharedExpense(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.expenses.Delete(c.Request().Context(), user.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
