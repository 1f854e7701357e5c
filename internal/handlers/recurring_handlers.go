package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/teambition/rrule-go"
	"gorm.io/gorm"

	"finance_tracker_echo/internal/ledger"
	"finance_tracker_echo/internal/middleware"
	"finance_tracker_echo/internal/models"
	"finance_tracker_echo/internal/services"
)

// RecurringHandler serves recurring-transaction templates; the worker
// materializes them into real rows.
type RecurringHandler struct {
	db *gorm.DB
}

func NewRecurringHandler(db *gorm.DB) *RecurringHandler {
	return &RecurringHandler{db: db}
}

// ListRecurring returns the user's recurring transactions.
func (h *RecurringHandler) ListRecurring(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var recurring []models.RecurringTransaction
	err := h.db.WithContext(c.Request().Context()).
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&recurring).Error
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recurring)
}

// CreateRecurring adds a recurring-transaction template. The interval is an
// RFC 5545 RRULE string and is validated up front so the worker never has to
// deal with an unparseable rule.
func (h *RecurringHandler) CreateRecurring(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req recurringRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return ledger.NewValidationError("amount", "invalid amount %q", req.Amount)
	}
	if !amount.IsPositive() {
		return ledger.NewValidationError("amount", "amount must be greater than zero")
	}
	startDate, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return err
	}
	if _, err := rrule.StrToRRule(req.RecurringInterval); err != nil {
		return ledger.NewValidationError("recurring_interval", "invalid recurrence rule: %v", err)
	}

	transactionType := models.TransactionType(req.TransactionType)
	if transactionType != models.TransactionTypeIncome {
		transactionType = models.TransactionTypeExpense
	}

	currency := req.Currency
	if currency == "" {
		currency = user.Currency
	}

	recurring := models.RecurringTransaction{
		UserID:            user.ID,
		TransactionType:   transactionType,
		Amount:            amount,
		Currency:          currency,
		Description:       req.Description,
		Category:          req.Category,
		RecurringInterval: req.RecurringInterval,
		StartDate:         startDate,
		IsActive:          true,
	}
	if err := h.db.WithContext(c.Request().Context()).Create(&recurring).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, recurring)
}

// DeleteRecurring removes a recurring-transaction template. Already
// materialized rows are untouched.
func (h *RecurringHandler) DeleteRecurring(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var recurring models.RecurringTransaction
	dbErr := h.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&recurring, id).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return &services.NotFoundError{Resource: "recurring transaction"}
	}
	if dbErr != nil {
		return dbErr
	}

	if err := h.db.WithContext(ctx).Delete(&recurring).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
