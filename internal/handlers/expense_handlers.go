package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance_tracker_echo/internal/ledger"
	"finance_tracker_echo/internal/middleware"
	"finance_tracker_echo/internal/models"
	"finance_tracker_echo/internal/services"
)

// ExpenseHandler serves plain (non-shared) expense CRUD.
type ExpenseHandler struct {
	db    *gorm.DB
	rates *services.ExchangeRateService
}

func NewExpenseHandler(db *gorm.DB, rates *services.ExchangeRateService) *ExpenseHandler {
	return &ExpenseHandler{db: db, rates: rates}
}

// ListExpenses returns the user's expenses, newest first, optionally bounded
// by start_date/end_date.
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	user := middleware.CurrentUser(c)

	startDate, err := parseOptionalDate("start_date", c.QueryParam("start_date"))
	if err != nil {
		return err
	}
	endDate, err := parseOptionalDate("end_date", c.QueryParam("end_date"))
	if err != nil {
		return err
	}

	query := h.db.WithContext(c.Request().Context()).Where("user_id = ?", user.ID)
	if startDate != nil {
		query = query.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", *endDate)
	}
	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var expenses []models.Expense
	if err := query.Order("date DESC").Find(&expenses).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expenses)
}

// CreateExpense records a plain expense, normalizing the amount into the
// user's home currency via the exchange-rate service. The category is
// registered in the user's category registry, and a linked payment source or
// credit card has its balance adjusted in the same transaction.
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req createExpenseRequest
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
	if !amount.IsPositive() {
		return ledger.NewValidationError("amount", "expense amount must be greater than zero")
	}
	if req.PaymentSourceID != nil && req.CreditCardID != nil {
		return ledger.NewValidationError("payment_source_id", "an expense is paid from a source or a card, not both")
	}

	var cashbackValue *decimal.Decimal
	if req.HasCashback {
		if req.CashbackType != models.CashbackTypePercentage && req.CashbackType != models.CashbackTypeFixed {
			return ledger.NewValidationError("cashback_type", "cashback type must be PERCENTAGE or FIXED")
		}
		value, err := decimal.NewFromString(req.CashbackValue)
		if err != nil || !value.IsPositive() {
			return ledger.NewValidationError("cashback_value", "cashback value must be a positive amount")
		}
		cashbackValue = &value
	}

	currency := req.Currency
	if currency == "" {
		currency = user.Currency
	}
	baseAmount := amount
	if h.rates != nil && currency != user.Currency {
		rate := h.rates.GetExchangeRate(c.Request().Context(), currency, user.Currency)
		baseAmount = amount.Mul(rate).Round(2)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "Cash"
	}

	ctx := c.Request().Context()
	expense := models.Expense{
		UserID:          user.ID,
		Date:            date,
		Amount:          amount,
		Currency:        currency,
		Description:     req.Description,
		Category:        req.Category,
		BaseAmount:      baseAmount,
		PaymentMethod:   paymentMethod,
		PaymentSourceID: req.PaymentSourceID,
		CreditCardID:    req.CreditCardID,
		HasCashback:     req.HasCashback,
		CashbackType:    req.CashbackType,
		CashbackValue:   cashbackValue,
	}
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := services.EnsureCategory(ctx, tx, user.ID, req.Category); err != nil {
			return err
		}
		if req.PaymentSourceID != nil {
			var source models.PaymentSource
			err := tx.Where("user_id = ? AND is_active = ?", user.ID, true).
				First(&source, *req.PaymentSourceID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &services.NotFoundError{Resource: "payment source"}
			}
			if err != nil {
				return err
			}
			source.Balance = source.Balance.Sub(baseAmount)
			if err := tx.Save(&source).Error; err != nil {
				return err
			}
		}
		if req.CreditCardID != nil {
			var card models.CreditCard
			err := tx.Where("user_id = ? AND is_active = ?", user.ID, true).
				First(&card, *req.CreditCardID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &services.NotFoundError{Resource: "credit card"}
			}
			if err != nil {
				return err
			}
			card.AvailableLimit = card.AvailableLimit.Sub(baseAmount)
			if err := tx.Save(&card).Error; err != nil {
				return err
			}
		}
		return tx.Create(&expense).Error
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, expense)
}

// GetExpense returns one expense owned by the user.
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var expense models.Expense
	err = h.db.WithContext(c.Request().Context()).
		Where("user_id = ?", user.ID).
		Preload("SharedDetails").
		First(&expense, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &services.NotFoundError{Resource: "expense"}
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expense)
}

// DeleteExpense removes a plain expense. Expenses with split details must be
// deleted through the shared-expense endpoint so the split rows go with them.
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var expense models.Expense
	dbErr := h.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&expense, id).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return &services.NotFoundError{Resource: "expense"}
	}
	if dbErr != nil {
		return dbErr
	}

	var splitCount int64
	if err := h.db.WithContext(ctx).Model(&models.SharedExpense{}).
		Where("expense_id = ?", expense.ID).
		Count(&splitCount).Error; err != nil {
		return err
	}
	if splitCount > 0 {
		return &services.ReferentialIntegrityError{
			Message: "expense has split details; delete the shared expense instead",
		}
	}

	if err := h.db.WithContext(ctx).Delete(&expense).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
