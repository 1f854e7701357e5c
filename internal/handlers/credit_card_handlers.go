package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance_tracker_echo/internal/ledger"
	"finance_tracker_echo/internal/middleware"
	"finance_tracker_echo/internal/models"
	"finance_tracker_echo/internal/services"
)

// CreditCardHandler serves credit cards and their bill payments.
type CreditCardHandler struct {
	db *gorm.DB
}

func NewCreditCardHandler(db *gorm.DB) *CreditCardHandler {
	return &CreditCardHandler{db: db}
}

// ListCreditCards returns the user's active cards.
func (h *CreditCardHandler) ListCreditCards(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var cards []models.CreditCard
	err := h.db.WithContext(c.Request().Context()).
		Where("user_id = ? AND is_active = ?", user.ID, true).
		Order("bank_name, name").
		Find(&cards).Error
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cards)
}

// CreateCreditCard adds a card. The available limit starts at the full credit
// limit.
func (h *CreditCardHandler) CreateCreditCard(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req creditCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ledger.NewValidationError("name", "credit card name is required")
	}
	creditLimit, err := decimal.NewFromString(req.CreditLimit)
	if err != nil || !creditLimit.IsPositive() {
		return ledger.NewValidationError("credit_limit", "credit limit must be a positive amount")
	}
	if req.BillingCycleDay < 1 || req.BillingCycleDay > 28 {
		return ledger.NewValidationError("billing_cycle_day", "billing cycle day must be between 1 and 28")
	}
	dueDateDays := req.DueDateDays
	if dueDateDays <= 0 {
		dueDateDays = 20
	}

	ctx := c.Request().Context()
	var count int64
	if err := h.db.WithContext(ctx).Model(&models.CreditCard{}).
		Where("user_id = ? AND name = ?", user.ID, name).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ledger.NewValidationError("name", "credit card %q already exists", name)
	}

	card := models.CreditCard{
		UserID:          user.ID,
		Name:            name,
		BankName:        req.BankName,
		CreditLimit:     creditLimit,
		AvailableLimit:  creditLimit,
		BillingCycleDay: req.BillingCycleDay,
		DueDateDays:     dueDateDays,
		IsActive:        true,
	}
	if err := h.db.WithContext(ctx).Create(&card).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, card)
}

// GetCreditCard returns one card with its billing dates and current-cycle
// transactions.
func (h *CreditCardHandler) GetCreditCard(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	card, err := h.findCard(ctx, user.ID, id)
	if err != nil {
		return err
	}

	var transactions []models.Expense
	err = h.db.WithContext(ctx).
		Where("user_id = ? AND credit_card_id = ?", user.ID, card.ID).
		Order("date DESC").
		Limit(50).
		Find(&transactions).Error
	if err != nil {
		return err
	}

	today := time.Now()
	return c.JSON(http.StatusOK, echo.Map{
		"credit_card":       card,
		"used_limit":        card.UsedLimit(),
		"next_billing_date": card.NextBillingDate(today).Format(dateLayout),
		"next_due_date":     card.NextDueDate(today).Format(dateLayout),
		"transactions":      transactions,
	})
}

// RecordPayment records a bill payment against a card, restoring its
// available limit up to the credit limit.
func (h *CreditCardHandler) RecordPayment(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req cardPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return ledger.NewValidationError("amount", "invalid amount %q", req.Amount)
	}
	if !amount.IsPositive() {
		return ledger.NewValidationError("amount", "payment amount must be greater than zero")
	}

	ctx := c.Request().Context()
	card, err := h.findCard(ctx, user.ID, id)
	if err != nil {
		return err
	}

	card.PayBill(amount)
	if err := h.db.WithContext(ctx).Save(card).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, card)
}

// DeleteCreditCard deactivates a card, keeping its expense links intact.
func (h *CreditCardHandler) DeleteCreditCard(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	card, err := h.findCard(ctx, user.ID, id)
	if err != nil {
		return err
	}

	card.IsActive = false
	if err := h.db.WithContext(ctx).Save(card).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CreditCardHandler) findCard(ctx context.Context, userID, id uint) (*models.CreditCard, error) {
	var card models.CreditCard
	err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&card, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &services.NotFoundError{Resource: "credit card"}
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}
